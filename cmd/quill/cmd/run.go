package cmd

import (
	"context"

	"github.com/spf13/cobra"

	qlog "github.com/msto63/quill/foundation/core/log"
)

var runCmd = &cobra.Command{
	Use:   "run <file>...",
	Short: "Runs Quill program files",
	Long: `Runs one or more program files in order. All files share one root
scope, so later files see the bindings of earlier ones. Use "-" to read
a program from standard input.

The first error stops the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	engine, err := s.newEngine(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	for _, path := range args {
		source, err := readFile(cmd, path)
		if err != nil {
			return err
		}
		result, err := engine.Execute(context.Background(), source)
		if err != nil {
			return err
		}
		s.logger.Debug("File executed", qlog.Fields{
			"file":        path,
			"run_id":      result.RunID,
			"statements":  result.Statements,
			"duration_ms": result.Duration.Milliseconds(),
		})
	}
	return nil
}
