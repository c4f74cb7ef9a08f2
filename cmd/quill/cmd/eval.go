package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var evalQuiet bool

var evalCmd = &cobra.Command{
	Use:   "eval <source>...",
	Short: "Evaluates a program given on the command line",
	Long: `Evaluates the arguments, joined by spaces, as one program and prints
the value of its last statement.

  quill eval '2 + 3 * 4'
  quill eval 'sq = fn(x) x * x; sq(12)'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().BoolVarP(&evalQuiet, "quiet", "q", false, "do not print the resulting value")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	engine, err := s.newEngine(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	result, err := engine.Execute(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	if !evalQuiet && result.HasValue() {
		fmt.Fprintln(cmd.OutOrStdout(), result)
	}
	return nil
}
