package cmd

import (
	"bytes"

	"github.com/spf13/cobra"

	qlog "github.com/msto63/quill/foundation/core/log"
	"github.com/msto63/quill/internal/tui/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Starts an interactive session",
	Long: `Starts an interactive Quill session. Bindings persist between inputs.

Commands:
  :help     show help
  :env      show the global bindings
  :reset    start over with a fresh root scope
  :clear    clear the transcript
  :quit     leave the session

Keys:
  Enter      evaluate
  Up/Down    input history
  PgUp/PgDn  scroll the transcript
  Ctrl+C     cancel a running evaluation, or quit`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	// Log lines on stderr would tear the full screen UI
	if s.cfg.General.LogFile == "" {
		s.logger = qlog.Discard()
	}

	var out bytes.Buffer
	engine, err := s.newEngine(&out)
	if err != nil {
		return err
	}

	history, err := repl.LoadHistory(s.cfg.REPL.HistoryFile, s.cfg.REPL.HistorySize)
	if err != nil {
		s.logger.Warn("Loading history failed", qlog.Fields{
			"file":  s.cfg.REPL.HistoryFile,
			"error": err.Error(),
		})
	}

	return repl.Run(repl.Config{
		Engine:  engine,
		Output:  &out,
		Prompt:  s.cfg.REPL.Prompt,
		History: history,
		Logger:  s.logger,
	})
}
