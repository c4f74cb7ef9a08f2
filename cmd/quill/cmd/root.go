package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	qerror "github.com/msto63/quill/foundation/core/error"
	qlog "github.com/msto63/quill/foundation/core/log"
	"github.com/msto63/quill/foundation/quill"
	qast "github.com/msto63/quill/foundation/quill/ast"
	"github.com/msto63/quill/internal/tui"
	"github.com/msto63/quill/pkg/core/cache"
	"github.com/msto63/quill/pkg/core/config"
	"github.com/msto63/quill/pkg/core/logging"
)

var (
	cfgFile  string
	verbose  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill - embeddable expression language",
	Long: `Quill is a small expression language with first-class functions,
lexically nested blocks and a tree-walking interpreter.

  quill run fib.ql          run one or more program files
  quill eval '2 + 3 * 4'    evaluate a program given on the command line
  quill repl                start an interactive session
  quill tokens fib.ql       show the token stream
  quill parse fib.ql        show the syntax tree`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return qerror.GetCode(err).ExitCode()
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $QUILL_CONFIG, ./quill.toml, ~/.config/quill/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging and scope dumps on errors")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal)")
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, tui.RenderError(err))
	if verbose {
		if scopes := tui.RenderScopes(err); scopes != "" {
			fmt.Fprintln(w, scopes)
		}
	}
}

// session bundles what every command needs: the loaded configuration and a
// logger built from it
type session struct {
	cfg        *config.Config
	configPath string
	logger     *qlog.Logger
	closer     io.Closer
}

func newSession() (*session, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	switch {
	case logLevel != "":
		cfg.General.LogLevel = logLevel
	case verbose:
		cfg.General.LogLevel = qlog.LevelDebug.String()
	}

	logger, closer, err := logging.NewLogger(logging.FromConfig(cfg))
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded", qlog.Fields{"path": path})

	return &session{cfg: cfg, configPath: path, logger: logger, closer: closer}, nil
}

// loadConfig reads --config, then QUILL_CONFIG and the default locations.
// Without any file the defaults are used.
func loadConfig() (*config.Config, string, error) {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		return cfg, cfgFile, err
	}

	path := os.Getenv(config.EnvConfigPath)
	if path == "" {
		for _, candidate := range config.DefaultPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return config.Default(), "", nil
	}

	cfg, err := config.Load(path)
	return cfg, path, err
}

// newEngine builds an engine from the [interpreter] section; print output
// goes to out
func (s *session) newEngine(out io.Writer) (*quill.Engine, error) {
	prelude, err := readPrelude(s.cfg.Interpreter.Prelude)
	if err != nil {
		return nil, err
	}

	var programs quill.ProgramCache
	if size := s.cfg.Interpreter.ParseCacheSize; size > 0 {
		programs = cache.New[*qast.Program](cache.Config{MaxItems: size})
	}

	return quill.New(quill.Options{
		Logger:           s.logger,
		Output:           out,
		MaxCallDepth:     s.cfg.Interpreter.MaxCallDepth,
		MaxSourceLength:  s.cfg.Interpreter.MaxSourceLength,
		DisabledBuiltins: s.cfg.Interpreter.DisabledBuiltins,
		Aliases:          s.cfg.Interpreter.Aliases,
		Prelude:          prelude,
		Timeout:          s.cfg.Interpreter.Timeout.Duration,
		Programs:         programs,
	})
}

func (s *session) Close() {
	if s.closer != nil {
		s.closer.Close()
	}
}

func readPrelude(paths []string) ([]string, error) {
	sources := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, qerror.Wrap(err, fmt.Sprintf("failed to read prelude %s", path)).
				WithCode(qerror.CodeConfigError)
		}
		sources = append(sources, string(data))
	}
	return sources, nil
}

// readSource returns expr when set, otherwise the contents of the single
// file argument; "-" reads standard input
func readSource(cmd *cobra.Command, args []string, expr string) (string, error) {
	if expr != "" {
		if len(args) > 0 {
			return "", qerror.New("use either a file or --expr, not both").WithCode(qerror.CodeInvalidInput)
		}
		return expr, nil
	}
	if len(args) != 1 {
		return "", qerror.New("expected one file argument or --expr").WithCode(qerror.CodeInvalidInput)
	}
	return readFile(cmd, args[0])
}

func readFile(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", qerror.Wrap(err, fmt.Sprintf("failed to read %s", path)).WithCode(qerror.CodeInvalidInput)
	}
	return string(data), nil
}
