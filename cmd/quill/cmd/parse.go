package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	qerror "github.com/msto63/quill/foundation/core/error"
	qast "github.com/msto63/quill/foundation/quill/ast"
	qparser "github.com/msto63/quill/foundation/quill/parser"
)

var (
	parseExpr   string
	parseFormat string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Shows the syntax tree of a program",
	Long: `Parses a program and prints its syntax tree.

Formats:
  source  canonical source text, fully parenthesised
  yaml    node tree with kinds and positions
  json    same tree as JSON`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseExpr, "expr", "e", "", "source to parse instead of a file")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "source", "output format (source, yaml, json)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd, args, parseExpr)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	parser, err := qparser.New(qparser.Options{
		Logger:         s.logger,
		MaxInputLength: s.cfg.Interpreter.MaxSourceLength,
	})
	if err != nil {
		return err
	}
	program, err := parser.Parse(source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch parseFormat {
	case "source":
		fmt.Fprintln(out, qast.Print(program))
		return nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(qast.ToMap(program)); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(qast.ToMap(program))
	default:
		return qerror.Newf("unknown format %q, want source, yaml or json", parseFormat).
			WithCode(qerror.CodeInvalidInput)
	}
}
