package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	qparser "github.com/msto63/quill/foundation/quill/parser"
	"github.com/msto63/quill/foundation/utils/stringx"
)

var tokensExpr string

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Shows the token stream of a program",
	Long: `Lexes a program and prints one token per line with its position,
type and text.

  quill tokens fib.ql
  quill tokens -e '2 + 3 * 4'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensExpr, "expr", "e", "", "source to lex instead of a file")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd, args, tokensExpr)
	if err != nil {
		return err
	}

	tokens, err := qparser.Tokenize(source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, tok := range tokens {
		text := tok.Text
		if tok.Type == qparser.TokenString {
			text = strconv.Quote(tok.Text)
		}
		fmt.Fprintf(out, "%s %s %s\n",
			stringx.PadRight(fmt.Sprintf("%d:%d", tok.Line, tok.Column), 8, ' '),
			stringx.PadRight(tok.Type.String(), 12, ' '),
			text)
	}
	return nil
}
