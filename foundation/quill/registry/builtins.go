// File: builtins.go
// Title: Quill Built-in Natives
// Description: The print and println natives every host gets by default.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-05
// Modified: 2025-02-11

package registry

import (
	"io"
	"strings"

	qast "github.com/msto63/quill/foundation/quill/ast"
)

func builtins(out io.Writer) []*Definition {
	return []*Definition{
		{
			Name:        "print",
			Description: "Writes its arguments without separators",
			Parameters:  []string{"values"},
			Native:      printer(out, ""),
		},
		{
			Name:        "println",
			Description: "Writes its arguments followed by a newline",
			Parameters:  []string{"values"},
			Native:      printer(out, "\n"),
		},
	}
}

// printer writes the display form of each argument and evaluates to true
func printer(out io.Writer, suffix string) qast.NativeFunc {
	return func(args []qast.Node) (qast.Node, error) {
		var sb strings.Builder
		for _, arg := range args {
			sb.WriteString(qast.Display(arg))
		}
		sb.WriteString(suffix)

		if _, err := io.WriteString(out, sb.String()); err != nil {
			return nil, err
		}
		return &qast.Boolean{Value: true}, nil
	}
}
