package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qerror "github.com/msto63/quill/foundation/core/error"
	"github.com/msto63/quill/pkg/core/config"
)

// execute runs the root command with args against a throwaway config that
// sends log output to a file
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "quill.toml")
	logPath := filepath.ToSlash(filepath.Join(dir, "quill.log"))
	if err := os.WriteFile(cfgPath, []byte(fmt.Sprintf("[general]\nlog_file = %q\n", logPath)), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvConfigPath, cfgPath)

	cfgFile, verbose, logLevel = "", false, ""
	evalQuiet = false
	tokensExpr, parseExpr, parseFormat = "", "", "source"
	configFormat, versionShort = "toml", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeProgram(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.ql")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"arithmetic", []string{"eval", "2 + 3 * 4"}, "14\n"},
		{"arguments are joined", []string{"eval", "2", "+", "3"}, "5\n"},
		{"print output before value", []string{"eval", `println("hi"); 1`}, "hi\n1\n"},
		{"assignment has no value", []string{"eval", "x = 1"}, ""},
		{"quiet", []string{"eval", "-q", "1 + 1"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	first := writeProgram(t, "fib = fn(n) if n < 2 then n else fib(n - 1) + fib(n - 2);")
	second := writeProgram(t, "println(fib(10));")

	got, err := execute(t, "run", first, second)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != "55\n" {
		t.Errorf("output = %q, want %q", got, "55\n")
	}
}

func TestErrorExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		exit int
	}{
		{"lexical", []string{"eval", "1 $ 2"}, 65},
		{"parse", []string{"eval", "(1 + 2"}, 65},
		{"evaluation", []string{"eval", `1 + "a"`}, 70},
		{"missing file", []string{"run", "does-not-exist.ql"}, 66},
		{"unknown parse format", []string{"parse", "-e", "1", "-f", "xml"}, 66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("Execute() succeeded, want error")
			}
			if got := qerror.GetCode(err).ExitCode(); got != tt.exit {
				t.Errorf("exit code = %d, want %d (%v)", got, tt.exit, err)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	got, err := execute(t, "tokens", "-e", `x = "hi"`)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), got)
	}
	for i, want := range []string{"Identifier", "Operator", "String"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want %s", i, lines[i], want)
		}
	}
	if !strings.HasPrefix(lines[0], "1:1 ") {
		t.Errorf("line 0 = %q, want position 1:1", lines[0])
	}
	if !strings.HasSuffix(lines[2], `"hi"`) {
		t.Errorf("string token not quoted: %q", lines[2])
	}
}

func TestParse(t *testing.T) {
	t.Run("source", func(t *testing.T) {
		got, err := execute(t, "parse", "-e", "1 + 2 * 3")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if got != "(1 + (2 * 3))\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeProgram(t, "1 + 2")
		got, err := execute(t, "parse", "--format", "yaml", path)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		for _, want := range []string{"kind: program", "kind: binary", "operator:"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("file and expr", func(t *testing.T) {
		path := writeProgram(t, "1")
		if _, err := execute(t, "parse", "-e", "1", path); err == nil {
			t.Error("file and --expr together should fail")
		}
	})
}

func TestConfigShow(t *testing.T) {
	got, err := execute(t, "config", "show", "--format", "yaml")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"max_call_depth: 10000", "log_file:"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestVersion(t *testing.T) {
	got, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != "0.1.0\n" {
		t.Errorf("output = %q, want %q", got, "0.1.0\n")
	}
}
