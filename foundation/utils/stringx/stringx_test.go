// File: stringx_test.go
// Title: String Utility Tests
// Description: Table tests for the string helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-11

package stringx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsBlank(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{" x ", false},
		{"λ", false},
	}

	for _, tt := range tests {
		if got := IsBlank(tt.input); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFirstNonBlank(t *testing.T) {
	if got := FirstNonBlank("", "  ", "quill", "other"); got != "quill" {
		t.Errorf("FirstNonBlank() = %q, want %q", got, "quill")
	}
	if got := FirstNonBlank(" ", ""); got != "" {
		t.Errorf("FirstNonBlank() = %q, want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		ellipsis string
		want     string
	}{
		{"fits", "abc", 5, "...", "abc"},
		{"exact", "abcde", 5, "...", "abcde"},
		{"cut", "abcdefgh", 6, "...", "abc..."},
		{"multibyte", "λλλλλλ", 4, "…", "λλλ…"},
		{"ellipsis too long", "abcdef", 2, "...", "ab"},
		{"zero length", "abc", 0, "...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen, tt.ellipsis); got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSnippet(t *testing.T) {
	got := Snippet("fib = fn(n)\n    if n < 2\n    then n", 20)
	if want := "fib = fn(n) if n ..."; got != want {
		t.Errorf("Snippet() = %q, want %q", got, want)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"ab", 5, "ab   "},
		{"λ", 3, "λ  "},
		{"abcdef", 3, "abcdef"},
	}

	for _, tt := range tests {
		if got := PadRight(tt.input, tt.width, ' '); got != tt.want {
			t.Errorf("PadRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\r\nb\rc\nd")
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, got); diff != "" {
		t.Errorf("SplitLines() mismatch (-want +got):\n%s", diff)
	}
}
