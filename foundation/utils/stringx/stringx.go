// File: stringx.go
// Title: String Utility Functions
// Description: Rune-aware string helpers shared by the interpreter host:
//              blank checks for names and sources, truncation of source
//              snippets in log fields, padding for tabular CLI output and
//              line splitting for the REPL transcript.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-11
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2025-02-11 v0.2.0: Reduced to the helpers used by Quill

package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank returns true if the string is empty or contains only whitespace
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// FirstNonBlank returns the first non-blank string, or "" if all are blank
func FirstNonBlank(values ...string) string {
	for _, s := range values {
		if !IsBlank(s) {
			return s
		}
	}
	return ""
}

// Truncate shortens s to at most maxLen runes, ending with ellipsis when
// anything was cut. Multi-byte characters are never split.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	runes := []rune(s)
	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-ellipsisLen]) + ellipsis
}

// Snippet collapses whitespace runs in source to single spaces and
// truncates the result, for use in log fields
func Snippet(source string, maxLen int) string {
	return Truncate(strings.Join(strings.Fields(source), " "), maxLen, "...")
}

// PadRight pads s with pad up to width runes
func PadRight(s string, width int, pad rune) string {
	count := utf8.RuneCountInString(s)
	if count >= width {
		return s
	}
	return s + strings.Repeat(string(pad), width-count)
}

// SplitLines splits s into lines, accepting \n, \r\n and \r endings
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
