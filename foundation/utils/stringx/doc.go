// Package stringx provides rune-aware string helpers used across Quill.
//
// All functions count runes rather than bytes, so non-ASCII identifiers
// and string literals are padded and truncated correctly.
package stringx
