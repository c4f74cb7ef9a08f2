// ============================================================================
// Quill - embeddable expression language
// ============================================================================
//
// Package:     repl
// Description: Input history with up/down navigation, persisted one entry
//              per line
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package repl

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/msto63/quill/foundation/utils/stringx"
)

// DefaultHistorySize is used when no size is configured
const DefaultHistorySize = 500

// History keeps the most recent inputs of a session
type History struct {
	path    string
	size    int
	entries []string

	index int    // Position while navigating, -1 when editing a new input
	draft string // Input that was being typed before navigation started
}

// NewHistory creates an empty history that is saved to path.
// An empty path keeps the history in memory only.
func NewHistory(path string, size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{path: path, size: size, index: -1}
}

// LoadHistory reads the history file at path; a missing file yields an
// empty history
func LoadHistory(path string, size int) (*History, error) {
	h := NewHistory(path, size)
	if path == "" {
		return h, nil
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return h, nil
	}
	if err != nil {
		return h, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); !stringx.IsBlank(line) {
			h.entries = append(h.entries, line)
		}
	}
	h.trim()
	return h, scanner.Err()
}

// Add appends entry unless it is blank or repeats the last entry, and
// ends any navigation
func (h *History) Add(entry string) {
	h.index = -1
	h.draft = ""

	entry = strings.TrimSpace(entry)
	if stringx.IsBlank(entry) {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	h.trim()
}

// Previous moves one entry back. current is remembered as the draft when
// navigation starts.
func (h *History) Previous(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.index == -1:
		h.draft = current
		h.index = len(h.entries) - 1
	case h.index > 0:
		h.index--
	}
	return h.entries[h.index], true
}

// Next moves one entry forward, returning the draft past the newest entry
func (h *History) Next() (string, bool) {
	if h.index == -1 {
		return "", false
	}
	if h.index < len(h.entries)-1 {
		h.index++
		return h.entries[h.index], true
	}
	h.index = -1
	return h.draft, true
}

// Entries returns a copy of the stored entries, oldest first
func (h *History) Entries() []string {
	result := make([]string, len(h.entries))
	copy(result, h.entries)
	return result
}

// Save writes the history file, creating its directory when needed
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return err
	}

	var sb strings.Builder
	for _, entry := range h.entries {
		sb.WriteString(entry)
		sb.WriteByte('\n')
	}
	return os.WriteFile(h.path, []byte(sb.String()), 0o600)
}

func (h *History) trim() {
	if len(h.entries) > h.size {
		h.entries = h.entries[len(h.entries)-h.size:]
	}
}
