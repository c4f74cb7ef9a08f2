// ============================================================================
// Quill - embeddable expression language
// ============================================================================
//
// Package:     tui
// Description: Shared lipgloss palette, styles and error rendering for the
//              quill command line and the interactive REPL
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	qerror "github.com/msto63/quill/foundation/core/error"
	"github.com/msto63/quill/foundation/quill/environment"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Transcript styles
	InputEchoStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	OutputStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	SystemMessageStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError)

	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	// Box styles
	TranscriptBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted).
				Padding(0, 1)

	// Input styles
	PromptStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	BusyPromptStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// RenderTitle renders a heading
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

// RenderHelp renders a help line
func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}

// ErrorTitle names the kind of failure err represents
func ErrorTitle(err error) string {
	switch qerror.GetCode(err) {
	case qerror.CodeLexical:
		return "Lexical error"
	case qerror.CodeParse:
		return "Parse error"
	case qerror.CodeEvaluation:
		return "Evaluation error"
	case qerror.CodeCallDepthExceeded:
		return "Call depth exceeded"
	case qerror.CodeCanceled:
		return "Canceled"
	case qerror.CodeConfigError, qerror.CodeMissingConfig:
		return "Configuration error"
	default:
		return "Error"
	}
}

// DescribeError renders err as "<title> at line:col: message" without styling
func DescribeError(err error) string {
	var qErr *qerror.Error
	if !errors.As(err, &qErr) {
		return fmt.Sprintf("%s: %v", ErrorTitle(err), err)
	}

	msg := qErr.Message()
	if cause := errors.Unwrap(qErr); cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	if line, column, ok := qErr.Position(); ok {
		return fmt.Sprintf("%s at %d:%d: %s", ErrorTitle(err), line, column, msg)
	}
	return fmt.Sprintf("%s: %s", ErrorTitle(err), msg)
}

// RenderError renders err with the error styles
func RenderError(err error) string {
	text := DescribeError(err)
	title := ErrorTitle(err)
	if strings.HasPrefix(text, title) {
		return ErrorTitleStyle.Render(title) + ErrorMessageStyle.Render(strings.TrimPrefix(text, title))
	}
	return ErrorMessageStyle.Render(text)
}

// ScopeDump returns the scope chain attached to an evaluation error
func ScopeDump(err error) []string {
	var qErr *qerror.Error
	if !errors.As(err, &qErr) {
		return nil
	}
	v, ok := qErr.Detail(environment.DetailScopes)
	if !ok {
		return nil
	}
	dump, _ := v.([]string)
	return dump
}

// RenderScopes renders the scope chain of err, or "" if it has none
func RenderScopes(err error) string {
	dump := ScopeDump(err)
	if len(dump) == 0 {
		return ""
	}
	return SystemMessageStyle.Render(strings.Join(dump, "\n"))
}
