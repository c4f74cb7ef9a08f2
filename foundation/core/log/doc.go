// Package log provides structured logging for Quill.
//
// Package: log
// Title: Quill Structured Logging
// Description: Structured logger with levels, contextual fields and JSON,
// text or console output. Every interpreter component derives a
// child logger tagged with its component name, and a run of the
// engine carries its run ID on every entry it produces.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-10
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-02-10 v0.2.0: Run IDs, lipgloss console output, dropped async mode
//
// Usage:
//
//	import qlog "github.com/msto63/quill/foundation/core/log"
//
//	logger := qlog.New().
//		WithLevel(qlog.LevelDebug).
//		WithFormat(qlog.FormatConsole).
//		WithField("component", "quill-parser")
//
//	logger.Debug("Parsed program", qlog.Fields{"statements": 3})
//
//	timer := logger.StartTimer("execute")
//	// ... evaluate
//	timer.Stop()
package log
