// ============================================================================
// Quill - embeddable expression language
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating foundation loggers from the
//              quill configuration
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"path/filepath"

	qerror "github.com/msto63/quill/foundation/core/error"
	qlog "github.com/msto63/quill/foundation/core/log"
	"github.com/msto63/quill/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name
	Name string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format (json, text, console)
	Format string

	// Output destination (default: os.Stderr), replaced by File when set
	Output io.Writer

	// File receives log output, appended to and created if missing
	File string

	// Additional outputs besides the primary one
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  qlog.DefaultLevel().String(),
		Format: qlog.FormatConsole.String(),
	}
}

// FromConfig derives logger settings from the [general] section
func FromConfig(cfg *config.Config) LoggerConfig {
	return LoggerConfig{
		Name:   cfg.General.Name,
		Level:  cfg.General.LogLevel,
		Format: cfg.General.LogFormat,
		File:   cfg.General.LogFile,
	}
}

// NewLogger creates a foundation logger. The returned closer releases the
// log file, if one was opened.
func NewLogger(cfg LoggerConfig) (*qlog.Logger, io.Closer, error) {
	level, err := qlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, qerror.Wrap(err, "invalid log level").WithCode(qerror.CodeConfigError)
	}
	format, err := qlog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nil, qerror.Wrap(err, "invalid log format").WithCode(qerror.CodeConfigError)
	}

	var closer io.Closer = nopCloser{}
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, qerror.Wrap(err, "failed to create log directory").WithCode(qerror.CodeConfigError)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, qerror.Wrap(err, "failed to open log file").WithCode(qerror.CodeConfigError)
		}
		output = f
		closer = f
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	logger := qlog.NewWithConfig(qlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.Name,
	})

	return logger, closer, nil
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(name string) *qlog.Logger {
	logger, _, err := NewLogger(DefaultLoggerConfig(name))
	if err != nil {
		return qlog.New().WithName(name)
	}
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
