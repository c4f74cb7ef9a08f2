// File: timer.go
// Title: Performance Timer
// Description: Measures the duration of an operation such as lexing,
//              parsing or evaluating a program and logs it on completion.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-10
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2025-02-10 v0.2.0: Single stop path with optional error, checkpoints

package log

import (
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
	}
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// StartTime returns when the timer was started
func (t *Timer) StartTime() time.Time {
	return t.startTime
}

// Checkpoint records the elapsed time under name; checkpoints are logged
// with the completion entry
func (t *Timer) Checkpoint(name string) {
	t.fields[name+"_ms"] = float64(t.Elapsed().Nanoseconds()) / 1000000
}

// Stop stops the timer and logs the elapsed time at debug level
func (t *Timer) Stop() time.Duration {
	return t.StopWithError(nil)
}

// StopWithError stops the timer; a non-nil err is logged at warn level.
// Stopping twice returns zero and logs nothing.
func (t *Timer) StopWithError(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := t.Elapsed()
	fields := t.fields.Merge(Fields{
		"operation":   t.operation,
		"duration_ms": float64(elapsed.Nanoseconds()) / 1000000,
	})

	if t.logger == nil {
		return elapsed
	}

	if err != nil {
		t.logger.log(LevelWarn, t.operation+" failed", err, fields)
	} else {
		t.logger.log(LevelDebug, t.operation+" completed", nil, fields)
	}

	return elapsed
}
