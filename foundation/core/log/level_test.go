// File: level_test.go
// Title: Log Level Tests
// Description: Tests for level parsing, naming and filtering.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-10

package log

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"fatal", LevelFatal, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelShouldLog(t *testing.T) {
	tests := []struct {
		level Level
		min   Level
		want  bool
	}{
		{LevelDebug, LevelInfo, false},
		{LevelInfo, LevelInfo, true},
		{LevelError, LevelWarn, true},
		{LevelTrace, LevelTrace, true},
	}

	for _, tt := range tests {
		if got := tt.level.ShouldLog(tt.min); got != tt.want {
			t.Errorf("%v.ShouldLog(%v) = %v, want %v", tt.level, tt.min, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "warn" || LevelWarn.ShortString() != "WRN" {
		t.Errorf("unexpected names for warn: %s %s", LevelWarn.String(), LevelWarn.ShortString())
	}
	if Level(42).String() != "unknown" {
		t.Errorf("Level(42).String() = %s", Level(42).String())
	}
}
