// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify failures raised by
//              the Quill interpreter pipeline and its host tooling. The codes
//              double as the error taxonomy hosts switch on.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-10
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-02-10 v0.2.0: Reduced to interpreter taxonomy (lexical, parse, evaluation)

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeNotFound     Code = "NOT_FOUND"

	// Interpreter pipeline
	CodeLexical           Code = "LEXICAL_ERROR"
	CodeParse             Code = "PARSE_ERROR"
	CodeEvaluation        Code = "EVALUATION_ERROR"
	CodeCallDepthExceeded Code = "CALL_DEPTH_EXCEEDED"
	CodeCanceled          Code = "CANCELED"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeInvalidInput, CodeNotFound,
		CodeLexical, CodeParse, CodeEvaluation, CodeCallDepthExceeded, CodeCanceled,
		CodeConfigError, CodeMissingConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexical, CodeParse:
		return "syntax"
	case CodeEvaluation, CodeCallDepthExceeded, CodeCanceled:
		return "runtime"
	case CodeConfigError, CodeMissingConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// ExitCode maps an error code to a process exit status for command-line hosts
func (c Code) ExitCode() int {
	switch c {
	case CodeLexical, CodeParse:
		return 65 // EX_DATAERR
	case CodeEvaluation, CodeCallDepthExceeded:
		return 70 // EX_SOFTWARE
	case CodeConfigError, CodeMissingConfig:
		return 78 // EX_CONFIG
	case CodeNotFound, CodeInvalidInput:
		return 66 // EX_NOINPUT
	case CodeCanceled:
		return 130
	default:
		return 1
	}
}
