// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so hosts can decide how
//              loudly to report a failed run.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-02-10
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2025-02-10 v0.2.0: Severity mapping for interpreter codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a problem in user input (bad source text)
	SeverityLow Severity = iota

	// SeverityMedium indicates a failed run that the host can report and continue
	SeverityMedium

	// SeverityHigh indicates a host-side failure such as missing configuration
	SeverityHigh

	// SeverityCritical indicates a broken interpreter invariant
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeConfigError, CodeMissingConfig:
		return SeverityHigh
	case CodeLexical, CodeParse, CodeInvalidInput, CodeNotFound:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
