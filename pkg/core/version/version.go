// ============================================================================
// Quill - embeddable expression language
// ============================================================================
//
// Package:     version
// Description: Central version information for the quill command and the
//              language it implements
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Release version of the quill module
	Release = "0.1.0"

	// Language version of the accepted grammar
	Language = "1.0.0"
)

// Build metadata, set with -ldflags "-X github.com/msto63/quill/pkg/core/version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info describes the running binary
type Info struct {
	Release   string `json:"release" yaml:"release"`
	Language  string `json:"language" yaml:"language"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the version information of the running binary
func Get() Info {
	return Info{
		Release:   Release,
		Language:  Language,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line summary
func (i Info) String() string {
	return fmt.Sprintf("quill %s (language %s, commit %s, built %s, %s %s)",
		i.Release, i.Language, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}
