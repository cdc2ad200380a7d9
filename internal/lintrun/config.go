// Package lintrun lints many source files concurrently and reports every
// annotation in a compiler-style format.
package lintrun

import "github.com/okian/codearena/internal/domain/model"

// Config holds configuration for a batch lint.
type Config struct {
	Paths       []string       // Files or directories to lint
	Workers     int            // Number of concurrent workers
	MinSeverity model.Severity // Lowest severity reported
	LogFile     string         // Log file for run output
	Verbose     bool           // Enable debug logging
}

// Finding is one annotation in one file.
type Finding struct {
	File       string
	Annotation model.Annotation
}

// Stats holds run statistics.
type Stats struct {
	Files    int
	Failed   int
	Errors   int
	Warnings int
	Infos    int
}
