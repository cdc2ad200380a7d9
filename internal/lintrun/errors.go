package lintrun

import "errors"

// Sentinel kinds for batch lint failures.
var (
	ErrNoInput     = errors.New("no files to lint")
	ErrFindings    = errors.New("lint errors found")
	ErrUnreadable  = errors.New("failed to read files")
	ErrBadSeverity = errors.New("unknown severity")
)
