package lintrun

import (
	"fmt"
	"io"
	"strings"

	"github.com/okian/codearena/internal/domain/model"
	"github.com/okian/codearena/pkg/logger"
)

// SetupLogging sends logs to logFile when set, otherwise to stderr, and
// enables debug output when verbose.
func SetupLogging(logFile string, verbose bool) error {
	if logFile != "" {
		if err := logger.InitFile(logFile); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	} else if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return logger.SetLevelString("warn")
}

// ParseSeverity accepts error, warning or info.
func ParseSeverity(s string) (model.Severity, error) {
	switch sev := model.Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case model.SeverityError, model.SeverityWarning, model.SeverityInfo:
		return sev, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadSeverity, s)
	}
}

// ShowHelp prints usage information for the lint tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `codearena lint
==============

Checks Python sources for common mistakes: unclosed brackets, missing
colons, odd indentation, assignment in conditions, statements joined with
';', cramped compound operators and misspelled keywords.

Usage:
  lint [options] <file or directory>...

Options:
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -severity string
        Lowest severity to report: error, warning or info (default "info")
  -log string
        Log file (default: stderr)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Directories are searched recursively for *.py files. The exit status is 1
when any error is reported and 2 when the run itself fails.

Examples:
  lint solution.py
  lint -severity warning -workers 8 ./solutions
`)
}
