package console

import "errors"

// Sentinel kinds for console failures.
var (
	ErrUnbound        = errors.New("event has no handler")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)
