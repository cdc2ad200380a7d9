package app

import "errors"

// Sentinel kinds for controller failures.
var (
	ErrIncompleteForm = errors.New("incomplete form")
	ErrBusy           = errors.New("submission in progress")
)
