package store

import "errors"

// Sentinel kinds for store failures.
var (
	ErrReadState  = errors.New("read state")
	ErrWriteState = errors.New("write state")
)
