package catalog

import "errors"

// ErrProblemNotFound is returned when neither the backend nor the static table knows a problem.
var ErrProblemNotFound = errors.New("problem not found")
