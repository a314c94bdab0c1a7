package domain

import "errors"

// ErrInvalidInput marks malformed driver or ride data. A run that meets it
// is aborted before any assignment happens.
var ErrInvalidInput = errors.New("invalid input")
