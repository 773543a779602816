package services

import "errors"

// Common service errors. Handlers translate these to HTTP status codes.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)
