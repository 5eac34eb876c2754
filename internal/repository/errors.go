package repository

import "errors"

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrMissingReference means a record points at a room or event type that does not exist.
	ErrMissingReference = errors.New("repository: referenced record not found")
)
