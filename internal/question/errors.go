package question

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no question matches the requested id.
var ErrNotFound = errors.New("question not found")

// ValidationError reports a draft rejected before reaching storage.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question: %s is required", e.Field)
}

// PersistenceError wraps a storage failure on a write path.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s question: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
