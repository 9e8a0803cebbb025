package queue

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQueue is returned by Serve when no patient is queued.
	ErrEmptyQueue = errors.New("no patients in queue")

	// ErrNotFound is returned when an id names no patient.
	ErrNotFound = errors.New("patient not found")

	// ErrStillQueued is returned by RemoveServed when the id names a
	// patient that has not been served yet. Queued patients leave the
	// system only through Serve or Clear.
	ErrStillQueued = errors.New("patient is still queued")
)

// ValidationError reports rejected admission input. No mutation happens when
// one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a persistence failure. The store is left in its
// pre-call state when one is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
