package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by a Backend when the key holds no value.
	ErrNotFound = errors.New("store: key not found")
	// ErrCorrupted marks persisted data that could not be decoded.
	ErrCorrupted = errors.New("store: corrupted snapshot")
	// ErrInvalidKey is returned for empty or path-like keys.
	ErrInvalidKey = errors.New("store: invalid key")
)

// FailureKind classifies a PersistenceError.
type FailureKind int

const (
	SerializationFailure FailureKind = iota + 1
	StoreWriteFailure
	StoreReadFailure
)

func (k FailureKind) String() string {
	switch k {
	case SerializationFailure:
		return "serialization"
	case StoreWriteFailure:
		return "write"
	case StoreReadFailure:
		return "read"
	default:
		return "unknown"
	}
}

// PersistenceError wraps a failure talking to the backend or encoding a
// snapshot. These are operational: callers log them and carry on.
type PersistenceError struct {
	Kind FailureKind
	Key  string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("store: %s failure for %q: %v", e.Kind, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
