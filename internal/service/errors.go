package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a task index is out of range.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidTask is returned when a task has no text.
	ErrInvalidTask = errors.New("task text required")

	// ErrUpstreamUnavailable marks a remote store that could not be read at startup.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// StoreError is returned by DocumentStore implementations.
// Network failures, non-2xx statuses and malformed bodies all collapse into it.
type StoreError struct {
	Op  string // "fetch" or "replace"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
