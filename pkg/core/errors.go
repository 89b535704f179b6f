package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel conditions. Each maps to one distinguishable outcome for the
// boundary layer; the Service never retries any of them internally.
var (
	// ErrNotFound means no record is stored under the requested id.
	ErrNotFound = errors.New("document not found")

	// ErrPreconditionFailed means the caller's version tag is stale relative
	// to the store. The caller must re-fetch and retry with the current tag.
	ErrPreconditionFailed = errors.New("version tag does not match stored document")

	// ErrETagRequired means a patch was attempted without a version tag.
	// Patch is a conditional update and has no unconditional form.
	ErrETagRequired = errors.New("patch requires a version tag")

	// ErrReadOnly is returned by mutating operations in read-only mode.
	ErrReadOnly = errors.New("store is in read-only mode")
)

// ValidationError reports every schema violation found in the input so
// callers can surface all problems at once.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "schema validation failed: " + strings.Join(e.Messages, "; ")
}

// StoreUnavailableError wraps a backend I/O failure (timeout, connection
// loss). Transient; retry policy belongs to the caller.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// SerializationError means bytes read back from the backend do not decode.
// That indicates corruption and is surfaced as an internal condition, never
// masked as a missing document.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("stored document %q is corrupt: %v", e.Key, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
