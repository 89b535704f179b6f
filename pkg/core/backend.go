package core

import "context"

// Backend is the associative store port. One key per document id, exactly two
// fields per key (FieldData, FieldETag). Adhering to this interface keeps the
// core independent of the underlying storage mechanism (Redis, SQLite,
// filesystem, memory).
//
// Implementations must write all fields of one key atomically and return a
// consistent snapshot of them on Get. The core relies on nothing stronger:
// in particular it never asks for a conditional write, so the tag check in
// Patch is a stale-snapshot check, not a compare-and-swap (see Service).
type Backend interface {
	// Get returns the fields stored under key, or a nil map when the key
	// is absent. An error means the backend itself was unreachable.
	Get(ctx context.Context, key string) (map[string][]byte, error)

	// PutFields stores the given fields under key as one atomic write,
	// replacing any previous values.
	PutFields(ctx context.Context, key string, fields map[string][]byte) error

	// Delete removes the key and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// Watchable is implemented by backends that can observe out-of-band changes
// to stored records (e.g. another process editing files on disk).
type Watchable interface {
	// Watch emits an event for every record whose id matches pattern.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Validator gates writes on the document schema.
//
// Validate enforces the whole schema, required fields included, and is used
// on the create-or-replace path. ValidatePartial skips required-field
// presence at every nesting level, since a patch may carry any subset of
// fields. Both report every violation found, not just the first, via
// *ValidationError.
type Validator interface {
	Validate(doc Document) error
	ValidatePartial(doc Document) error
}
