// Package core holds the domain model of the document store and the Service
// facade that orchestrates validation, version checks, merging and
// persistence over a pluggable Backend.
package core

// Document is the decoded form of a stored JSON object.
//
// The identifier field "objectId" is expected to mirror the storage key.
// That cross-field consistency is the caller's responsibility; the store
// enforces nothing beyond the schema.
type Document = map[string]any

// Backend field names making up one stored record.
const (
	FieldData = "data"
	FieldETag = "etag"
)

// Op identifies the kind of change that produced an event.
type Op string

const (
	OpCreate Op = "CREATE"
	OpPatch  Op = "PATCH"
	OpDelete Op = "DELETE"
)

// Event describes a successful mutation of the store.
type Event struct {
	Op        Op
	ID        string
	ETag      string // empty for deletes
	Timestamp int64  // Unix timestamp
}

// String implements fmt.Stringer, used by event log consumers.
func (e Event) String() string {
	return string(e.Op) + " " + e.ID
}
