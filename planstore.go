package planstore

import (
	"log/slog"

	"github.com/aretw0/planstore/internal/platform"
	"github.com/aretw0/planstore/pkg/core"
	"github.com/aretw0/planstore/pkg/typed"
)

// --- Types ---

// Document is a public alias for the decoded JSON document.
type Document = core.Document

// Event is a public alias for the change event.
type Event = core.Event

// Service is a public alias for the document store service.
type Service = core.Service

// TypedStore is a public alias for the type-safe wrapper.
type TypedStore[T any] = typed.Store[T]

// ValidationError is a public alias for the schema validation failure.
type ValidationError = core.ValidationError

// Operations carried by change events.
const (
	OpCreate = core.OpCreate
	OpPatch  = core.OpPatch
	OpDelete = core.OpDelete
)

// --- Errors ---

// Re-exported error conditions; see pkg/core for the full taxonomy.
var (
	ErrNotFound           = core.ErrNotFound
	ErrPreconditionFailed = core.ErrPreconditionFailed
	ErrETagRequired       = core.ErrETagRequired
	ErrReadOnly           = core.ErrReadOnly
)

// --- Configuration ---

// Option defines a functional option for configuring planstore.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithBackend allows injecting a custom storage backend.
func WithBackend(backend core.Backend) Option {
	return platform.WithBackend(backend)
}

// WithAdapter selects the storage adapter by name ("memory", "redis", "fs", "sqlite").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSchemaFile sets the path of the JSON Schema documents are validated against.
func WithSchemaFile(path string) Option {
	return platform.WithSchemaFile(path)
}

// WithSchemaBytes provides the JSON Schema inline instead of via a file.
func WithSchemaBytes(raw []byte) Option {
	return platform.WithSchemaBytes(raw)
}

// WithEventBuffer sets the per-subscriber change event buffer size.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithRedisAuth sets credentials for the "redis" adapter.
func WithRedisAuth(password string, db int) Option {
	return platform.WithRedisAuth(password, db)
}

// --- Factory ---

// New creates a new planstore Service. The uri argument is adapter-specific:
// a data directory for "fs", a database file for "sqlite", a server address
// for "redis"; the "memory" adapter ignores it.
func New(uri string, opts ...Option) (*core.Service, error) {
	return platform.New(uri, opts...)
}

// NewTyped wraps a Service for type-safe access to one document type.
func NewTyped[T any](svc *core.Service) *typed.Store[T] {
	return typed.NewStore[T](svc)
}
