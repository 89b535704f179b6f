package platform

import (
	"log/slog"

	"github.com/aretw0/planstore/pkg/core"
)

// options holds the internal configuration for the planstore service.
type options struct {
	backend     core.Backend
	validator   core.Validator
	logger      *slog.Logger
	adapter     string
	schemaPath  string
	schemaBytes []byte
	eventBuffer int
	readOnly    bool

	redisPassword string
	redisDB       int
}

// Option defines a functional option for configuring planstore.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "memory",
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBackend injects a custom storage backend. If provided, the adapter
// selected by name is skipped.
func WithBackend(backend core.Backend) Option {
	return func(o *options) {
		o.backend = backend
	}
}

// WithValidator injects a pre-built validator, skipping schema loading.
func WithValidator(v core.Validator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// WithAdapter selects the storage adapter by name ("memory", "redis", "fs",
// "sqlite"). Defaults to "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithSchemaFile sets the path of the JSON Schema the store validates
// against. The schema is loaded once, at construction.
func WithSchemaFile(path string) Option {
	return func(o *options) {
		o.schemaPath = path
	}
}

// WithSchemaBytes provides the JSON Schema inline instead of via a file.
func WithSchemaBytes(raw []byte) Option {
	return func(o *options) {
		o.schemaBytes = raw
	}
}

// WithEventBuffer sets the per-subscriber change event buffer size.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithReadOnly enables read-only mode: all mutating operations fail with
// core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithRedisAuth sets credentials for the "redis" adapter.
func WithRedisAuth(password string, db int) Option {
	return func(o *options) {
		o.redisPassword = password
		o.redisDB = db
	}
}
