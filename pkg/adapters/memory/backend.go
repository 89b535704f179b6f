// Package memory provides an in-process Backend, useful for tests, examples
// and ephemeral deployments. Records are copied on the way in and out, so
// callers never share mutable state with the store.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/planstore/pkg/core"
)

// Backend implements core.Backend with a mutex-guarded map. A single lock
// per operation gives the consistent multi-field snapshot and atomic
// multi-field write the core requires.
type Backend struct {
	mu     sync.RWMutex
	data   map[string]map[string][]byte
	writes uint64
}

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{data: make(map[string]map[string][]byte)}
}

// Get returns a copy of the fields stored under key, or nil when absent.
func (b *Backend) Get(ctx context.Context, key string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	fields, ok := b.data[key]
	if !ok {
		return nil, nil
	}
	return copyFields(fields), nil
}

// PutFields stores a copy of fields under key, replacing previous values.
func (b *Backend) PutFields(ctx context.Context, key string, fields map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.data[key] = copyFields(fields)
	b.writes++
	return nil
}

// Delete removes key and reports whether it existed.
func (b *Backend) Delete(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.data[key]
	delete(b.data, key)
	return ok, nil
}

// Ping implements core.Backend. Always reachable.
func (b *Backend) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Writes returns the total number of PutFields calls. Tests use it to assert
// that no-op outcomes perform no backend write.
func (b *Backend) Writes() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}

// Len returns the number of stored records.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

func copyFields(fields map[string][]byte) map[string][]byte {
	out := make(map[string][]byte, len(fields))
	for f, v := range fields {
		c := make([]byte, len(v))
		copy(c, v)
		out[f] = c
	}
	return out
}

// BackendState exposes internal state for observability.
type BackendState struct {
	Keys   int    `json:"keys"`
	Writes uint64 `json:"writes"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BackendState{Keys: len(b.data), Writes: b.writes}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "memory-backend"
}

var _ core.Backend = (*Backend)(nil)
var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)
