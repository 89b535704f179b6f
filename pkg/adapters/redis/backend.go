// Package redis implements the Backend port over Redis hashes: one hash per
// document key holding the data and etag fields.
//
// Atomicity comes from Redis itself. HSET writes every field of one key in a
// single command and HGETALL reads them in a single command, so the pair is
// never observed half-written.
package redis

import (
	"context"

	"github.com/aretw0/introspection"
	"github.com/redis/go-redis/v9"

	"github.com/aretw0/planstore/pkg/core"
)

// Config holds the connection settings for the Redis backend.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Backend implements core.Backend over a Redis client.
type Backend struct {
	client *redis.Client
}

// New connects a backend to the Redis server described by cfg.
func New(cfg Config) *Backend {
	return &Backend{client: redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})}
}

// NewFromClient wraps an existing client. The caller keeps ownership of it.
func NewFromClient(client *redis.Client) *Backend {
	return &Backend{client: client}
}

// Get returns the hash fields stored under key, or nil when the key is absent.
func (b *Backend) Get(ctx context.Context, key string) (map[string][]byte, error) {
	values, err := b.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		// HGETALL returns an empty map for missing keys.
		return nil, nil
	}

	fields := make(map[string][]byte, len(values))
	for f, v := range values {
		fields[f] = []byte(v)
	}
	return fields, nil
}

// PutFields writes all fields under key with a single HSET.
func (b *Backend) PutFields(ctx context.Context, key string, fields map[string][]byte) error {
	args := make([]any, 0, len(fields)*2)
	for f, v := range fields {
		args = append(args, f, v)
	}
	return b.client.HSet(ctx, key, args...).Err()
}

// Delete removes the key and reports whether it existed.
func (b *Backend) Delete(ctx context.Context, key string) (bool, error) {
	removed, err := b.client.Del(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

// Ping implements core.Backend.
func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close releases the underlying client's connections.
func (b *Backend) Close() error {
	return b.client.Close()
}

// BackendState exposes connection info for observability.
type BackendState struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	opts := b.client.Options()
	return BackendState{Addr: opts.Addr, DB: opts.DB}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "redis-backend"
}

var _ core.Backend = (*Backend)(nil)
var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)
