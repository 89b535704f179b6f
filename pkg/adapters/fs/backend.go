// Package fs implements the Backend port on the local filesystem. Each record
// is one JSON envelope file holding the data/etag pair, written atomically
// via rename so the pair is never observed half-written.
//
// The adapter also supports watching: out-of-band changes to record files
// (another process, an editor) surface as events.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/introspection"
	json "github.com/goccy/go-json"

	"github.com/aretw0/planstore/pkg/core"
)

const recordExt = ".json"

// Config holds the configuration for the filesystem backend.
type Config struct {
	Dir    string
	Logger *slog.Logger
}

// Backend implements core.Backend over one directory of record files.
type Backend struct {
	dir    string
	logger *slog.Logger

	mu            sync.RWMutex
	watcherActive bool
}

// envelope is the on-disk shape of one record.
type envelope struct {
	Data json.RawMessage `json:"data"`
	ETag string          `json:"etag"`
}

// New creates the backend, ensuring the data directory exists.
func New(cfg Config) (*Backend, error) {
	if cfg.Dir == "" {
		return nil, errors.New("data directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{dir: cfg.Dir, logger: logger}, nil
}

// recordPath maps a key to a file name. Keys are escaped so ids containing
// path separators cannot climb out of the data directory.
func (b *Backend) recordPath(key string) string {
	return filepath.Join(b.dir, url.PathEscape(key)+recordExt)
}

// keyFromPath is the inverse of recordPath, used by the watcher.
func keyFromPath(path string) (string, bool) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, tempFilePrefix) || !strings.HasSuffix(name, recordExt) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimSuffix(name, recordExt))
	if err != nil {
		return "", false
	}
	return key, true
}

// Get reads the record envelope for key, or returns nil when absent.
func (b *Backend) Get(ctx context.Context, key string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(b.recordPath(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid record file for %q: %w", key, err)
	}

	return map[string][]byte{
		core.FieldData: []byte(env.Data),
		core.FieldETag: []byte(env.ETag),
	}, nil
}

// PutFields writes the record envelope for key atomically.
func (b *Backend) PutFields(ctx context.Context, key string, fields map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, ok := fields[core.FieldData]
	if !ok {
		return errors.New("missing data field")
	}

	env := envelope{
		Data: json.RawMessage(data),
		ETag: string(fields[core.FieldETag]),
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to serialize record for %q: %w", key, err)
	}

	return writeFileAtomic(b.recordPath(key), raw, 0o644)
}

// Delete removes the record file for key and reports whether it existed.
func (b *Backend) Delete(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	err := os.Remove(b.recordPath(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ping reports whether the data directory is still accessible.
func (b *Backend) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(b.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("data path is not a directory: %s", b.dir)
	}
	return nil
}

func (b *Backend) setWatcherActive(active bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.watcherActive = active
}

// BackendState exposes internal state for observability.
type BackendState struct {
	Dir           string `json:"dir"`
	Keys          int    `json:"keys"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := 0
	if entries, err := os.ReadDir(b.dir); err == nil {
		for _, e := range entries {
			if _, ok := keyFromPath(e.Name()); ok && !e.IsDir() {
				keys++
			}
		}
	}
	return BackendState{Dir: b.dir, Keys: keys, WatcherActive: b.watcherActive}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "fs-backend"
}

var _ core.Backend = (*Backend)(nil)
var _ core.Watchable = (*Backend)(nil)
var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)
