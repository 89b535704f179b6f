// Package sqlite implements the Backend port over a single SQLite database.
//
// Each record is one row; the data/etag pair is written by a single upsert
// statement, which SQLite executes atomically.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/aretw0/introspection"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aretw0/planstore/pkg/core"
)

// Backend implements core.Backend over a SQLite database file.
type Backend struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the database at dbPath and ensures the schema.
func New(dbPath string) (*Backend, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		key  TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		etag TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, err
	}

	return &Backend{db: db, path: dbPath}, nil
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// Get returns the record fields stored under key, or nil when absent.
func (b *Backend) Get(ctx context.Context, key string) (map[string][]byte, error) {
	var data []byte
	var tag string
	err := b.db.QueryRowContext(ctx,
		"SELECT data, etag FROM records WHERE key = ?", key).Scan(&data, &tag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return map[string][]byte{
		core.FieldData: data,
		core.FieldETag: []byte(tag),
	}, nil
}

// PutFields upserts the record fields for key in one statement.
func (b *Backend) PutFields(ctx context.Context, key string, fields map[string][]byte) error {
	data, ok := fields[core.FieldData]
	if !ok {
		return errors.New("missing data field")
	}
	tag := fields[core.FieldETag]

	_, err := b.db.ExecContext(ctx,
		`INSERT INTO records (key, data, etag) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, etag = excluded.etag`,
		key, data, string(tag))
	return err
}

// Delete removes the record for key and reports whether it existed.
func (b *Backend) Delete(ctx context.Context, key string) (bool, error) {
	res, err := b.db.ExecContext(ctx, "DELETE FROM records WHERE key = ?", key)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Ping implements core.Backend.
func (b *Backend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

// BackendState exposes internal state for observability.
type BackendState struct {
	Path string `json:"path"`
	Keys int    `json:"keys"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	var keys int
	_ = b.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&keys)
	return BackendState{Path: b.path, Keys: keys}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "sqlite-backend"
}

var _ core.Backend = (*Backend)(nil)
var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)
