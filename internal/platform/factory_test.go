package platform

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/planstore/pkg/adapters/memory"
)

var testSchema = []byte(`{
	"type": "object",
	"properties": {"objectId": {"type": "string"}},
	"required": ["objectId"]
}`)

func TestNew_RequiresSchema(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestNew_UnknownAdapter(t *testing.T) {
	_, err := New("", WithSchemaBytes(testSchema), WithAdapter("bogus"))
	assert.Error(t, err)
}

func TestNew_MemoryAdapter(t *testing.T) {
	svc, err := New("", WithSchemaBytes(testSchema))
	require.NoError(t, err)
	assert.NoError(t, svc.Ping(context.Background()))
}

func TestNew_FsAdapter(t *testing.T) {
	svc, err := New(t.TempDir(), WithSchemaBytes(testSchema), WithAdapter("fs"))
	require.NoError(t, err)

	result, err := svc.Put(context.Background(), "plan-1", map[string]any{"objectId": "plan-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ETag)
}

func TestNew_SqliteAdapter(t *testing.T) {
	svc, err := New(filepath.Join(t.TempDir(), "plans.db"),
		WithSchemaBytes(testSchema), WithAdapter("sqlite"))
	require.NoError(t, err)
	assert.NoError(t, svc.Ping(context.Background()))
}

func TestNew_SqliteAdapterRequiresPath(t *testing.T) {
	_, err := New("", WithSchemaBytes(testSchema), WithAdapter("sqlite"))
	assert.Error(t, err)
}

func TestNew_InjectedBackendSkipsAdapter(t *testing.T) {
	backend := memory.New()
	svc, err := New("", WithSchemaBytes(testSchema), WithAdapter("bogus-but-unused"), WithBackend(backend))
	require.NoError(t, err)

	_, err = svc.Put(context.Background(), "plan-1", map[string]any{"objectId": "plan-1"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), backend.Writes())
}

func TestNew_ReadOnly(t *testing.T) {
	svc, err := New("", WithSchemaBytes(testSchema), WithReadOnly(true))
	require.NoError(t, err)

	_, err = svc.Put(context.Background(), "plan-1", map[string]any{"objectId": "plan-1"})
	assert.Error(t, err)
}
