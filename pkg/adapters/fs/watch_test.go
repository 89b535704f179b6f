package fs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/planstore/pkg/core"
)

func collectUntil(t *testing.T, events <-chan core.Event, want func(core.Event) bool) core.Event {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("event channel closed before expected event")
			}
			if want(ev) {
				return ev
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestWatch_SeesWrites(t *testing.T) {
	b, _ := newBackend(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := b.Watch(ctx, "**")
	require.NoError(t, err)

	require.NoError(t, b.PutFields(ctx, "plan-1", map[string][]byte{
		core.FieldData: []byte(`{"a":1}`),
		core.FieldETag: []byte("tag-1"),
	}))

	ev := collectUntil(t, events, func(e core.Event) bool { return e.ID == "plan-1" })
	assert.Equal(t, "tag-1", ev.ETag)
}

func TestWatch_FiltersByPattern(t *testing.T) {
	b, _ := newBackend(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := b.Watch(ctx, "plan-*")
	require.NoError(t, err)

	require.NoError(t, b.PutFields(ctx, "other-1", map[string][]byte{
		core.FieldData: []byte("{}"),
		core.FieldETag: []byte("t1"),
	}))
	require.NoError(t, b.PutFields(ctx, "plan-2", map[string][]byte{
		core.FieldData: []byte("{}"),
		core.FieldETag: []byte("t2"),
	}))

	ev := collectUntil(t, events, func(e core.Event) bool { return e.ID != "" })
	assert.Equal(t, "plan-2", ev.ID)
}

func TestWatch_SeesDeletes(t *testing.T) {
	b, _ := newBackend(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, b.PutFields(ctx, "plan-1", map[string][]byte{
		core.FieldData: []byte("{}"),
		core.FieldETag: []byte("t"),
	}))

	events, err := b.Watch(ctx, "**")
	require.NoError(t, err)

	existed, err := b.Delete(ctx, "plan-1")
	require.NoError(t, err)
	require.True(t, existed)

	ev := collectUntil(t, events, func(e core.Event) bool { return e.Op == core.OpDelete })
	assert.Equal(t, "plan-1", ev.ID)
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	b, _ := newBackend(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := b.Watch(ctx, "**")
	require.NoError(t, err)

	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return // closed as expected
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestWatch_RejectsInvalidPattern(t *testing.T) {
	b, _ := newBackend(t)

	_, err := b.Watch(context.Background(), "[")
	assert.Error(t, err)
}
