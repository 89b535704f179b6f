package fs

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/planstore/pkg/core"
)

// Watch emits an event for every record file whose key matches pattern
// (doublestar syntax, e.g. "plan-*" or "**"). The channel is closed when ctx
// is done. Events produced by this process's own writes are reported too;
// consumers needing only service-level changes should use Service.Subscribe.
func (b *Backend) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(b.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", b.dir, err)
	}

	events := make(chan core.Event, 64)
	b.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer func() {
			_ = watcher.Close()
			b.setWatcherActive(false)
			close(events)
		}()

		for {
			select {
			case <-ctx.Done():
				return nil

			case fe, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				ev, ok := b.translate(fe, pattern)
				if !ok {
					continue
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return nil
				}

			case werr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				b.logger.Error("watch error", "error", werr)
			}
		}
	})

	return events, nil
}

// translate maps a filesystem notification to a store event, filtering out
// temp files from in-flight atomic writes and keys outside the pattern.
func (b *Backend) translate(fe fsnotify.Event, pattern string) (core.Event, bool) {
	key, ok := keyFromPath(fe.Name)
	if !ok {
		return core.Event{}, false
	}
	if match, err := doublestar.Match(pattern, key); err != nil || !match {
		return core.Event{}, false
	}

	var op core.Op
	switch {
	case fe.Has(fsnotify.Create):
		op = core.OpCreate
	case fe.Has(fsnotify.Write):
		op = core.OpPatch
	case fe.Has(fsnotify.Remove), fe.Has(fsnotify.Rename):
		op = core.OpDelete
	default:
		return core.Event{}, false
	}

	ev := core.Event{
		Op:        op,
		ID:        key,
		Timestamp: time.Now().Unix(),
	}

	// Best effort: surface the current tag for records that still exist.
	if op != core.OpDelete {
		if fields, err := b.Get(context.Background(), key); err == nil && fields != nil {
			ev.ETag = string(fields[core.FieldETag])
		}
	}
	return ev, true
}
