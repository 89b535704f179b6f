package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"
	json "github.com/goccy/go-json"

	"github.com/aretw0/planstore/pkg/etag"
	"github.com/aretw0/planstore/pkg/merge"
)

const defaultEventBuffer = 100

// Service implements the conditional document store over a Backend.
//
// It holds no lock across the read-decide-write sequence of any operation;
// concurrency safety rests entirely on the backend's per-key atomicity. The
// tag comparison in Patch is therefore a check against a possibly stale
// snapshot, not a true compare-and-swap: two concurrent patches that read the
// same base tag can both pass the precondition and both write, last writer
// wins. A backend-side conditional write would close that gap.
type Service struct {
	backend   Backend
	validator Validator
	logger    *slog.Logger
	events    *broker
	readOnly  bool
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEventBuffer sets the per-subscriber event buffer size.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.events = newBroker(size)
		}
	}
}

// WithReadOnly enables read-only mode: Put, Patch and Delete return
// ErrReadOnly without touching the backend.
func WithReadOnly(enabled bool) Option {
	return func(s *Service) {
		s.readOnly = enabled
	}
}

// NewService creates a Service over the given backend and validator.
func NewService(backend Backend, validator Validator, opts ...Option) *Service {
	s := &Service{
		backend:   backend,
		validator: validator,
		logger:    slog.Default(),
		events:    newBroker(defaultEventBuffer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PutResult reports the outcome of a create-or-replace.
type PutResult struct {
	ETag string

	// Unchanged means the stored content was byte-identical to the input and
	// no write was performed (idempotent create).
	Unchanged bool
}

// GetResult reports the outcome of a conditional read.
type GetResult struct {
	// Document is nil when NotModified is set; the body is omitted on a tag
	// match so conditional readers pay no decode cost.
	Document Document
	ETag     string

	NotModified bool
}

// PatchResult reports the outcome of a conditional partial update.
type PatchResult struct {
	Document Document
	ETag     string

	// Unchanged means the merge had no effect and no write was performed.
	Unchanged bool
}

// Put validates doc against the full schema and stores it under id,
// create-or-replace. When the stored content is byte-identical to the new
// canonical serialization, nothing is written and the existing tag is
// returned with Unchanged set.
func (s *Service) Put(ctx context.Context, id string, doc Document) (PutResult, error) {
	if s.readOnly {
		return PutResult{}, ErrReadOnly
	}
	if id == "" {
		return PutResult{}, errors.New("document id cannot be empty")
	}

	if err := s.validator.Validate(doc); err != nil {
		return PutResult{}, err
	}

	data, err := etag.Canonical(doc)
	if err != nil {
		return PutResult{}, fmt.Errorf("failed to serialize document %q: %w", id, err)
	}

	fields, err := s.backend.Get(ctx, id)
	if err != nil {
		return PutResult{}, &StoreUnavailableError{Op: "put", Err: err}
	}

	if existing, ok := fields[FieldData]; ok && bytes.Equal(existing, data) {
		// Idempotent create: identical content keeps the existing record.
		return PutResult{ETag: etag.TagBytes(existing), Unchanged: true}, nil
	}

	tag := etag.TagBytes(data)
	if err := s.persist(ctx, "put", id, data, tag); err != nil {
		return PutResult{}, err
	}

	s.logger.Debug("document stored", "id", id, "etag", tag)
	s.publish(OpCreate, id, tag)
	return PutResult{ETag: tag}, nil
}

// Get retrieves the document under id. When clientTag is non-empty and
// matches the current tag, the body is omitted and NotModified is set.
func (s *Service) Get(ctx context.Context, id, clientTag string) (GetResult, error) {
	fields, err := s.backend.Get(ctx, id)
	if err != nil {
		return GetResult{}, &StoreUnavailableError{Op: "get", Err: err}
	}

	data, ok := fields[FieldData]
	if !ok {
		return GetResult{}, ErrNotFound
	}

	// Recompute rather than trusting the cached etag field: the tag is
	// derived state and the data bytes are authoritative.
	current := etag.TagBytes(data)
	if clientTag != "" && clientTag == current {
		return GetResult{ETag: current, NotModified: true}, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return GetResult{}, &SerializationError{Key: id, Err: err}
	}
	return GetResult{Document: doc, ETag: current}, nil
}

// Patch applies a partial update to the document under id, conditional on
// clientTag matching the current tag. clientTag is mandatory; a patch without
// one is rejected before any backend access.
func (s *Service) Patch(ctx context.Context, id string, patchDoc Document, clientTag string) (PatchResult, error) {
	if s.readOnly {
		return PatchResult{}, ErrReadOnly
	}
	if clientTag == "" {
		return PatchResult{}, ErrETagRequired
	}

	fields, err := s.backend.Get(ctx, id)
	if err != nil {
		return PatchResult{}, &StoreUnavailableError{Op: "patch", Err: err}
	}

	data, ok := fields[FieldData]
	if !ok {
		return PatchResult{}, ErrNotFound
	}

	current := etag.TagBytes(data)
	if current != clientTag {
		// The caller's view is stale. No merge is attempted.
		return PatchResult{}, ErrPreconditionFailed
	}

	if err := s.validator.ValidatePartial(patchDoc); err != nil {
		return PatchResult{}, err
	}

	var existing Document
	if err := json.Unmarshal(data, &existing); err != nil {
		return PatchResult{}, &SerializationError{Key: id, Err: err}
	}

	merged := merge.Apply(existing, patchDoc)
	mergedData, err := etag.Canonical(merged)
	if err != nil {
		return PatchResult{}, fmt.Errorf("failed to serialize merged document %q: %w", id, err)
	}

	if jsonpatch.Equal(mergedData, data) {
		return PatchResult{Document: existing, ETag: current, Unchanged: true}, nil
	}

	newTag := etag.TagBytes(mergedData)
	if err := s.persist(ctx, "patch", id, mergedData, newTag); err != nil {
		return PatchResult{}, err
	}

	s.logger.Debug("document patched", "id", id, "etag", newTag)
	s.publish(OpPatch, id, newTag)
	return PatchResult{Document: merged, ETag: newTag}, nil
}

// Delete removes the document under id. Unconditional: no version check.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.readOnly {
		return ErrReadOnly
	}

	existed, err := s.backend.Delete(ctx, id)
	if err != nil {
		return &StoreUnavailableError{Op: "delete", Err: err}
	}
	if !existed {
		return ErrNotFound
	}

	s.logger.Debug("document deleted", "id", id)
	s.publish(OpDelete, id, "")
	return nil
}

// Ping reports whether the backend is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.backend.Ping(ctx); err != nil {
		return &StoreUnavailableError{Op: "ping", Err: err}
	}
	return nil
}

// Subscribe returns a channel of change events published after every
// successful Put, Patch and Delete, plus a cancel function that releases the
// subscription. Slow subscribers drop events rather than block writers.
func (s *Service) Subscribe() (<-chan Event, func()) {
	return s.events.subscribe()
}

// Watch observes out-of-band changes to stored records if the backend
// supports it (see Watchable).
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.backend.(Watchable)
	if !ok {
		return nil, errors.New("backend does not support watching")
	}
	return w.Watch(ctx, pattern)
}

func (s *Service) persist(ctx context.Context, op, id string, data []byte, tag string) error {
	fields := map[string][]byte{
		FieldData: data,
		FieldETag: []byte(tag),
	}
	if err := s.backend.PutFields(ctx, id, fields); err != nil {
		return &StoreUnavailableError{Op: op, Err: err}
	}
	return nil
}

func (s *Service) publish(op Op, id, tag string) {
	s.events.publish(Event{
		Op:        op,
		ID:        id,
		ETag:      tag,
		Timestamp: time.Now().Unix(),
	})
}
