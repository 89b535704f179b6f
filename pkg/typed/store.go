// Package typed provides a type-safe wrapper over the document store. A
// struct is marshaled through the same validation, versioning and merge
// semantics as a raw document; the wrapper adds nothing but the conversions.
package typed

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/aretw0/planstore/pkg/core"
)

// Entry pairs a decoded value with the version tag it was read or written at.
type Entry[T any] struct {
	Value T
	ETag  string
}

// Store wraps a core.Service for one document type.
type Store[T any] struct {
	svc *core.Service
}

// NewStore creates a typed wrapper around svc.
func NewStore[T any](svc *core.Service) *Store[T] {
	return &Store[T]{svc: svc}
}

// Put stores value under id, create-or-replace.
func (s *Store[T]) Put(ctx context.Context, id string, value T) (Entry[T], error) {
	doc, err := toDocument(value)
	if err != nil {
		return Entry[T]{}, err
	}

	result, err := s.svc.Put(ctx, id, doc)
	if err != nil {
		return Entry[T]{}, err
	}
	return Entry[T]{Value: value, ETag: result.ETag}, nil
}

// Get retrieves the value under id.
func (s *Store[T]) Get(ctx context.Context, id string) (Entry[T], error) {
	result, err := s.svc.Get(ctx, id, "")
	if err != nil {
		return Entry[T]{}, err
	}

	value, err := fromDocument[T](result.Document)
	if err != nil {
		return Entry[T]{}, err
	}
	return Entry[T]{Value: value, ETag: result.ETag}, nil
}

// Patch applies a partial update conditional on tag, returning the merged
// value. The patch itself stays untyped: it is inherently a subset document.
func (s *Store[T]) Patch(ctx context.Context, id string, patch core.Document, tag string) (Entry[T], error) {
	result, err := s.svc.Patch(ctx, id, patch, tag)
	if err != nil {
		return Entry[T]{}, err
	}

	value, err := fromDocument[T](result.Document)
	if err != nil {
		return Entry[T]{}, err
	}
	return Entry[T]{Value: value, ETag: result.ETag}, nil
}

// Delete removes the value under id.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	return s.svc.Delete(ctx, id)
}

func toDocument(value any) (core.Document, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	var doc core.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("value is not a JSON object: %w", err)
	}
	return doc, nil
}

func fromDocument[T any](doc core.Document) (T, error) {
	var value T
	raw, err := json.Marshal(doc)
	if err != nil {
		return value, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, fmt.Errorf("failed to decode document: %w", err)
	}
	return value, nil
}
