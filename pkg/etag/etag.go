// Package etag derives opaque, content-addressed version tags for JSON documents.
//
// The tag is the sole mechanism for cache validation and optimistic
// concurrency, so it must be deterministic across processes: same content,
// same tag, forever. Canonicalization rule: a document is decoded to its
// generic form and re-marshaled, which sorts object keys and drops
// insignificant whitespace. Field order supplied by the caller therefore
// never influences the tag.
package etag

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	json "github.com/goccy/go-json"
)

// Canonical returns the canonical serialization of a JSON value.
func Canonical(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return b, nil
}

// Tag computes the version tag for a JSON value: SHA-256 over its canonical
// serialization, base64url-encoded without padding.
func Tag(v any) (string, error) {
	b, err := Canonical(v)
	if err != nil {
		return "", err
	}
	return TagBytes(b), nil
}

// TagBytes computes the version tag for already-canonical bytes.
func TagBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
