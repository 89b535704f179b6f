// Package planstore is the Composition Root for the planstore library.
//
// It connects the core business logic (Domain Layer) with the infrastructure
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// planstore is a conditional document store. It keeps schema-validated JSON
// documents under caller-chosen ids and answers "did this document change"
// with content-derived version tags, without ever holding a lock across a
// network round trip. Partial updates merge recursively and union arrays
// instead of replacing whole documents.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Schema-Gated Writes**: Every write is validated against a JSON Schema
//     loaded once at startup; patches are validated leniently (no required-field
//     enforcement, at any nesting depth).
//   - **Content-Addressed Versioning**: Version tags are SHA-256 digests of the
//     canonical serialization, base64url-encoded without padding.
//   - **Conditional Operations**: Reads short-circuit on a matching tag;
//     patches demand a matching tag before anything is merged.
//   - **Change Events**: Subscribers receive an event per successful mutation.
//   - **Typed Retrieval**: Generic wrapper (`typed.Store[T]`) for type-safe access.
//   - **Extensible**: Backends for memory, Redis, SQLite and the filesystem via
//     `core.Backend`.
//
// Usage:
//
//	// Initialize the service with functional options
//	svc, err := planstore.New("localhost:6379",
//		planstore.WithAdapter("redis"),
//		planstore.WithSchemaFile("schema/plan.json"),
//		planstore.WithLogger(logger),
//	)
//
//	// Store a plan
//	result, err := svc.Put(ctx, "plan-1", doc)
package planstore
