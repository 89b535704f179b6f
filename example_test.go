package planstore_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aretw0/planstore"
)

var exampleSchema = []byte(`{
	"type": "object",
	"properties": {
		"objectId": {"type": "string"},
		"planType": {"type": "string"},
		"services": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["objectId", "planType"]
}`)

// Example_basic demonstrates the conditional read/write cycle: create, read
// with the returned tag, patch with the mandatory tag, delete.
func Example_basic() {
	svc, err := planstore.New("", planstore.WithSchemaBytes(exampleSchema))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. Create a plan.
	created, err := svc.Put(ctx, "plan-1", planstore.Document{
		"objectId": "plan-1",
		"planType": "inNetwork",
		"services": []any{"dental"},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("created:", !created.Unchanged)

	// 2. Conditional read: a matching tag omits the body.
	got, err := svc.Get(ctx, "plan-1", created.ETag)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("not modified:", got.NotModified)

	// 3. Patch with the current tag; the services array is unioned.
	patched, err := svc.Patch(ctx, "plan-1", planstore.Document{
		"services": []any{"dental", "vision"},
	}, created.ETag)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("services:", patched.Document["services"])

	// 4. A stale tag is rejected.
	_, err = svc.Patch(ctx, "plan-1", planstore.Document{"planType": "outOfNetwork"}, created.ETag)
	fmt.Println("stale patch rejected:", errors.Is(err, planstore.ErrPreconditionFailed))

	// 5. Delete.
	if err := svc.Delete(ctx, "plan-1"); err != nil {
		log.Fatal(err)
	}
	_, err = svc.Get(ctx, "plan-1", "")
	fmt.Println("gone:", errors.Is(err, planstore.ErrNotFound))

	// Output:
	// created: true
	// not modified: true
	// services: [dental vision]
	// stale patch rejected: true
	// gone: true
}
