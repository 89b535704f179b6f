package merge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	json "github.com/goccy/go-json"

	"github.com/aretw0/planstore/pkg/merge"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		patch string
		want  string
	}{
		{
			name:  "scalar overwrite and insert",
			base:  `{"a":1,"b":"old"}`,
			patch: `{"b":"new","c":true}`,
			want:  `{"a":1,"b":"new","c":true}`,
		},
		{
			name:  "null overwrites scalar",
			base:  `{"a":1}`,
			patch: `{"a":null}`,
			want:  `{"a":null}`,
		},
		{
			name:  "objects merge recursively",
			base:  `{"o":{"x":1,"y":2}}`,
			patch: `{"o":{"y":3,"z":4}}`,
			want:  `{"o":{"x":1,"y":3,"z":4}}`,
		},
		{
			name:  "object replaces scalar",
			base:  `{"o":"scalar"}`,
			patch: `{"o":{"x":1}}`,
			want:  `{"o":{"x":1}}`,
		},
		{
			name:  "array union dedups and appends in patch order",
			base:  `{"arr":[1,2]}`,
			patch: `{"arr":[2,3]}`,
			want:  `{"arr":[1,2,3]}`,
		},
		{
			name:  "array union with object elements",
			base:  `{"arr":[{"id":1},{"id":2}]}`,
			patch: `{"arr":[{"id":2},{"id":3}]}`,
			want:  `{"arr":[{"id":1},{"id":2},{"id":3}]}`,
		},
		{
			name:  "duplicates within the patch array are added once",
			base:  `{"arr":[1]}`,
			patch: `{"arr":[2,2,2]}`,
			want:  `{"arr":[1,2]}`,
		},
		{
			name:  "array replaces non-array",
			base:  `{"arr":{"not":"array"}}`,
			patch: `{"arr":[1]}`,
			want:  `{"arr":[1]}`,
		},
		{
			name:  "spec example",
			base:  `{"a":1,"arr":[1,2]}`,
			patch: `{"arr":[2,3],"b":{"x":1}}`,
			want:  `{"a":1,"arr":[1,2,3],"b":{"x":1}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := merge.Apply(decode(t, tt.base), decode(t, tt.patch))
			assert.Equal(t, decode(t, tt.want), got)
		})
	}
}

func TestApply_DoesNotMutateBase(t *testing.T) {
	base := decode(t, `{"o":{"x":1},"arr":[1,2],"s":"keep"}`)
	patch := decode(t, `{"o":{"y":2},"arr":[3],"s":"changed"}`)

	_ = merge.Apply(base, patch)

	assert.Equal(t, decode(t, `{"o":{"x":1},"arr":[1,2],"s":"keep"}`), base)
}

func TestApply_PatchSubtreesAreCopied(t *testing.T) {
	base := decode(t, `{}`)
	patch := decode(t, `{"o":{"x":1},"arr":[{"id":1}]}`)

	merged := merge.Apply(base, patch)

	// Mutating the patch afterwards must not leak into the result.
	patch["o"].(map[string]any)["x"] = float64(99)
	patch["arr"].([]any)[0].(map[string]any)["id"] = float64(99)

	assert.Equal(t, float64(1), merged["o"].(map[string]any)["x"])
	assert.Equal(t, float64(1), merged["arr"].([]any)[0].(map[string]any)["id"])
}

func TestApply_NoOpProducesEqualDocument(t *testing.T) {
	base := decode(t, `{"a":1,"arr":[1,2],"o":{"x":1}}`)
	patch := decode(t, `{"a":1,"arr":[2],"o":{"x":1}}`)

	merged := merge.Apply(base, patch)

	assert.Equal(t, base, merged)
}
