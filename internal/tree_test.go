package internal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	for _, test := range []struct {
		description string
		dst         Tree
		sources     []Tree
		want        Tree
	}{{
		description: "nested mappings merge key by key",
		dst:         Tree{"a": Tree{"x": 1}},
		sources:     []Tree{{"a": Tree{"y": 2}}},
		want:        Tree{"a": Tree{"x": 1, "y": 2}},
	}, {
		description: "plain maps count as mappings",
		dst:         Tree{"a": map[string]any{"x": 1}},
		sources:     []Tree{{"a": map[string]any{"y": 2}}},
		want:        Tree{"a": Tree{"x": 1, "y": 2}},
	}, {
		description: "sequences are replaced, not appended",
		dst:         Tree{"a": []any{1, 2}},
		sources:     []Tree{{"a": []any{3}}},
		want:        Tree{"a": []any{3}},
	}, {
		description: "later sources win",
		dst:         Tree{"a": 1},
		sources:     []Tree{{"a": 2}, {"a": 3}},
		want:        Tree{"a": 3},
	}, {
		description: "nil does not overwrite",
		dst:         Tree{"a": Tree{"x": 1}},
		sources:     []Tree{{"a": Tree{"x": nil}}},
		want:        Tree{"a": Tree{"x": 1}},
	}, {
		description: "zero values overwrite",
		dst:         Tree{"n": 5, "b": true, "s": "x"},
		sources:     []Tree{{"n": 0, "b": false, "s": ""}},
		want:        Tree{"n": 0, "b": false, "s": ""},
	}, {
		description: "a mapping replaces a leaf",
		dst:         Tree{"bindto": "#a"},
		sources:     []Tree{{"bindto": Tree{"element": "#b"}}},
		want:        Tree{"bindto": Tree{"element": "#b"}},
	}, {
		description: "a leaf replaces a mapping",
		dst:         Tree{"bindto": Tree{"element": "#b"}},
		sources:     []Tree{{"bindto": "#a"}},
		want:        Tree{"bindto": "#a"},
	}, {
		description: "nil sources are skipped",
		dst:         Tree{"a": 1},
		sources:     []Tree{nil, {"b": 2}},
		want:        Tree{"a": 1, "b": 2},
	}} {
		t.Run(test.description, func(t *testing.T) {
			got := Merge(test.dst, test.sources...)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Merge() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeDoesNotAlias(t *testing.T) {
	inner := Tree{"x": 1}
	list := []any{1, 2}
	src := Tree{"a": inner, "l": list}

	got := Merge(Tree{}, src)
	got["a"].(Tree)["x"] = 2
	got["l"].([]any)[0] = 9

	assert.Equal(t, 1, inner["x"])
	assert.Equal(t, 1, list[0])
}

func TestLookup(t *testing.T) {
	tree := Tree{
		"data": map[string]any{
			"value": "amount",
			"zero":  0,
			"none":  nil,
		},
		"leaf": "x",
	}

	v, ok := tree.Lookup("data", "value")
	assert.True(t, ok)
	assert.Equal(t, "amount", v)

	v, ok = tree.Lookup("data", "zero")
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = tree.Lookup("data", "none")
	assert.False(t, ok)

	_, ok = tree.Lookup("data", "missing")
	assert.False(t, ok)

	_, ok = tree.Lookup("leaf", "deeper")
	assert.False(t, ok)
}
