package internal

import (
	"reflect"
)

// Tree is a nested configuration value, as decoded from YAML or JSON or built
// in Go. Mappings are Tree or map[string]any, sequences are any slice type, and
// everything else is a leaf.
type Tree map[string]any

func asTree(v any) (Tree, bool) {
	switch t := v.(type) {
	case Tree:
		return t, true
	case map[string]any:
		return Tree(t), true
	}
	return nil, false
}

// Merge deep-merges each of the sources into a copy of dst, in order, and
// returns the result. Later sources win. Neither dst nor the sources are
// modified, and the result shares no mappings or sequences with them.
//
// Mappings merge key by key. A sequence replaces the previous value with a
// shallow copy. A nil value is treated as absent and leaves the previous value
// in place. Any other value overwrites.
func Merge(dst Tree, sources ...Tree) Tree {
	out := copyTree(dst)
	for _, src := range sources {
		mergeInto(out, src)
	}
	return out
}

func mergeInto(dst, src Tree) {
	for key, value := range src {
		if value == nil {
			continue
		}
		if incoming, ok := asTree(value); ok {
			if existing, ok := asTree(dst[key]); ok {
				mergeInto(existing, incoming)
				continue
			}
			dst[key] = copyTree(incoming)
			continue
		}
		dst[key] = copyValue(value)
	}
}

func copyTree(t Tree) Tree {
	out := make(Tree, len(t))
	for key, value := range t {
		if value == nil {
			continue
		}
		if sub, ok := asTree(value); ok {
			out[key] = copyTree(sub)
			continue
		}
		out[key] = copyValue(value)
	}
	return out
}

// copyValue returns a shallow copy of slices and the value itself otherwise.
func copyValue(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.IsNil() {
		return v
	}
	cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(cp, rv)
	return cp.Interface()
}

// Lookup walks path through nested mappings. It reports false when a segment
// is missing, an intermediate value is not a mapping, or the leaf is nil.
func (t Tree) Lookup(path ...string) (any, bool) {
	var current any = t
	for _, segment := range path {
		m, ok := asTree(current)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	if current == nil {
		return nil, false
	}
	return current, true
}
