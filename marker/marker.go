package marker

import (
	"reflect"
	"slices"
)

// DefaultTagKey is the struct tag key that carries labels.
const DefaultTagKey = "editor"

// Label describes one marked field.
type Label struct {
	Label   string   // logical name from the tag
	Storage string   // declared field name
	Depth   int      // 0 for the type's own fields, 1 for fields of embedded structs, ...
	Via     []string // embedded field names leading to the field, outermost first
}

// Path returns the field names from the labelled type down to the field.
// Reading them in order reaches the field even when an outer field shadows
// its storage name.
func (l Label) Path() []string {
	return append(slices.Clone(l.Via), l.Storage)
}

// level is a struct type reached through the embedded fields in via.
type level[T any] struct {
	typ T
	via []string
}

func below[T any](via []string, name string, typ T) level[T] {
	return level[T]{typ: typ, via: append(slices.Clone(via), name)}
}

// Index finds labels under a given struct tag key.
type Index struct {
	tagKey string
}

// NewIndex creates an Index reading labels from tagKey.
// An empty key selects DefaultTagKey.
func NewIndex(tagKey string) *Index {
	if tagKey == "" {
		tagKey = DefaultTagKey
	}

	return &Index{tagKey: tagKey}
}

// TagKey returns the struct tag key used by the index.
func (x *Index) TagKey() string {
	return x.tagKey
}

var defaultIndex = NewIndex(DefaultTagKey)

// FindStorageName returns the storage name of the field of t labelled label
// with the default tag key.
func FindStorageName(t reflect.Type, label string) (string, bool) {
	return defaultIndex.FindStorageName(t, label)
}

// FindStorageName returns the storage name of the first field of t whose
// label equals label exactly.
func (x *Index) FindStorageName(t reflect.Type, label string) (string, bool) {
	l, ok := x.Find(t, label)

	return l.Storage, ok
}

// Find returns the first marked field of t whose label equals label exactly.
func (x *Index) Find(t reflect.Type, label string) (Label, bool) {
	return first(x.Labels(t), label)
}

func first(labels []Label, label string) (Label, bool) {
	for _, l := range labels {
		if l.Label == label {
			return l, true
		}
	}

	return Label{}, false
}

// Labels lists the marked fields of t in lookup order.
// Pointer types are dereferenced; non-struct types have no labels.
func (x *Index) Labels(t reflect.Type) []Label {
	var out []Label

	current := []level[reflect.Type]{{typ: structOf(t)}}
	seen := make(map[reflect.Type]bool)

	for depth := 0; len(current) > 0; depth++ {
		var next []level[reflect.Type]

		for _, lv := range current {
			st := lv.typ
			if st == nil || seen[st] {
				continue
			}

			seen[st] = true

			for i := range st.NumField() {
				f := st.Field(i)

				if label, ok := f.Tag.Lookup(x.tagKey); ok && label != "" {
					out = append(out, Label{Label: label, Storage: f.Name, Depth: depth, Via: lv.via})
				}

				if f.Anonymous {
					next = append(next, below(lv.via, f.Name, structOf(f.Type)))
				}
			}
		}

		current = next
	}

	return out
}

// structOf dereferences pointers and returns nil for non-struct types.
func structOf(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	return t
}
