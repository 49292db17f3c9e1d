package analyze

import (
	"strconv"
)

// TypeString returns a short, Go-like spelling of t for listings.
// Named types are spelled with their bare name.
func TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	if t.IsNamed() {
		return t.ID.Name
	}

	switch t.Kind {
	case TypeKindPointer:
		return "*" + TypeString(t.ElemType)
	case TypeKindSlice:
		return "[]" + TypeString(t.ElemType)
	case TypeKindArray:
		if at, ok := t.GoType.Underlying().(interface{ Len() int64 }); ok {
			return "[" + strconv.FormatInt(at.Len(), 10) + "]" + TypeString(t.ElemType)
		}

		return "[...]" + TypeString(t.ElemType)
	case TypeKindMap:
		return "map[" + TypeString(t.KeyType) + "]" + TypeString(t.ElemType)
	case TypeKindStruct:
		return "struct{...}"
	default:
		if t.GoType != nil {
			return t.GoType.String()
		}

		return "<unknown>"
	}
}

// FieldPath is a statically known path from a root struct to one of its
// (possibly nested) fields. "[]" marks "any element" of a slice or array.
type FieldPath struct {
	Path  string
	Field *FieldInfo
}

// FieldPaths lists the field paths reachable from root, descending through
// pointers, slices, arrays and nested structs up to maxDepth segments.
// Fields of embedded structs are listed both under the embedded field and
// promoted to the embedding level, the two ways a resolver reaches them.
func FieldPaths(root *TypeInfo, maxDepth int) []FieldPath {
	var out []FieldPath

	collectFieldPaths(root.Struct(), "", 1, maxDepth, &out)

	return out
}

func collectFieldPaths(st *TypeInfo, prefix string, depth, maxDepth int, out *[]FieldPath) {
	if st == nil || depth > maxDepth {
		return
	}

	for i := range st.Fields {
		field := &st.Fields[i]
		path := join(prefix, field.Name)

		*out = append(*out, FieldPath{Path: path, Field: field})

		if field.Embedded {
			collectFieldPaths(field.Type.Struct(), prefix, depth, maxDepth, out)
		}

		elem, suffix := elementOf(field.Type)
		collectFieldPaths(elem.Struct(), path+suffix, depth+1, maxDepth, out)
	}
}

// elementOf looks through slices and arrays, returning the element type and
// the path suffix for it.
func elementOf(t *TypeInfo) (*TypeInfo, string) {
	for t != nil && (t.Kind == TypeKindPointer || (t.Kind == TypeKindAlias && t.Underlying != nil)) {
		if t.Kind == TypeKindPointer {
			t = t.ElemType
		} else {
			t = t.Underlying
		}
	}

	if t != nil && (t.Kind == TypeKindSlice || t.Kind == TypeKindArray) {
		return t.ElemType, "[]"
	}

	return t, ""
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}
