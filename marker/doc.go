// Package marker maps editor labels to struct field storage names.
//
// A field is marked with a struct tag holding a single label:
//
//	type Hero struct {
//		health int `editor:"Health"`
//	}
//
// FindStorageName(reflect.TypeFor[Hero](), "Health") returns "health".
//
// Both exported and unexported fields are considered. Embedded structs are
// searched level by level after the type's own fields, the same order the
// resolver uses for member lookup, so every label found here names a field the
// resolver can reach. When several fields share a label the first one wins:
// declaration order within a struct, outermost level first.
package marker
