// Package accessor provides name-based member access without reflection.
//
// A type takes part either by implementing Gettable itself or by having a
// Table registered for it. Tables are usually written by the accessor
// generator (see "fieldpath gen") into the package that declares the type, so
// unexported fields and methods are covered as well:
//
//	func init() {
//		accessor.Register(accessor.Table[Weapon]{
//			Fields: []accessor.Member[Weapon]{
//				{Name: "name", Get: func(v *Weapon) any { return v.name }},
//			},
//		})
//	}
//
// The resolver consults Gettable first, then the registry, and only then
// falls back to reflection.
package accessor
