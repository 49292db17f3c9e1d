// Package lookup is the caller-facing layer over marker and resolve.
//
// A Finder translates editor labels into storage names, resolves paths and
// turns every absent result into an *Error carrying a diagnostic: which type,
// which path prefix, what went wrong and which names were close.
//
//	f := lookup.New()
//	dmg, err := f.RelativeByLabel(root, "weapons[1]", "Damage")
//	if err != nil {
//		fmt.Println(err) // [armory.Weapon]: [LABEL_NOT_FOUND] ...
//	}
package lookup
