// Package resolve dereferences property paths against live Go values.
//
// Given a root value and a path such as "weapons.Array.data[1].damage",
// Resolve walks the graph one segment at a time. Each step looks a member up
// by name, in this order:
//
//  1. the value implements accessor.Gettable: its answer is final;
//  2. an accessor table is registered for the value's type;
//  3. reflection, level by level: the value itself first, then the structs
//     it embeds, then the structs those embed. On each level struct fields
//     are matched by exact name (unexported ones included), then getter
//     methods (no parameters, one result) case-insensitively, then entries
//     of string-keyed maps.
//
// An indexed segment then steps into a slice, an array, an iter.Seq or a
// value with an All() iter.Seq method, advancing one element at a time.
//
// Every failure (unknown member, nil before the end of the path, index out of
// range, malformed path) is reported the same way: a false second result.
// Use package lookup when the failing segment matters.
//
// The resolver never mutates the graph and keeps no state between calls.
// It does not synchronise with writers; call it from the goroutine that owns
// the graph.
package resolve
