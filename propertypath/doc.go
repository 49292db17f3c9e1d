// Package propertypath parses serialized-property style paths into segments.
//
// Two notations are accepted and are indistinguishable after normalization:
//
//	weapons.Array.data[2].damage   // host serialization form
//	weapons[2].damage              // compact form
//
// The host form "name.Array.size" denotes the length of the sequence "name"
// and is normalized to a length segment.
//
// The package only deals with syntax. Walking a live object graph is done by
// package resolve.
package propertypath
