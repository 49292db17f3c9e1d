// Package gen generates accessor tables for the structs of a package.
//
// The generated file lives in the analysed package itself, so its getters
// reach unexported fields and methods without reflection. Each struct gets
// one accessor.Table registered from init:
//   - Fields: every named field in declaration order
//   - Properties: getter methods (no parameters, one result) in source order
//   - Embedded: the embedded struct values, for promoted member lookups
//
// Generation uses text/template + go/format.
package gen
