// Package main provides the CLI entrypoint for fieldpath.
//
// fieldpath resolves editor property paths against documents and Go types:
//   - get: resolve a path inside a YAML or JSON document
//   - normalize: print the compact form and segments of host paths
//   - labels: list the editor labels of the structs of a package
//   - gen: write accessor tables for the structs of a package
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
