// Package source provides dependency sources that do not require a
// repository index: a local fixture file for test mode and a static
// in-memory map.
//
// Both satisfy [depgraph.Source]; the index-backed source lives in
// package apkindex.
package source

import "context"

// Static serves dependencies from an in-memory map. Unknown packages
// resolve to an empty list. Useful for tests and embedded graphs.
type Static map[string][]string

// Lookup returns the mapped dependencies for name.
func (s Static) Lookup(_ context.Context, name string) ([]string, error) {
	return s[name], nil
}
