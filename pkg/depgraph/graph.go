// Package depgraph builds and queries APK dependency graphs.
//
// A graph maps each resolved package name to its direct dependencies in
// discovery order. Construction is a depth-first traversal over a
// [Source], with cycle detection via an on-path set; queries cover
// reverse dependencies and breadth-first tier assignment for rendering.
package depgraph

import "context"

// Source supplies the direct dependencies of a package.
//
// Lookup must return an empty slice (not an error) for unknown packages.
// Errors are reserved for infrastructure failures (network, parsing) and
// are treated as an empty dependency list by [Build].
type Source interface {
	Lookup(ctx context.Context, name string) ([]string, error)
}

// Graph is a dependency graph: package name → direct dependencies.
//
// Keys preserve insertion order, which is the discovery order of the
// builder. Dependency lists may contain duplicates and may reference
// names that are not keys (unresolved leaves or cycle short-circuits).
//
// Graph is not safe for concurrent use.
type Graph struct {
	names []string
	deps  map[string][]string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{deps: make(map[string][]string)}
}

// Set records the dependency list for name, overwriting any previous
// entry. A name keeps its original insertion position on overwrite.
func (g *Graph) Set(name string, deps []string) {
	if _, exists := g.deps[name]; !exists {
		g.names = append(g.names, name)
	}
	g.deps[name] = deps
}

// Deps returns the recorded dependency list for name.
// The second return value reports whether name is a key in the graph.
func (g *Graph) Deps(name string) ([]string, bool) {
	d, ok := g.deps[name]
	return d, ok
}

// Has reports whether name has been resolved into the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.deps[name]
	return ok
}

// Names returns all resolved package names in insertion order.
// The returned slice is shared; callers must not modify it.
func (g *Graph) Names() []string { return g.names }

// Len returns the number of resolved packages.
func (g *Graph) Len() int { return len(g.names) }

// Root returns the first inserted package name, which for graphs produced
// by [Build] is the traversal root. ok is false for an empty graph.
func (g *Graph) Root() (name string, ok bool) {
	if len(g.names) == 0 {
		return "", false
	}
	return g.names[0], true
}
