// Package plantuml renders a dependency graph as PlantUML markup.
//
// Rendering is pure formatting over a finished graph and its level
// assignment: nodes become colored rectangles tiered by BFS distance
// from the root, edges become arrows. Diagram syntax concerns (escaping,
// color bucketing, dropping dangling edges) live entirely here and never
// leak into the graph itself.
package plantuml

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/alpinetools/apkgraph/pkg/depgraph"
)

// palette holds the tier colors; the tier index is capped at the last
// entry so arbitrarily deep graphs stay renderable.
var palette = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7"}

var unsafeID = regexp.MustCompile(`[^A-Za-z0-9_]`)

const header = `@startuml
skinparam rectangle {
    BackgroundColor White
    BorderColor Black
    ArrowColor #555555
    FontSize 13
}
left to right direction

`

// Render produces PlantUML markup for the graph.
//
// Each resolved package becomes a rectangle colored by its level;
// packages without a level (unreachable fragments after cycle cuts)
// fall back to tier 0. Edges are emitted only when the target is itself
// a resolved key, silently dropping danglers.
func Render(g *depgraph.Graph, levels map[string]int) string {
	var buf bytes.Buffer
	buf.WriteString(header)

	for _, name := range g.Names() {
		fmt.Fprintf(&buf, "rectangle %q as %s %s\n", name, NodeID(name), tierColor(levels, name))
	}

	buf.WriteString("\n")
	for _, name := range g.Names() {
		deps, _ := g.Deps(name)
		for _, dep := range deps {
			if g.Has(dep) {
				fmt.Fprintf(&buf, "%s --> %s\n", NodeID(name), NodeID(dep))
			}
		}
	}

	buf.WriteString("@enduml\n")
	return buf.String()
}

// NodeID converts a package name to an identifier legal in PlantUML.
// Package names are opaque and may contain characters like ':' or '.'
// (so:libc.musl-x86_64.so.1); everything outside [A-Za-z0-9_] becomes
// an underscore. The original name survives as the quoted label.
func NodeID(name string) string {
	return unsafeID.ReplaceAllString(name, "_")
}

func tierColor(levels map[string]int, name string) string {
	tier, ok := levels[name]
	if !ok || tier < 0 {
		tier = 0
	}
	if tier >= len(palette) {
		tier = len(palette) - 1
	}
	return palette[tier]
}
