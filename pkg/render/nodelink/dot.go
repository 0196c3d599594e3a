// Package nodelink renders a dependency graph in Graphviz DOT format,
// with optional SVG rasterization.
//
// Like the PlantUML renderer it is pure formatting: tier colors come
// from the supplied level assignment and edges to unresolved names are
// dropped here, not during graph construction.
package nodelink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/alpinetools/apkgraph/pkg/depgraph"
)

// tierFills mirrors the PlantUML palette so both formats tier alike.
var tierFills = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7"}

// ToDOT converts a graph plus level assignment to DOT markup.
// Node identifiers are quoted, so package names need no sanitization
// beyond what %q provides.
func ToDOT(g *depgraph.Graph, levels map[string]int) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=13, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, name := range g.Names() {
		fmt.Fprintf(&buf, "  %q [fillcolor=%q];\n", name, tierFill(levels, name))
	}

	buf.WriteString("\n")
	for _, name := range g.Names() {
		deps, _ := g.Deps(name)
		for _, dep := range deps {
			if g.Has(dep) {
				fmt.Fprintf(&buf, "  %q -> %q;\n", name, dep)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG rasterizes DOT markup to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

func tierFill(levels map[string]int, name string) string {
	tier, ok := levels[name]
	if !ok || tier < 0 {
		tier = 0
	}
	if tier >= len(tierFills) {
		tier = len(tierFills) - 1
	}
	return tierFills[tier]
}
