package depgraph

import "context"

// Options configures graph construction.
type Options struct {
	// Logger receives diagnostics (cycles, failed lookups). Optional.
	Logger func(format string, args ...any)
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = func(string, ...any) {}
	}
	return o
}

// Build resolves the transitive dependency graph rooted at root.
//
// The traversal is a single-threaded depth-first walk. Each distinct
// package is looked up exactly once; a package already on the current
// root-to-here chain marks a cycle and is short-circuited to an empty
// dependency list instead of being re-fetched. Cycle participants are
// deliberately not marked visited, so a later acyclic path to the same
// package re-fetches its real dependency list and overwrites the entry.
//
// Failed or empty lookups degrade to an empty dependency list; Build
// never fails. Cancelling ctx stops descent at the next node entry and
// returns the partial graph built so far.
func Build(ctx context.Context, root string, src Source, opts Options) *Graph {
	b := &builder{
		ctx:     ctx,
		src:     src,
		opts:    opts.withDefaults(),
		graph:   New(),
		visited: make(map[string]bool),
		onPath:  make(map[string]bool),
	}
	b.visit(root)
	return b.graph
}

// builder holds the per-call traversal state. The visited and onPath
// sets are mutated with strict stack discipline, which is only valid
// because visits are sequential and fully nested.
type builder struct {
	ctx     context.Context
	src     Source
	opts    Options
	graph   *Graph
	visited map[string]bool
	onPath  map[string]bool
}

func (b *builder) visit(name string) {
	if b.ctx.Err() != nil {
		return
	}

	if b.onPath[name] {
		// Cycle: terminate expansion here. The entry is overwritten with
		// an empty list and name is taken back out of visited so an
		// independent acyclic path can still resolve it for real.
		b.opts.Logger("cycle detected at %s, cutting edge", name)
		b.graph.Set(name, nil)
		delete(b.visited, name)
		return
	}

	if b.visited[name] {
		return
	}

	b.visited[name] = true
	b.onPath[name] = true

	deps, err := b.src.Lookup(b.ctx, name)
	if err != nil {
		b.opts.Logger("lookup %s failed, treating as leaf: %v", name, err)
		deps = nil
	}
	b.graph.Set(name, deps)

	for _, dep := range deps {
		b.visit(dep)
	}

	delete(b.onPath, name)
}
