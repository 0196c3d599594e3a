package depgraph

import "slices"

// ReverseDeps returns every package whose dependency list contains
// target, in graph insertion order. The result is empty (never nil)
// when nothing depends on target.
func ReverseDeps(g *Graph, target string) []string {
	reverse := []string{}
	for _, name := range g.Names() {
		deps, _ := g.Deps(name)
		if slices.Contains(deps, target) {
			reverse = append(reverse, name)
		}
	}
	return reverse
}

// Levels assigns each package its breadth-first distance from the
// graph root (the first inserted key). The root gets level 0 and the
// first-discovered level wins, so convergent paths of different
// lengths record the shortest distance.
//
// Names appearing only in dependency lists still receive a level; they
// simply have no edges of their own to expand. Nodes unreachable from
// the root are absent from the result and renderers must fall back to
// a default tier for them.
func Levels(g *Graph) map[string]int {
	levels := make(map[string]int)
	root, ok := g.Root()
	if !ok {
		return levels
	}

	levels[root] = 0
	queue := []string{root}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		deps, _ := g.Deps(name)
		for _, dep := range deps {
			if _, seen := levels[dep]; seen {
				continue
			}
			levels[dep] = levels[name] + 1
			queue = append(queue, dep)
		}
	}

	return levels
}
