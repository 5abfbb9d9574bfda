package graph

import (
	"fmt"
	"sort"
)

// Graph declares nodes and edges (dependency relationships).
type Graph struct {
	Nodes map[string]bool
	Edges []Edge
}

// Edge represents a dependency: To depends on From.
type Edge struct {
	From string
	To   string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{Nodes: make(map[string]bool)}
}

// AddNode declares a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(name string) {
	g.Nodes[name] = true
}

// AddDependency records that node depends on dep.
func (g *Graph) AddDependency(node, dep string) {
	g.Edges = append(g.Edges, Edge{From: dep, To: node})
}

// dependencies returns, for each node, the nodes it depends on, in edge
// insertion order.
func (g *Graph) dependencies() map[string][]string {
	deps := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		deps[e.To] = append(deps[e.To], e.From)
	}
	return deps
}

// FindCycle searches for a dependency cycle using depth-first traversal
// from every node, maintaining a path-local visited set. Every node is
// examined as a DFS root because the graph may be a disjoint forest.
//
// If a cycle exists it returns the full path that closed the loop, e.g.
// ["a", "b", "c", "a"]. It returns nil for an acyclic graph.
func (g *Graph) FindCycle() []string {
	deps := g.dependencies()

	roots := make([]string, 0, len(g.Nodes))
	for name := range g.Nodes {
		roots = append(roots, name)
	}
	sort.Strings(roots)

	for _, root := range roots {
		onPath := make(map[string]int, len(g.Nodes))
		if cycle := dfsCycle(root, deps, onPath, []string{}); cycle != nil {
			return cycle
		}
	}
	return nil
}

func dfsCycle(node string, deps map[string][]string, onPath map[string]int, path []string) []string {
	if idx, revisited := onPath[node]; revisited {
		cycle := append([]string{}, path[idx:]...)
		return append(cycle, node)
	}

	onPath[node] = len(path)
	path = append(path, node)

	for _, dep := range deps[node] {
		if cycle := dfsCycle(dep, deps, onPath, path); cycle != nil {
			return cycle
		}
	}

	delete(onPath, node)
	return nil
}

// BuildLevels uses Kahn's algorithm to group nodes by dependency level.
// Level 0 holds nodes with no dependencies; each subsequent level holds
// nodes whose dependencies are all in earlier levels. Nodes within the
// same level are independent of each other.
// Returns an error if an edge references an unknown node or a cycle exists.
func (g *Graph) BuildLevels() ([][]string, error) {
	inDegree := make(map[string]int, len(g.Nodes))
	dependents := make(map[string][]string)

	for name := range g.Nodes {
		inDegree[name] = 0
	}

	for _, e := range g.Edges {
		if !g.Nodes[e.From] {
			return nil, fmt.Errorf("graph: edge references unknown node %q", e.From)
		}
		if !g.Nodes[e.To] {
			return nil, fmt.Errorf("graph: edge references unknown node %q", e.To)
		}
		inDegree[e.To]++
		dependents[e.From] = append(dependents[e.From], e.To)
	}

	var queue []string
	for name, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}

	var levels [][]string
	visited := 0

	for len(queue) > 0 {
		sort.Strings(queue)
		levels = append(levels, queue)
		visited += len(queue)

		var next []string
		for _, name := range queue {
			for _, dep := range dependents[name] {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		queue = next
	}

	if visited != len(g.Nodes) {
		return nil, fmt.Errorf("graph: cycle detected, processed %d of %d nodes", visited, len(g.Nodes))
	}

	return levels, nil
}

// DirectDependents returns the nodes that directly depend on name, in edge
// insertion order.
func (g *Graph) DirectDependents(name string) []string {
	var result []string
	for _, e := range g.Edges {
		if e.From == name {
			result = append(result, e.To)
		}
	}
	return result
}
