package depgraph

import (
	"context"
	"slices"
)

// Name identifies a package. Names are opaque and case-sensitive; they are
// the uniqueness key for all graph operations. Diagram identifiers derived
// from names have their own sanitization rules and live in pkg/render -
// keeping Name a distinct type prevents mixing the two up.
type Name string

// String returns the package name as a plain string.
func (n Name) String() string { return string(n) }

// Source answers dependency queries for the graph builder.
type Source interface {
	// Dependencies returns the direct dependency names of pkg in the order
	// the backing index lists them. It fails with an error carrying
	// errors.ErrCodePackageNotFound when pkg is absent from the index.
	Dependencies(ctx context.Context, pkg Name) ([]Name, error)
}

// Graph maps each fully expanded package to its direct dependency list.
//
// Keys are exactly the packages the builder visited and expanded; values may
// reference names that are not themselves keys (unexpanded leaves, or nodes
// cut off by depth or cycle pruning), so the graph is not node-closed.
// Dependency lists keep the source's order and may contain duplicates.
//
// Insertion order of keys is preserved so that output listing and rendering
// are deterministic across runs. Graph is not safe for concurrent use.
type Graph struct {
	order []Name
	deps  map[Name][]Name
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{deps: make(map[Name][]Name)}
}

// Add records the direct dependencies of pkg. Expansion is idempotent once
// recorded: a second Add for the same package is ignored, so an entry is
// never overwritten with a different value.
func (g *Graph) Add(pkg Name, deps []Name) {
	if _, exists := g.deps[pkg]; exists {
		return
	}
	g.deps[pkg] = slices.Clone(deps)
	g.order = append(g.order, pkg)
}

// Deps returns the recorded direct dependencies of pkg and whether pkg is a
// key of the graph. The returned slice must not be modified.
func (g *Graph) Deps(pkg Name) ([]Name, bool) {
	d, ok := g.deps[pkg]
	return d, ok
}

// Contains reports whether pkg was expanded into the graph.
func (g *Graph) Contains(pkg Name) bool {
	_, ok := g.deps[pkg]
	return ok
}

// Packages returns the graph keys in insertion order.
func (g *Graph) Packages() []Name { return slices.Clone(g.order) }

// Len returns the number of expanded packages.
func (g *Graph) Len() int { return len(g.deps) }

// Nodes returns every name appearing in the graph, keys first in insertion
// order, followed by dangling dependency references in first-seen order.
// Each name appears once.
func (g *Graph) Nodes() []Name {
	seen := make(map[Name]bool, len(g.order))
	nodes := make([]Name, 0, len(g.order))
	for _, pkg := range g.order {
		if !seen[pkg] {
			seen[pkg] = true
			nodes = append(nodes, pkg)
		}
	}
	for _, pkg := range g.order {
		for _, dep := range g.deps[pkg] {
			if !seen[dep] {
				seen[dep] = true
				nodes = append(nodes, dep)
			}
		}
	}
	return nodes
}

// EdgeCount returns the number of unique (package, dependency) pairs.
func (g *Graph) EdgeCount() int {
	type edge struct{ from, to Name }
	seen := make(map[edge]bool)
	for _, pkg := range g.order {
		for _, dep := range g.deps[pkg] {
			seen[edge{pkg, dep}] = true
		}
	}
	return len(seen)
}
