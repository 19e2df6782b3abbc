// Package depgraph implements the dependency graph engine: bounded-depth
// closure construction over a dependency source, and topological ordering
// of the resulting graph.
//
// # Architecture
//
// The engine consumes a single external capability, [Source], which answers
// "what are the direct dependencies of this package". Two implementations
// live under pkg/source: a line-oriented fixture file for test mode and a
// Debian-style package index fetched over HTTP.
//
// [Build] walks the closure of a start package with an explicit work stack
// (no recursion), pruning at a configurable depth and reporting dependency
// cycles as non-fatal notifications. [Order] computes an installation order
// (dependencies before dependents) for a built graph, failing when a cycle
// makes such an order impossible.
//
// Both traversals keep their own visited and on-stack sets, scoped to one
// call. Nothing in this package holds process-global state.
//
// # Example
//
//	src := fixture.MustParse("A: B C\nB: C\nC:\n")
//	g, err := depgraph.Build(ctx, "A", src, depgraph.Options{MaxDepth: 5})
//	if err != nil {
//	    return err
//	}
//	order, err := depgraph.Order(g, "A")
package depgraph
