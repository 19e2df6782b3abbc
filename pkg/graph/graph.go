// Package graph defines the node-link JSON format for resolved dependency
// closures, so a closure can be saved by `aptgraph resolve --output` and
// rendered later by `aptgraph render` without touching the network.
package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/aptgraph/pkg/depgraph"
)

// Graph is the serialization format for a resolved dependency closure.
//
//	{
//	  "root": "curl",
//	  "nodes": [{"id": "curl"}, {"id": "libc6", "dangling": true}],
//	  "edges": [{"from": "curl", "to": "libc6"}]
//	}
type Graph struct {
	Root  string `json:"root,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a single package in the closure. Dangling marks names that were
// referenced as dependencies but never expanded (depth- or cycle-pruned, or
// absent from the index).
type Node struct {
	ID       string `json:"id"`
	Dangling bool   `json:"dangling,omitempty"`
}

// Edge is a directed dependency: From depends on To.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FromDepGraph converts a built graph to its serialization format.
// Nodes keep the graph's deterministic order (expanded packages first, then
// dangling references); edges are deduplicated.
func FromDepGraph(g *depgraph.Graph, root depgraph.Name) Graph {
	out := Graph{Root: string(root)}

	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, Node{ID: string(n), Dangling: !g.Contains(n)})
	}

	type key struct{ from, to depgraph.Name }
	seen := make(map[key]bool)
	for _, pkg := range g.Packages() {
		deps, _ := g.Deps(pkg)
		for _, dep := range deps {
			k := key{pkg, dep}
			if seen[k] {
				continue
			}
			seen[k] = true
			out.Edges = append(out.Edges, Edge{From: string(pkg), To: string(dep)})
		}
	}

	return out
}

// ToDepGraph converts a serialized graph back to a dependency graph.
// Duplicate dependency entries collapse during serialization, so the round
// trip preserves structure but not duplicates.
func (gj Graph) ToDepGraph() *depgraph.Graph {
	deps := make(map[string][]depgraph.Name)
	for _, e := range gj.Edges {
		deps[e.From] = append(deps[e.From], depgraph.Name(e.To))
	}

	g := depgraph.NewGraph()
	for _, n := range gj.Nodes {
		if n.Dangling {
			continue
		}
		g.Add(depgraph.Name(n.ID), deps[n.ID])
	}
	return g
}

// Write encodes the graph as indented JSON to w.
func (gj Graph) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(gj); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// WriteFile writes the graph as a JSON file.
func (gj Graph) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return gj.Write(f)
}

// Read decodes a JSON graph from r.
func Read(r io.Reader) (Graph, error) {
	var gj Graph
	if err := json.NewDecoder(r).Decode(&gj); err != nil {
		return Graph{}, fmt.Errorf("decode graph: %w", err)
	}
	return gj, nil
}

// ReadFile reads a JSON graph file.
func ReadFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
