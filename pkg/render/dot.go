package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/aptgraph/pkg/depgraph"
)

// ToDOT converts a dependency graph to Graphviz DOT format.
// The root package is drawn with a highlighted fill; dangling dependency
// references (names that are not graph keys) get dashed outlines.
// The resulting DOT string can be rendered with [SVG] or [PNG].
func ToDOT(g *depgraph.Graph, root depgraph.Name) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n, nodeAttrs(g, n, root))
	}

	buf.WriteString("\n")
	type edge struct{ from, to depgraph.Name }
	drawn := make(map[edge]bool)
	for _, pkg := range g.Packages() {
		deps, _ := g.Deps(pkg)
		for _, dep := range deps {
			e := edge{pkg, dep}
			if drawn[e] {
				continue
			}
			drawn[e] = true
			fmt.Fprintf(&buf, "  %q -> %q;\n", pkg, dep)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(g *depgraph.Graph, n, root depgraph.Name) string {
	switch {
	case n == root:
		return "fillcolor=plum"
	case !g.Contains(n):
		return "style=\"rounded,filled,dashed\", fillcolor=lightgrey"
	default:
		return "fillcolor=white"
	}
}
