package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/aptgraph/pkg/depgraph"
)

var unsafeIDChars = regexp.MustCompile(`[^0-9A-Za-z_]`)

// mermaidID converts a package name into a safe Mermaid node identifier.
// Unsafe characters are replaced with underscores; identifiers that would be
// empty or start with a digit get a "pkg" prefix. The mapping is stable:
// equal names always produce equal identifiers.
func mermaidID(name depgraph.Name) string {
	safe := unsafeIDChars.ReplaceAllString(string(name), "_")
	if safe == "" {
		return "pkg"
	}
	if safe[0] >= '0' && safe[0] <= '9' {
		return "pkg_" + safe
	}
	return safe
}

// Mermaid renders the graph as a Mermaid flowchart with root highlighted.
//
// Every name appearing as a key or a dependency gets exactly one node
// declaration; every (package, dependency) pair gets exactly one edge.
// Distinct names can map to the same sanitized identifier, in which case
// they share a node - acceptable for display purposes.
func Mermaid(g *depgraph.Graph, root depgraph.Name) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	rootID := mermaidID(root)
	fmt.Fprintf(&b, "    %s[%q]\n", rootID, root)

	declared := map[string]bool{rootID: true}
	declare := func(name depgraph.Name) string {
		id := mermaidID(name)
		if !declared[id] {
			declared[id] = true
			fmt.Fprintf(&b, "    %s[%q]\n", id, name)
		}
		return id
	}

	type edge struct{ from, to string }
	drawn := make(map[edge]bool)

	for _, pkg := range g.Packages() {
		pkgID := declare(pkg)
		deps, _ := g.Deps(pkg)
		for _, dep := range deps {
			depID := declare(dep)
			e := edge{pkgID, depID}
			if drawn[e] {
				continue
			}
			drawn[e] = true
			fmt.Fprintf(&b, "    %s --> %s\n", pkgID, depID)
		}
	}

	fmt.Fprintf(&b, "class %s root;\n", rootID)
	b.WriteString("classDef root fill:#f9f,stroke:#333,stroke-width:2px;\n")

	return b.String()
}
