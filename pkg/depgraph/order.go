package depgraph

import (
	apperrors "github.com/matzehuels/aptgraph/pkg/errors"
)

// ErrCycle is returned by [Order] when the graph contains a dependency cycle
// reachable from the start package, in which case no valid installation
// order exists.
var ErrCycle = apperrors.New(apperrors.ErrCodeCycle, "no valid order: dependency cycle detected")

// Order computes an installation order for the packages reachable from start:
// every package appears after all packages it depends on, each name at most
// once. Names referenced in dependency lists but absent as graph keys are
// treated as leaves and included in the order.
//
// The traversal is an iterative post-order DFS over (name, expanded) frames.
// A node is appended only after all of its dependencies have been appended,
// so the accumulated post-order is itself a valid installation order.
// Unlike the builder, a cycle here is fatal to the whole computation: Order
// returns ErrCycle and no partial sequence.
func Order(g *Graph, start Name) ([]Name, error) {
	visited := make(map[Name]bool)
	onStack := make(map[Name]bool)
	var postorder []Name

	stack := []frame{{name: start}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// A second first-visit while the node is still mid-expansion on the
		// current path means a back-edge closed a cycle.
		if onStack[f.name] && !f.expanded {
			return nil, ErrCycle
		}
		if visited[f.name] {
			continue
		}

		if f.expanded {
			postorder = append(postorder, f.name)
			visited[f.name] = true
			delete(onStack, f.name)
			continue
		}

		onStack[f.name] = true
		stack = append(stack, frame{name: f.name, expanded: true})

		deps, _ := g.Deps(f.name) // absent key: leaf, nothing to push
		for _, dep := range deps {
			stack = append(stack, frame{name: dep})
		}
	}

	return postorder, nil
}
