package depgraph

import (
	"context"

	apperrors "github.com/matzehuels/aptgraph/pkg/errors"
)

// DefaultMaxDepth bounds traversal when Options.MaxDepth is unset.
// The start package counts as depth 1.
const DefaultMaxDepth = 50

// Options configures closure construction.
type Options struct {
	MaxDepth int                  // Maximum depth to traverse (default: 50)
	Logger   func(string, ...any) // Cycle/missing-package notifications (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// frame is one unit of DFS work. A frame is pushed twice: unexpanded when the
// node is discovered, expanded after its dependencies have been pushed, so
// that the on-stack marking spans the whole subtree below the node.
type frame struct {
	name     Name
	depth    int
	expanded bool
}

// Build resolves the transitive dependency closure of start, querying source
// for direct dependencies, and returns the resulting graph.
//
// The traversal is an iterative depth-first search over an explicit stack of
// (name, depth) frames; dependencies are explored in the order the source
// lists them. Each distinct package is queried at most once regardless of
// fan-in. Nodes first reachable beyond opts.MaxDepth are pruned: never
// queried and never added as graph keys, though they may still appear as
// dangling references in a parent's dependency list.
//
// A back-edge to a package still being expanded on the current path is a
// dependency cycle. Cycles are not errors here: each one is reported through
// opts.Logger and the closing edge's traversal is skipped, while the literal
// dependency entry stays in the graph.
//
// A start package absent from the index is fatal and returns an error with
// code PACKAGE_NOT_FOUND. A transitive dependency absent from the index is
// treated as a leaf: recorded with no dependencies and reported through
// opts.Logger. Any other source failure aborts the build.
func Build(ctx context.Context, start Name, source Source, opts Options) (*Graph, error) {
	opts = opts.WithDefaults()

	g := NewGraph()
	visited := make(map[Name]bool)
	onStack := make(map[Name]bool)

	stack := []frame{{name: start, depth: 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.expanded {
			delete(onStack, f.name)
			visited[f.name] = true
			continue
		}

		if f.depth > opts.MaxDepth {
			continue
		}
		if visited[f.name] {
			continue
		}
		if onStack[f.name] {
			opts.Logger("cycle detected at %s", f.name)
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		onStack[f.name] = true

		deps, err := source.Dependencies(ctx, f.name)
		if err != nil {
			if f.depth > 1 && apperrors.Is(err, apperrors.ErrCodePackageNotFound) {
				// Referenced but not in the index: a leaf with no edges.
				opts.Logger("package %s not in index, treating as leaf", f.name)
				deps = nil
			} else {
				return nil, err
			}
		}
		g.Add(f.name, deps)

		stack = append(stack, frame{name: f.name, depth: f.depth, expanded: true})
		for i := len(deps) - 1; i >= 0; i-- {
			stack = append(stack, frame{name: deps[i], depth: f.depth + 1})
		}
	}

	return g, nil
}
