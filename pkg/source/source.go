// Package source provides dependency source implementations and helpers for
// the graph engine. The concrete backends live in the fixture and aptindex
// subpackages; this package holds what they share.
package source

import (
	"context"

	"github.com/matzehuels/aptgraph/pkg/depgraph"
)

// Memo wraps a Source with a per-instance lookup cache so that repeated
// queries for the same package hit the backend once. The cache is owned by
// the Memo instance and lives for one resolution run; create a fresh Memo
// per run rather than sharing one across runs.
type Memo struct {
	src  depgraph.Source
	hits map[depgraph.Name]memoEntry
}

type memoEntry struct {
	deps []depgraph.Name
	err  error
}

// NewMemo creates a memoizing view of src with an empty cache.
func NewMemo(src depgraph.Source) *Memo {
	return &Memo{src: src, hits: make(map[depgraph.Name]memoEntry)}
}

// Dependencies implements depgraph.Source. Errors are cached alongside
// results, so a missing package is reported consistently without re-querying.
func (m *Memo) Dependencies(ctx context.Context, pkg depgraph.Name) ([]depgraph.Name, error) {
	if e, ok := m.hits[pkg]; ok {
		return e.deps, e.err
	}
	deps, err := m.src.Dependencies(ctx, pkg)
	m.hits[pkg] = memoEntry{deps: deps, err: err}
	return deps, err
}
