// Package aptindex implements a dependency source backed by a Debian-style
// package index (the Packages file of an APT repository).
//
// The index is fetched once - over HTTP from a repository URL, or read from
// a local file - decompressed, and parsed fully into memory before any graph
// traversal starts. Lookups after that are plain map accesses.
package aptindex

import (
	"context"
	"strings"

	"github.com/matzehuels/aptgraph/pkg/depgraph"
	apperrors "github.com/matzehuels/aptgraph/pkg/errors"
)

const (
	packagePrefix = "Package: "
	dependsPrefix = "Depends: "
)

// Index holds the parsed package index: each package name mapped to its
// direct dependency names in declaration order.
type Index struct {
	deps map[string][]string
}

// ParseIndex parses the text of a Packages file.
//
// The file consists of blank-line separated stanzas. Only two fields matter
// here: "Package:" names the stanza and "Depends:" lists its dependencies,
// comma-separated, each entry possibly carrying a version constraint or
// alternatives after the bare name. Each entry is reduced to its first
// whitespace-delimited word with trailing commas stripped; version
// constraints and alternative groups are out of scope.
//
// A package without a Depends field has an empty dependency list. If the
// same package appears in several stanzas, the first one wins.
func ParseIndex(text string) *Index {
	idx := &Index{deps: make(map[string][]string)}

	for _, stanza := range strings.Split(text, "\n\n") {
		var name string
		var deps []string
		for _, line := range strings.Split(stanza, "\n") {
			switch {
			case strings.HasPrefix(line, packagePrefix):
				if name == "" {
					name = strings.TrimSpace(line[len(packagePrefix):])
				}
			case strings.HasPrefix(line, dependsPrefix):
				deps = parseDepends(line[len(dependsPrefix):])
			}
		}
		if name == "" {
			continue
		}
		if _, exists := idx.deps[name]; !exists {
			idx.deps[name] = deps
		}
	}

	return idx
}

// parseDepends extracts bare dependency names from a Depends field value,
// e.g. "libc6 (>= 2.34), libssl3 | libssl1.1, zlib1g" -> [libc6 libssl3 zlib1g].
func parseDepends(raw string) []string {
	var deps []string
	for _, entry := range strings.Split(raw, ",") {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}
		name := strings.TrimSuffix(fields[0], ",")
		if name != "" {
			deps = append(deps, name)
		}
	}
	return deps
}

// Dependencies returns the direct dependencies of pkg and whether the
// package exists in the index.
func (idx *Index) Dependencies(pkg string) ([]string, bool) {
	deps, ok := idx.deps[pkg]
	return deps, ok
}

// Len returns the number of packages in the index.
func (idx *Index) Len() int { return len(idx.deps) }

// Source adapts an Index to the depgraph.Source interface.
type Source struct {
	index *Index
}

// NewSource wraps a parsed index as a dependency source.
func NewSource(idx *Index) *Source { return &Source{index: idx} }

// Dependencies implements depgraph.Source. Packages absent from the index
// fail with PACKAGE_NOT_FOUND.
func (s *Source) Dependencies(_ context.Context, pkg depgraph.Name) ([]depgraph.Name, error) {
	raw, ok := s.index.Dependencies(string(pkg))
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodePackageNotFound, "package %q not found in index", pkg)
	}
	deps := make([]depgraph.Name, len(raw))
	for i, d := range raw {
		deps[i] = depgraph.Name(d)
	}
	return deps, nil
}
