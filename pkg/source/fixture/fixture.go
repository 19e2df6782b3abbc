// Package fixture implements a dependency source backed by a line-oriented
// text file, used in test mode instead of a live package index.
//
// # Format
//
// One package per line, a colon after the name, dependencies separated by
// whitespace. An empty remainder means no dependencies; lines without a
// colon are ignored.
//
//	A: B C
//	B: C
//	C:
package fixture

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/aptgraph/pkg/depgraph"
	apperrors "github.com/matzehuels/aptgraph/pkg/errors"
)

// Source answers dependency queries from a parsed fixture file.
// It implements depgraph.Source.
type Source struct {
	deps map[depgraph.Name][]depgraph.Name
}

// Parse reads fixture lines from r.
func Parse(r io.Reader) (*Source, error) {
	s := &Source{deps: make(map[depgraph.Name][]depgraph.Name)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		pkg := depgraph.Name(strings.TrimSpace(name))
		if pkg == "" {
			continue
		}
		var deps []depgraph.Name
		for _, field := range strings.Fields(rest) {
			deps = append(deps, depgraph.Name(field))
		}
		s.deps[pkg] = deps
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "read fixture")
	}
	return s, nil
}

// ParseFile reads a fixture file from disk.
func ParseFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open fixture %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// MustParse parses fixture text and panics on error. Intended for tests and
// examples where the input is a literal.
func MustParse(text string) *Source {
	s, err := Parse(strings.NewReader(text))
	if err != nil {
		panic(err)
	}
	return s
}

// Dependencies implements depgraph.Source. Packages absent from the fixture
// fail with PACKAGE_NOT_FOUND.
func (s *Source) Dependencies(_ context.Context, pkg depgraph.Name) ([]depgraph.Name, error) {
	deps, ok := s.deps[pkg]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodePackageNotFound, "package %q not found in fixture", pkg)
	}
	return deps, nil
}

// Len returns the number of packages in the fixture.
func (s *Source) Len() int { return len(s.deps) }
