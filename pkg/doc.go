// Package pkg provides the core libraries for aptgraph dependency resolution.
//
// # Overview
//
// aptgraph resolves the transitive dependency closure of a package from a
// Debian-style package index and turns it into an installation order and a
// diagram. The pipeline is:
//
//	index (source) -> closure (depgraph) -> order + diagram (render)
//
// # Packages
//
//   - depgraph: the graph engine - bounded-depth closure builder and
//     dependencies-first topological ordering
//   - source: dependency sources - the deterministic fixture backend and the
//     APT Packages index backend, plus per-run memoization
//   - render: diagram output - Mermaid and Graphviz DOT text, SVG/PNG
//   - graph: node-link JSON serialization for saved closures
//   - httputil: HTTP response caching and retry with backoff
//   - config: TOML configuration file handling
//   - errors: structured error codes and input validation
//   - buildinfo: version information embedded at build time
package pkg
