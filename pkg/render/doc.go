// Package render converts dependency graphs into diagram text and images.
//
// Two text formats are supported: Mermaid flowcharts ([Mermaid]) for pasting
// into documentation, and Graphviz DOT ([ToDOT]) which [SVG] and [PNG] turn
// into images via goccy/go-graphviz.
//
// Both renderers are pure functions over a built graph: one declaration per
// unique node (graph keys and dangling dependency references alike), one
// entry per unique edge, with the root package visually highlighted.
package render
