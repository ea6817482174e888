// Package render draws the people/productions graph with Graphviz.
//
// # Overview
//
// The graph is bipartite: people are drawn as ellipses, productions as
// boxes, and an undirected edge joins every person to each production they
// starred in. Two views are supported:
//
//   - [ChainDOT]: the chain connecting two people, as found by
//     [degrees.ShortestPath].
//   - [DatasetDOT]: a whole dataset, optionally with one chain highlighted.
//
// Both produce Graphviz DOT source, which [RenderSVG] lays out in-process:
//
//	dot := render.ChainDOT(ds, source, res.Path, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz
// compiled to WebAssembly, so no system Graphviz installation is needed.
package render
