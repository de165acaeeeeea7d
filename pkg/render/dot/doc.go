// Package dot exports layouts as Graphviz DOT and renders them in-process.
//
// # Overview
//
// This package bridges the layout engine to the Graphviz ecosystem. A layout
// can be exported pinned, where every body keeps the exact position the
// engine computed, or unpinned, where Graphviz is free to re-arrange the
// graph with whichever engine the caller picks.
//
// # Usage
//
// Convert a layout to DOT format, then render to SVG:
//
//	src := dot.ToDOT(layout, dot.Options{Pin: true})
//	svg, err := dot.RenderSVG(src)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := dot.RenderPDF(src)
//	png, err := dot.RenderPNG(src, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls export:
//
//   - Pin: fix bodies at their computed coordinates (uses neato with pos="x,y!")
//   - Engine: layout engine for unpinned export (dot, neato, fdp, circo, twopi)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses undirected edges and circle nodes sized from each
// body's radius, so pinned output matches the orbit map rendering.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package dot
