// Package render provides visualization rendering for orbital layouts.
//
// # Overview
//
// This package contains the rendering pipeline that transforms distributed
// layouts into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Orbit map rendering (in [orbitmap] subpackage)
//   - Graphviz DOT export (in [dot] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both renderers use them.
//
//	svg := orbitmap.RenderSVG(layout, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Orbit Maps
//
// The [orbitmap] subpackage renders layouts the way the engine thinks about
// them: bodies as discs, relationships as chords, and optional orbit rings
// around every anchor. This is Orbital's native visualization.
//
// # DOT Export
//
// The [dot] subpackage exports layouts as Graphviz DOT, either pinned to
// the engine's coordinates or free for Graphviz to re-arrange, and renders
// them through the embedded Graphviz engine.
//
//	src := dot.ToDOT(layout, dot.Options{Pin: true})
//	svg, err := dot.RenderSVG(src)
//
// [orbitmap]: github.com/matzehuels/orbital/pkg/render/orbitmap
// [dot]: github.com/matzehuels/orbital/pkg/render/dot
package render
