package pipeline

import (
	"fmt"

	"github.com/matzehuels/orbital/pkg/graph"
	"github.com/matzehuels/orbital/pkg/render/dot"
	"github.com/matzehuels/orbital/pkg/render/orbitmap"
)

// RenderFromLayout generates output artifacts in the requested formats.
// This is the uncached stage function; use [Runner.Render] for the cached
// path.
func RenderFromLayout(l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = orbitmap.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = orbitmap.RenderPNG(l, orbitmap.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = orbitmap.RenderPDF(l, orbitmap.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			data = []byte(dot.ToDOT(l, dotOptions(opts)))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached or
// loaded from a saved file).
func RenderFromLayoutData(layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(parsed, opts)
}

// buildSVGOptions builds orbit map rendering options.
func buildSVGOptions(opts Options) []orbitmap.SVGOption {
	svgOpts := []orbitmap.SVGOption{orbitmap.WithScale(opts.Scale)}

	if theme, ok := orbitmap.ThemeByName(opts.Theme); ok {
		svgOpts = append(svgOpts, orbitmap.WithTheme(theme))
	}
	if opts.ShowOrbits {
		svgOpts = append(svgOpts, orbitmap.WithOrbits())
	}
	if opts.ShowLabels {
		svgOpts = append(svgOpts, orbitmap.WithLabels())
	}

	return svgOpts
}

// dotOptions builds DOT export options. An explicit engine requests a fresh
// Graphviz arrangement; otherwise the export pins the computed positions.
func dotOptions(opts Options) dot.Options {
	if opts.Engine != "" {
		return dot.Options{Engine: opts.Engine}
	}
	return dot.Options{Pin: true}
}
