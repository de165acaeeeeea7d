package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/orbital/pkg/graph"
	"github.com/matzehuels/orbital/pkg/render"
)

// pointsPerUnit converts layout units to Graphviz points (1/72 inch).
const pointsPerUnit = 10.0

// Options configures DOT export.
type Options struct {
	// Pin fixes every body at its computed position. Rendering then uses
	// the neato engine with pos="x,y!" coordinates, so the diagram matches
	// the orbit map exactly. When false, Graphviz lays the graph out fresh.
	Pin bool

	// Engine selects the Graphviz layout engine for unpinned export
	// (dot, neato, fdp, circo, twopi). Ignored when Pin is set.
	Engine string
}

// ToDOT converts a layout to Graphviz DOT format. The resulting DOT string
// can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Cluster bodies (merged from several nodes) are rendered with a double
// outline and carry their member ids in the tooltip.
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	if opts.Pin {
		buf.WriteString("  layout=\"neato\";\n")
		buf.WriteString("  splines=line;\n")
	} else if opts.Engine != "" {
		fmt.Fprintf(&buf, "  layout=%q;\n", opts.Engine)
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, b := range l.Bodies {
		attrs := fmtNodeAttrs(b, l.Height, opts.Pin)
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNodeAttrs(b graph.Body, height float64, pin bool) []string {
	label := b.Label
	if label == "" {
		label = b.ID
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	if pin {
		// DOT's y axis grows upward, the layout's grows downward.
		attrs = append(attrs,
			fmt.Sprintf("pos=\"%.2f,%.2f!\"", b.X*pointsPerUnit, (height-b.Y)*pointsPerUnit),
			fmt.Sprintf("width=%.3f", 2*b.Radius*pointsPerUnit/72),
			"fixedsize=true",
		)
	}
	if len(b.Members) > 0 {
		attrs = append(attrs,
			"peripheries=2",
			fmt.Sprintf("tooltip=%q", strings.Join(b.Members, ", ")),
		)
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
