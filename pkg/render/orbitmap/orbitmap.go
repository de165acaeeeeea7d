// Package orbitmap renders layouts as orbit maps: each body a disc, each
// relationship a chord, and optionally the rings siblings were placed on.
// SVG is the native output; PNG and PDF are derived from it via librsvg.
package orbitmap

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/orbital/pkg/graph"
)

const bodyInteractionCSS = `
    .body { transition: stroke-width 0.2s ease; }
    .body:hover { stroke-width: 4; }
    .body-text { pointer-events: none; }`

// Theme holds the colors of a rendered orbit map.
type Theme struct {
	Name       string
	Background string
	BodyFill   string
	BodyStroke string
	EdgeStroke string
	RingStroke string
	Text       string
}

// Built-in themes.
var (
	Light = Theme{
		Name:       "light",
		Background: "#fafaf7",
		BodyFill:   "#ffffff",
		BodyStroke: "#1a1a2e",
		EdgeStroke: "#b4b4c6",
		RingStroke: "#d8d8e4",
		Text:       "#1a1a2e",
	}
	Dark = Theme{
		Name:       "dark",
		Background: "#10101c",
		BodyFill:   "#1e1e30",
		BodyStroke: "#e8e8f0",
		EdgeStroke: "#50506a",
		RingStroke: "#32324a",
		Text:       "#e8e8f0",
	}
)

// ThemeByName looks up a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case Light.Name, "":
		return Light, true
	case Dark.Name:
		return Dark, true
	default:
		return Theme{}, false
	}
}

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme      Theme
	showOrbits bool
	showLabels bool
	scale      float64
	padding    float64
}

// WithTheme sets the color theme (default [Light]).
func WithTheme(t Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithOrbits draws a dashed ring around every anchor at each occupied orbit.
func WithOrbits() SVGOption { return func(r *svgRenderer) { r.showOrbits = true } }

// WithLabels draws each body's label (or id) at its center.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = true } }

// WithScale sets how many output units one layout unit maps to (default 10).
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderSVG renders a layout as an orbit map: bodies as discs, edges as
// chords, and optionally the orbit rings the engine placed siblings on.
// Output is deterministic for a given layout and option set.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	pad := r.padding * r.scale
	w := l.Width*r.scale + 2*pad
	h := l.Height*r.scale + 2*pad

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		-pad, -pad, w, h, w, h)
	fmt.Fprintf(&buf, "  <rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\"/>\n",
		-pad, -pad, w, h, r.theme.Background)

	if r.showOrbits {
		for _, ring := range orbitRings(l) {
			fmt.Fprintf(&buf,
				"  <circle class=\"orbit\" cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"none\" stroke=\"%s\" stroke-width=\"%.2f\" stroke-dasharray=\"%.1f %.1f\"/>\n",
				ring.cx*r.scale, ring.cy*r.scale, ring.r*r.scale,
				r.theme.RingStroke, 0.08*r.scale, 0.4*r.scale, 0.3*r.scale)
		}
	}

	bodyAt := make(map[string]graph.Body, len(l.Bodies))
	for _, b := range l.Bodies {
		bodyAt[b.ID] = b
	}
	for _, e := range l.Edges {
		from, okF := bodyAt[e.From]
		to, okT := bodyAt[e.To]
		if !okF || !okT {
			continue
		}
		fmt.Fprintf(&buf, "  <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"%.2f\"/>\n",
			from.X*r.scale, from.Y*r.scale, to.X*r.scale, to.Y*r.scale,
			r.theme.EdgeStroke, 0.1*r.scale)
	}

	for _, b := range l.Bodies {
		fmt.Fprintf(&buf, "  <circle class=\"body\" id=\"body-%s\" cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%.2f\"/>\n",
			escapeText(b.ID), b.X*r.scale, b.Y*r.scale, b.Radius*r.scale,
			r.theme.BodyFill, r.theme.BodyStroke, 0.15*r.scale)
	}

	if r.showLabels {
		for _, b := range l.Bodies {
			label := b.Label
			if label == "" {
				label = b.ID
			}
			fmt.Fprintf(&buf,
				"  <text class=\"body-text\" x=\"%.2f\" y=\"%.2f\" font-size=\"%.2f\" font-family=\"monospace\" fill=\"%s\" text-anchor=\"middle\" dominant-baseline=\"central\">%s</text>\n",
				b.X*r.scale, b.Y*r.scale, labelSize(b, label)*r.scale,
				r.theme.Text, escapeText(label))
		}
	}

	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", bodyInteractionCSS)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: Light, scale: 10, padding: 1.5}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// labelSize fits the label inside the body: half the radius, shrunk
// further when the text is wide relative to the disc.
func labelSize(b graph.Body, label string) float64 {
	size := b.Radius * 0.5
	if n := float64(len(label)); n > 0 {
		if fit := 2.8 * b.Radius / n; fit < size {
			size = fit
		}
	}
	return size
}

type ring struct {
	cx, cy, r float64
}

// orbitRings recovers the rings bodies were placed on. An edge identifies
// an anchor when its length matches the far body's orbit radius; each
// distinct (anchor, radius) pair becomes one ring.
func orbitRings(l graph.Layout) []ring {
	bodyAt := make(map[string]graph.Body, len(l.Bodies))
	for _, b := range l.Bodies {
		bodyAt[b.ID] = b
	}

	seen := make(map[string]bool)
	var rings []ring
	add := func(anchor graph.Body, radius float64) {
		key := fmt.Sprintf("%.4f:%.4f:%.4f", anchor.X, anchor.Y, radius)
		if seen[key] {
			return
		}
		seen[key] = true
		rings = append(rings, ring{cx: anchor.X, cy: anchor.Y, r: radius})
	}

	for _, e := range l.Edges {
		from, okF := bodyAt[e.From]
		to, okT := bodyAt[e.To]
		if !okF || !okT {
			continue
		}
		dist := math.Hypot(to.X-from.X, to.Y-from.Y)
		if to.Orbit > 0 && math.Abs(dist-to.Orbit) < 1e-6*(1+to.Orbit) {
			add(from, to.Orbit)
		}
		if from.Orbit > 0 && math.Abs(dist-from.Orbit) < 1e-6*(1+from.Orbit) {
			add(to, from.Orbit)
		}
	}

	slices.SortFunc(rings, func(a, b ring) int {
		if c := cmp.Compare(a.cx, b.cx); c != 0 {
			return c
		}
		if c := cmp.Compare(a.cy, b.cy); c != 0 {
			return c
		}
		return cmp.Compare(a.r, b.r)
	})
	return rings
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
