package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/orbital/pkg/orbit"
)

// =============================================================================
// Layout - Positioned Graph Format
// =============================================================================

// Layout is the canonical serialization format for a distributed graph.
// Used for API responses, storage, caching, and cross-tool compatibility.
//
// Coordinates follow the engine's convention: the origin is the top-left
// corner of the bounding frame, every body satisfies x >= radius and
// y >= radius, and Width/Height enclose all bodies.
type Layout struct {
	Version    int     `json:"version" bson:"version"`
	Name       string  `json:"name,omitempty" bson:"name,omitempty"`
	Width      float64 `json:"width" bson:"width"`
	Height     float64 `json:"height" bson:"height"`
	Components int     `json:"components,omitempty" bson:"components,omitempty"`
	Bodies     []Body  `json:"bodies" bson:"bodies"`
	Edges      []Edge  `json:"edges,omitempty" bson:"edges,omitempty"`
}

// LayoutVersion is the current serialization version. Readers reject
// documents from a newer version instead of misinterpreting them.
const LayoutVersion = 1

// Body is a positioned disc in a layout.
//
// Orbit is the distance from the body's anchor at placement time; the root
// of each component carries orbit zero. Members lists the original node ids
// folded into this body when it is a cluster, and is empty for singletons.
type Body struct {
	ID      string   `json:"id" bson:"id"`
	Label   string   `json:"label,omitempty" bson:"label,omitempty"`
	X       float64  `json:"x" bson:"x"`
	Y       float64  `json:"y" bson:"y"`
	Radius  float64  `json:"radius" bson:"radius"`
	Orbit   float64  `json:"orbit" bson:"orbit"`
	Members []string `json:"members,omitempty" bson:"members,omitempty"`
}

// Edge is an undirected relationship between two placed bodies.
// Endpoints are ordered canonically, From < To.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// =============================================================================
// Result → Layout Conversion
// =============================================================================

// FromResult converts an engine result into its serialization format.
// Bodies are sorted by id for deterministic output; the frame dimensions
// are the tightest box enclosing every body.
func FromResult(name string, res *orbit.Result) Layout {
	l := Layout{
		Version:    LayoutVersion,
		Name:       name,
		Components: res.Components,
		Bodies:     make([]Body, 0, len(res.Placements)),
		Edges:      make([]Edge, 0, len(res.Edges)),
	}

	for _, id := range res.IDs() {
		p := res.Placements[id]
		b := Body{
			ID:     id.String(),
			X:      p.X,
			Y:      p.Y,
			Radius: p.Radius,
			Orbit:  p.Orbit,
		}

		payload := p.Node
		if c, ok := payload.(*orbit.Cluster); ok {
			for _, m := range c.Members() {
				b.Members = append(b.Members, m.String())
			}
			payload = c.Node()
		}
		if lab, ok := payload.(Labeled); ok {
			b.Label = lab.Label()
		}

		if right := p.X + p.Radius; right > l.Width {
			l.Width = right
		}
		if bottom := p.Y + p.Radius; bottom > l.Height {
			l.Height = bottom
		}
		l.Bodies = append(l.Bodies, b)
	}

	for _, e := range res.Edges {
		l.Edges = append(l.Edges, Edge{From: e.From.String(), To: e.To.String()})
	}
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes, stamping
// the current [LayoutVersion] on layouts that carry none.
func MarshalLayout(l Layout) ([]byte, error) {
	if l.Version == 0 {
		l.Version = LayoutVersion
	}
	if l.Bodies == nil {
		l.Bodies = []Body{}
	}
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates the version and that every body carries an id and a
// positive radius.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Version == 0 {
		return Layout{}, fmt.Errorf("layout is missing a version")
	}
	if l.Version > LayoutVersion {
		return Layout{}, fmt.Errorf("unsupported layout version %d (current is %d)", l.Version, LayoutVersion)
	}
	if l.Bodies == nil {
		return Layout{}, fmt.Errorf("layout has no bodies")
	}
	for i, b := range l.Bodies {
		if b.ID == "" {
			return Layout{}, fmt.Errorf("body %d: missing id", i)
		}
		if b.Radius <= 0 {
			return Layout{}, fmt.Errorf("body %q: radius must be positive", b.ID)
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
