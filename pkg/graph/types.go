package graph

import (
	"fmt"
	"math"

	"github.com/matzehuels/orbital/pkg/orbit"
)

// Document format identifiers, as reported by [Decoder.Type].
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// =============================================================================
// Document - Graph Input Format
// =============================================================================

// Document is the declarative input format for orbital graphs.
// It decodes from TOML or JSON (see [ReadDocumentFile]) and converts to an
// engine system via [Build].
type Document struct {
	Name  string     `json:"name,omitempty" toml:"name"`
	Nodes []NodeSpec `json:"nodes" toml:"nodes"`
}

// NodeSpec declares a single body in a graph document.
//
// Links are undirected adjacency declarations; a link only needs to appear
// on one side. Tags drive clustering: two nodes that share at least one tag
// may merge onto a shared orbit. MinGroup and MaxGroup bound the size of
// groups this node participates in (zero MaxGroup means unbounded).
type NodeSpec struct {
	ID       string   `json:"id" toml:"id"`
	Label    string   `json:"label,omitempty" toml:"label"`
	Radius   float64  `json:"radius" toml:"radius"`
	Weight   float64  `json:"weight,omitempty" toml:"weight"`
	Tags     []string `json:"tags,omitempty" toml:"tags"`
	MinGroup int      `json:"min_group,omitempty" toml:"min_group"`
	MaxGroup int      `json:"max_group,omitempty" toml:"max_group"`
	Links    []string `json:"links,omitempty" toml:"links"`
}

// Labeled is implemented by node payloads that carry a display label.
// [FromResult] uses it to populate [Body.Label].
type Labeled interface {
	Label() string
}

// =============================================================================
// Document → System Conversion
// =============================================================================

// Build converts a document into an engine system ready for distribution.
//
// Every node becomes a registration whose payload implements the engine's
// weight and clustering contracts: unset weights default to 1, and nodes
// sharing a tag are eligible to merge. Per-node validation problems (bad
// radius, duplicate or missing id, negative weight) are reported as
// [orbit.InvalidConfigurationError] values.
func Build(doc *Document) (*orbit.System, error) {
	sys := orbit.NewSystem()
	for _, spec := range doc.Nodes {
		if spec.Weight < 0 {
			return nil, &orbit.InvalidConfigurationError{
				ID:  orbit.NewID(spec.ID),
				Err: fmt.Errorf("negative weight %v", spec.Weight),
			}
		}

		weight := spec.Weight
		if weight == 0 {
			weight = 1
		}
		n := docNode{
			label:  spec.Label,
			radius: spec.Radius,
			weight: weight,
			tags:   spec.Tags,
			policy: orbit.Policy{MinSize: spec.MinGroup, MaxSize: spec.MaxGroup},
		}

		links := make([]orbit.ID, len(spec.Links))
		for j, l := range spec.Links {
			links[j] = orbit.NewID(l)
		}
		if err := sys.Register(orbit.NewID(spec.ID), n, links...); err != nil {
			return nil, err
		}
	}
	return sys, nil
}

// docNode is the engine payload backing a NodeSpec.
type docNode struct {
	label  string
	radius float64
	weight float64
	tags   []string
	policy orbit.Policy
}

func (n docNode) Radius() float64             { return n.radius }
func (n docNode) Weight() float64             { return n.weight }
func (n docNode) Label() string               { return n.label }
func (n docNode) ClusterPolicy() orbit.Policy { return n.policy }

// Clusterable reports Siblings when the other node shares at least one tag.
// Nodes without tags never cluster.
func (n docNode) Clusterable(other orbit.Node) orbit.Verdict {
	o, ok := other.(docNode)
	if !ok {
		return orbit.Deny
	}
	for _, t := range n.tags {
		for _, ot := range o.tags {
			if t == ot {
				return orbit.Siblings
			}
		}
	}
	return orbit.Deny
}

// ClusterWith merges two document nodes into one combined payload. The
// merged radius preserves the summed disc area, weights add, and tags and
// labels accumulate.
func (n docNode) ClusterWith(other orbit.Node) orbit.Node {
	o, ok := other.(docNode)
	if !ok {
		return n
	}
	return docNode{
		label:  joinLabels(n.label, o.label),
		radius: math.Hypot(n.radius, o.radius),
		weight: n.weight + o.weight,
		tags:   unionTags(n.tags, o.tags),
		policy: mergePolicies(n.policy, o.policy),
	}
}

func joinLabels(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " + " + b
	}
}

func unionTags(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, t := range a {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range b {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// mergePolicies keeps the stricter bound on each side: the larger minimum
// and the smaller positive maximum.
func mergePolicies(a, b orbit.Policy) orbit.Policy {
	merged := orbit.Policy{MinSize: max(a.MinSize, b.MinSize), MaxSize: a.MaxSize}
	if b.MaxSize > 0 && (merged.MaxSize == 0 || b.MaxSize < merged.MaxSize) {
		merged.MaxSize = b.MaxSize
	}
	return merged
}
