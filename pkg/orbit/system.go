package orbit

import (
	"math"
	"slices"
)

// System collects the registrations for one layout run.
//
// The zero value is not usable - use [NewSystem]. A System is built fresh for
// every run: callers re-register the full node set (including previously
// placed nodes) each time a new layout is requested; nothing persists between
// runs. System is not safe for concurrent use, but independent Systems may be
// distributed in parallel freely.
type System struct {
	regs  []Registration
	index map[ID]int
}

// NewSystem creates an empty System.
func NewSystem() *System {
	return &System{index: make(map[ID]int)}
}

// Register adds a node under the given ID with its declared neighbor IDs.
//
// Register validates the configuration immediately and returns an
// [InvalidConfigurationError] for a zero or duplicate ID, a nil node, a
// non-positive or non-finite radius, or inconsistent cluster policy bounds.
// Neighbor IDs are not resolved here - missing registrations surface as a
// [DanglingReferenceError] from [System.Distribute].
func (s *System) Register(id ID, n Node, neighbors ...ID) error {
	if id.IsZero() {
		return &InvalidConfigurationError{ID: id, Err: ErrInvalidID}
	}
	if _, exists := s.index[id]; exists {
		return &InvalidConfigurationError{ID: id, Err: ErrDuplicateID}
	}
	if n == nil {
		return &InvalidConfigurationError{ID: id, Err: ErrNilNode}
	}
	if r := n.Radius(); r <= 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		return &InvalidConfigurationError{ID: id, Err: ErrInvalidRadius}
	}
	if c, ok := n.(Clusterable); ok {
		p := c.ClusterPolicy()
		if p.MinSize < 0 || p.MaxSize < 0 || (p.MaxSize > 0 && p.MinSize > p.MaxSize) {
			return &InvalidConfigurationError{ID: id, Err: ErrInvalidPolicy}
		}
	}
	s.index[id] = len(s.regs)
	s.regs = append(s.regs, Registration{ID: id, Node: n, Neighbors: slices.Clone(neighbors)})
	return nil
}

// Len returns the number of registered nodes.
func (s *System) Len() int { return len(s.regs) }

// Registrations returns a copy of the registrations in registration order.
func (s *System) Registrations() []Registration { return slices.Clone(s.regs) }

// Placement is the computed position of one final node: its center, the
// orbit radius its anchor used to place it (0 for component roots, kept for
// downstream ring drawing), and the render radius actually occupied (the
// cluster radius when members were merged).
type Placement struct {
	X      float64
	Y      float64
	Orbit  float64
	Radius float64
	// Node is the placed node: the registered node for singletons, a
	// [*Cluster] for merged groups.
	Node Node
}

// Edge is an undirected connection between two final node IDs, remapped from
// the declared neighbor relationships after clustering. Edges collapsed
// inside a single cluster are dropped; edges not used for positioning
// (spanning-tree surplus on cyclic inputs) are still present so callers can
// draw every declared relationship.
type Edge struct {
	From ID
	To   ID
}

// Result is the outcome of one layout run. Per the engine contract the
// caller's nodes are never mutated: positions live in a fresh map keyed by
// final ID. Clustering changes the set of distinct identities - merged
// members collapse into one entry under their union ID - so consumers must
// render from this map's keys, not from the registered ID set.
type Result struct {
	Placements map[ID]Placement
	Edges      []Edge
	Components int
}

// IDs returns every placed ID in canonical order, for deterministic
// iteration over the Placements map.
func (r *Result) IDs() []ID {
	ids := make([]ID, 0, len(r.Placements))
	for id := range r.Placements {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, compareID)
	return ids
}

// config carries the knobs collected from [Option] values.
type config struct {
	clustering   bool
	componentGap float64
	workers      int
}

func defaultConfig() config {
	return config{clustering: true, componentGap: 0, workers: 1}
}

// Option adjusts a single [System.Distribute] call.
type Option func(*config)

// WithClustering enables or disables the clustering pass. It is enabled by
// default; disabling it places every node individually even when nodes
// implement [Clusterable].
func WithClustering(enabled bool) Option {
	return func(c *config) { c.clustering = enabled }
}

// WithComponentSpacing arranges disconnected components left to right with
// the given gap between their bounding boxes before normalization. The
// default (no option, or a non-positive gap) keeps every component at a
// shared local origin and applies one global translation, so disconnected
// components may overlap - only connected nodes carry a non-overlap
// guarantee.
func WithComponentSpacing(gap float64) Option {
	return func(c *config) {
		if gap > 0 {
			c.componentGap = gap
		}
	}
}

// WithParallelism computes component placements on up to n goroutines.
// Components are independent, so the output is identical to the sequential
// default; this is purely a throughput knob for inputs with many components.
func WithParallelism(n int) Option {
	return func(c *config) {
		if n > 1 {
			c.workers = n
		}
	}
}

// Distribute runs the layout: it validates the declared neighbor references,
// partitions the node set into connected components, optionally merges
// eligible neighbor groups into clusters, assigns every final node a center
// and orbit, and translates the whole set so that every x - radius and
// y - radius is non-negative.
//
// On a dangling neighbor reference it returns a [DanglingReferenceError]
// listing every missing ID and places nothing. Distribute never mutates the
// registered nodes; repeated calls with the same registrations and options
// produce identical results.
func (s *System) Distribute(opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	top, err := analyze(s.regs)
	if err != nil {
		return nil, err
	}
	return place(top, cfg), nil
}
