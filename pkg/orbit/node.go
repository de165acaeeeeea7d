package orbit

// Node is the minimal capability every registered entity provides.
// The layout engine depends only on this interface (plus the optional
// [Weighted] and [Clusterable] extensions), never on a concrete type, so
// callers can register their own render models directly.
type Node interface {
	// Radius returns the exclusion radius around the node's center.
	// Two connected nodes never end up closer than the sum of their radii.
	// Must be positive and finite; [System.Register] rejects anything else.
	Radius() float64
}

// Weighted is implemented by nodes that contribute a custom own weight to
// anchor selection and sibling ordering. Nodes without it weigh 1. The value
// is expected to be positive; it is read once per layout run.
type Weighted interface {
	Weight() float64
}

// Verdict is the outcome of a pairwise clusterability check.
type Verdict int

const (
	// Deny keeps the two nodes apart. This is the behavior of every node
	// that does not implement [Clusterable].
	Deny Verdict = iota
	// Siblings marks the two nodes as mergeable into one cluster.
	Siblings
)

// Policy bounds cluster membership for one node.
//
// MinSize is a soft preference: a node whose reachable groupings are all
// smaller is still placed in the largest one (possibly alone), never
// rejected. MaxSize is a hard cap on the size of any group the node joins;
// zero means unbounded. [System.Register] rejects negative bounds and
// MinSize > MaxSize.
type Policy struct {
	MinSize int
	MaxSize int
}

// Clusterable is implemented by nodes that may be merged into cluster
// super-nodes before placement.
//
// Clusterable must be symmetric: the engine checks both directions and
// treats any disagreement as [Deny]. Both Clusterable and ClusterWith must
// be pure - the engine may invoke them several times per pair while
// searching for the largest group.
//
// ClusterWith reduces two nodes into one merged node whose radius (and,
// if it implements [Weighted], weight) represents the pair. Groups larger
// than two are folded pairwise in registration order.
type Clusterable interface {
	Node
	ClusterPolicy() Policy
	Clusterable(other Node) Verdict
	ClusterWith(other Node) Node
}

// Registration pairs a Node with its declared ID and neighbor IDs, exactly
// as supplied at input time. Neighbor declarations are one-directional in
// the input but treated as bi-directional after validation: if A declares B,
// then B neighbors A even if B never declared it.
//
// A neighbor ID with no matching registration in the same run is a
// [DanglingReferenceError], never silently dropped.
type Registration struct {
	ID        ID
	Node      Node
	Neighbors []ID
}
