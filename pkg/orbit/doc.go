// Package orbit computes deterministic, non-force-based 2-D layouts for
// node graphs: connected nodes never overlap, related nodes can be merged
// into clusters before placement, and heavier subtrees radiate outward from
// their anchors in nested orbits.
//
// # Overview
//
// Callers register every node with its exclusion radius and declared
// neighbor IDs, then call [System.Distribute]. The engine validates the
// references, splits the graph into connected components, picks a root per
// component (the node whose removal yields the most balanced weight split),
// and walks outward breadth-first: each anchor's unplaced neighbors are
// optionally clustered, sorted by descending subtree weight, and packed onto
// one shared orbit sized so that no sibling overlaps the anchor or an
// adjacent sibling. Finally the whole set is translated so every coordinate
// minus its radius is non-negative, which pixel-based consumers require.
//
// # Basic Usage
//
// Build a [System], register nodes, distribute, and read positions from the
// result:
//
//	sys := orbit.NewSystem()
//	sys.Register(orbit.NewID("sun"), body{r: 20}, orbit.NewID("earth"))
//	sys.Register(orbit.NewID("earth"), body{r: 8}, orbit.NewID("moon"))
//	sys.Register(orbit.NewID("moon"), body{r: 3})
//	res, err := sys.Distribute()
//
// Neighbor declarations are one-directional in the input and symmetric after
// validation. The engine never mutates registered nodes: positions come back
// in a fresh map keyed by final ID (per-run, no state survives between
// calls).
//
// # Clustering
//
// Nodes implementing [Clusterable] may be merged into super-nodes before
// placement. Grouping is greedy over resulting group size: among one
// anchor's unplaced neighbors, the largest mutually-compatible group wins,
// so a node compatible with two disjoint groups joins the larger one. A
// merged cluster's ID is the set union of its members' IDs, which makes
// cluster identity order-independent and idempotent. Minimum group sizes
// are soft preferences; maximum sizes are hard caps.
//
// # Determinism
//
// Identical registrations and options produce identical results. Root
// selection and sibling ordering break ties on canonical ID order, so the
// layout structure is also stable under shuffled registration order.
//
// # Cycles
//
// Placement degrades to a spanning tree on cyclic inputs: a node reachable
// through several paths is placed at the first anchor that reaches it.
// Surplus edges never move nodes but stay in [Result.Edges] so callers can
// draw every declared relationship.
//
// # Errors
//
// [System.Register] rejects degenerate configuration immediately
// (InvalidConfigurationError: zero/duplicate IDs, nil nodes, non-positive
// radii, inconsistent policy bounds). [System.Distribute] fails only on
// dangling neighbor references (DanglingReferenceError listing every missing
// ID) and then places nothing - there is no partial layout.
//
// # Concurrency
//
// A System is not safe for concurrent mutation, and Distribute is a pure
// single-threaded computation by default. [WithParallelism] opts into
// placing independent components on separate goroutines with unchanged
// output.
package orbit
