package orbit

import (
	"slices"
	"strings"
)

// idSep separates leaf identifiers inside the canonical key. It is a control
// character so ordinary display names never collide with a merged key.
const idSep = "\x1f"

// ID identifies a node within a layout run. An ID is a set of one or more
// leaf identifiers: plain nodes carry a single leaf, cluster nodes carry the
// union of their members' leaves. Two IDs are equal iff they contain the same
// leaves, regardless of the order in which they were merged, which makes
// cluster identity order-independent and idempotent under re-clustering.
//
// The zero value is not a valid ID - use [NewID] or [Union].
type ID struct {
	key string
}

// NewID creates an ID with a single leaf identifier.
// An empty leaf yields the zero ID, which [System.Register] rejects.
func NewID(leaf string) ID {
	return ID{key: leaf}
}

// Union returns the ID containing every leaf of id and other.
// Union is commutative, associative, and idempotent:
// a.Union(b) == b.Union(a) and a.Union(a) == a.
func (id ID) Union(other ID) ID {
	if id.key == other.key || other.key == "" {
		return id
	}
	if id.key == "" {
		return other
	}
	seen := make(map[string]bool)
	var leaves []string
	for _, l := range append(id.Leaves(), other.Leaves()...) {
		if !seen[l] {
			seen[l] = true
			leaves = append(leaves, l)
		}
	}
	slices.Sort(leaves)
	return ID{key: strings.Join(leaves, idSep)}
}

// Leaves returns the leaf identifiers in canonical (sorted) order.
// Returns nil for the zero ID.
func (id ID) Leaves() []string {
	if id.key == "" {
		return nil
	}
	return strings.Split(id.key, idSep)
}

// Contains reports whether every leaf of other is a leaf of id.
func (id ID) Contains(other ID) bool {
	if other.key == "" {
		return false
	}
	have := make(map[string]bool)
	for _, l := range id.Leaves() {
		have[l] = true
	}
	for _, l := range other.Leaves() {
		if !have[l] {
			return false
		}
	}
	return true
}

// Size returns the number of leaf identifiers in the ID.
func (id ID) Size() int {
	if id.key == "" {
		return 0
	}
	return strings.Count(id.key, idSep) + 1
}

// IsZero reports whether the ID carries no leaves.
func (id ID) IsZero() bool { return id.key == "" }

// String renders the ID for display: a single leaf as-is, a merged ID as
// its leaves joined with "+" in canonical order.
func (id ID) String() string {
	return strings.ReplaceAll(id.key, idSep, "+")
}

// compareID orders IDs by their canonical keys. The order is stable across
// runs and independent of registration order, which makes it suitable for
// deterministic tie-breaking.
func compareID(a, b ID) int {
	return strings.Compare(a.key, b.key)
}
