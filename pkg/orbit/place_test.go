package orbit

import (
	"errors"
	"math"
	"testing"
)

// register adds every registration to a fresh system, failing the test on
// configuration errors.
func register(t *testing.T, regs []Registration) *System {
	t.Helper()
	sys := NewSystem()
	for _, r := range regs {
		if err := sys.Register(r.ID, r.Node, r.Neighbors...); err != nil {
			t.Fatalf("Register(%v): %v", r.ID, err)
		}
	}
	return sys
}

func TestDistribute_SingleNode(t *testing.T) {
	sys := register(t, []Registration{reg("solo", ball{r: 2.5})})
	res, err := sys.Distribute()
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	p, ok := res.Placements[NewID("solo")]
	if !ok {
		t.Fatal("solo not placed")
	}
	if math.Abs(p.X-2.5) > 1e-9 || math.Abs(p.Y-2.5) > 1e-9 {
		t.Errorf("position = (%v, %v), want (2.5, 2.5)", p.X, p.Y)
	}
	if p.Orbit != 0 {
		t.Errorf("Orbit = %v, want 0", p.Orbit)
	}
	if res.Components != 1 {
		t.Errorf("Components = %d, want 1", res.Components)
	}
}

func TestDistribute_NoOverlapAndNonNegative(t *testing.T) {
	sys := register(t, []Registration{
		reg("core", ball{r: 3}, "s1", "s2", "s3", "s4"),
		reg("s1", ball{r: 1}),
		reg("s2", ball{r: 2}, "t1", "t2"),
		reg("s3", ball{r: 1.5}, "t3"),
		reg("s4", ball{r: 1}),
		reg("t1", ball{r: 1}),
		reg("t2", ball{r: 1}),
		reg("t3", ball{r: 0.5}),
	})
	res, err := sys.Distribute()
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if len(res.Placements) != 8 {
		t.Fatalf("len(Placements) = %d, want 8", len(res.Placements))
	}

	for _, e := range res.Edges {
		a, b := res.Placements[e.From], res.Placements[e.To]
		dist := math.Hypot(b.X-a.X, b.Y-a.Y)
		if dist+0.001 < a.Radius+b.Radius {
			t.Errorf("connected pair %v-%v overlaps: dist %v < %v",
				e.From, e.To, dist, a.Radius+b.Radius)
		}
	}
	for id, p := range res.Placements {
		if p.X-p.Radius < -0.001 || p.Y-p.Radius < -0.001 {
			t.Errorf("%v extends below zero: (%v, %v) radius %v", id, p.X, p.Y, p.Radius)
		}
	}
}

func TestDistribute_DanglingPlacesNothing(t *testing.T) {
	sys := register(t, []Registration{
		reg("a", ball{r: 1}, "b", "x"),
		reg("b", ball{r: 1}),
	})
	res, err := sys.Distribute()
	if res != nil {
		t.Fatalf("result = %v, want nil on dangling reference", res)
	}

	var dangling *DanglingReferenceError
	if !errors.As(err, &dangling) {
		t.Fatalf("error = %v, want *DanglingReferenceError", err)
	}
	if len(dangling.IDs) != 1 || dangling.IDs[0] != NewID("x") {
		t.Errorf("IDs = %v, want [x]", dangling.IDs)
	}
}

func TestDistribute_PathShuffleInvariant(t *testing.T) {
	base := []Registration{
		reg("a", ball{r: 1}, "b"),
		reg("b", ball{r: 1}, "c"),
		reg("c", ball{r: 1}, "d"),
		reg("d", ball{r: 1}, "e"),
		reg("e", ball{r: 1}, "f"),
		reg("f", ball{r: 1}),
	}
	orders := [][]int{
		{0, 1, 2, 3, 4, 5},
		{5, 3, 1, 4, 0, 2},
		{2, 5, 0, 4, 1, 3},
	}

	var reference map[ID]Placement
	for _, order := range orders {
		regs := make([]Registration, len(order))
		for i, idx := range order {
			regs[i] = base[idx]
		}
		res, err := register(t, regs).Distribute()
		if err != nil {
			t.Fatalf("Distribute (order %v): %v", order, err)
		}

		// The root anchor is the placement kept at orbit zero.
		for id, p := range res.Placements {
			if p.Orbit == 0 && id != NewID("c") {
				t.Errorf("root (order %v) = %v, want c", order, id)
			}
		}

		if reference == nil {
			reference = res.Placements
			continue
		}
		if len(res.Placements) != len(reference) {
			t.Fatalf("placement count (order %v) = %d, want %d",
				order, len(res.Placements), len(reference))
		}
		for id, want := range reference {
			got, ok := res.Placements[id]
			if !ok {
				t.Fatalf("node %v missing (order %v)", id, order)
			}
			if math.Abs(got.X-want.X) > 1e-9 ||
				math.Abs(got.Y-want.Y) > 1e-9 ||
				math.Abs(got.Orbit-want.Orbit) > 1e-9 {
				t.Errorf("placement %v (order %v) = (%v, %v, %v), want (%v, %v, %v)",
					id, order, got.X, got.Y, got.Orbit, want.X, want.Y, want.Orbit)
			}
		}
	}
}

func TestDistribute_ClusteringMaximizesGroupSize(t *testing.T) {
	sys := register(t, []Registration{
		reg("x", ball{r: 1}, "a", "b", "c", "d", "e"),
		reg("a", tagged{r: 1, tags: []string{"1", "3"}}),
		reg("b", tagged{r: 1, tags: []string{"2", "3"}}),
		reg("c", tagged{r: 1, tags: []string{"2", "4"}}),
		reg("d", tagged{r: 1, tags: []string{"2", "4"}}),
		reg("e", tagged{r: 1, tags: []string{"2", "4"}}),
	})
	res, err := sys.Distribute()
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	bcde := NewID("b").Union(NewID("c")).Union(NewID("d")).Union(NewID("e"))
	if _, ok := res.Placements[bcde]; !ok {
		t.Fatalf("placements %v missing cluster %v", res.IDs(), bcde)
	}
	if _, ok := res.Placements[NewID("a")]; !ok {
		t.Error("a must stay a singleton")
	}
	if _, ok := res.Placements[NewID("a").Union(NewID("b"))]; ok {
		t.Error("a+b cluster formed; b belongs with the larger group")
	}
	if len(res.Placements) != 3 {
		t.Errorf("len(Placements) = %d, want 3 (x, a, cluster)", len(res.Placements))
	}

	cluster, ok := res.Placements[bcde].Node.(*Cluster)
	if !ok {
		t.Fatalf("cluster placement node = %T, want *Cluster", res.Placements[bcde].Node)
	}
	if len(cluster.Members()) != 4 {
		t.Errorf("cluster members = %v, want 4", cluster.Members())
	}

	// Declared x-b..x-e edges collapse onto the cluster; x-a stays.
	if len(res.Edges) != 2 {
		t.Errorf("Edges = %v, want x-a and x-cluster", res.Edges)
	}
}

func TestDistribute_IntraClusterEdgesDropped(t *testing.T) {
	sys := register(t, []Registration{
		reg("x", ball{r: 1}, "b", "c"),
		reg("b", tagged{r: 1, tags: []string{"t"}}, "c"),
		reg("c", tagged{r: 1, tags: []string{"t"}}),
	})
	res, err := sys.Distribute()
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	bc := NewID("b").Union(NewID("c"))
	want := []Edge{{From: bc, To: NewID("x")}}
	if len(res.Edges) != 1 || res.Edges[0] != want[0] {
		t.Errorf("Edges = %v, want %v", res.Edges, want)
	}
}

func TestDistribute_ClusteringDisabled(t *testing.T) {
	sys := register(t, []Registration{
		reg("x", ball{r: 1}, "b", "c"),
		reg("b", tagged{r: 1, tags: []string{"t"}}),
		reg("c", tagged{r: 1, tags: []string{"t"}}),
	})
	res, err := sys.Distribute(WithClustering(false))
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	for _, id := range []string{"x", "b", "c"} {
		if _, ok := res.Placements[NewID(id)]; !ok {
			t.Errorf("%s missing from unclustered placements %v", id, res.IDs())
		}
	}
}

func TestDistribute_CycleSpanningTree(t *testing.T) {
	sys := register(t, []Registration{
		reg("a", ball{r: 1}, "b"),
		reg("b", ball{r: 1}, "c"),
		reg("c", ball{r: 1}, "a"),
	})
	res, err := sys.Distribute()
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if len(res.Placements) != 3 {
		t.Fatalf("len(Placements) = %d, want 3", len(res.Placements))
	}
	// Every declared relationship survives, including the edge the spanning
	// traversal never used for positioning.
	if len(res.Edges) != 3 {
		t.Errorf("len(Edges) = %d, want 3", len(res.Edges))
	}
}

func TestDistribute_HeavierSiblingLeads(t *testing.T) {
	// center's ring: the p subtree (3 nodes) outweighs q and r (2 each),
	// so p takes the first slot on the ring, due east of the root.
	sys := register(t, []Registration{
		reg("center", ball{r: 1}, "p", "q", "r"),
		reg("p", ball{r: 1}, "p1", "p2"),
		reg("q", ball{r: 1}, "q1"),
		reg("r", ball{r: 1}, "r1"),
		reg("p1", ball{r: 1}),
		reg("p2", ball{r: 1}),
		reg("q1", ball{r: 1}),
		reg("r1", ball{r: 1}),
	})
	res, err := sys.Distribute()
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	center := res.Placements[NewID("center")]
	if center.Orbit != 0 {
		t.Fatalf("center Orbit = %v, want 0 (root)", center.Orbit)
	}
	p := res.Placements[NewID("p")]
	if p.X <= center.X {
		t.Errorf("p.X = %v, want > center.X %v (angle 0 slot)", p.X, center.X)
	}
	if math.Abs(p.Y-center.Y) > 1e-9 {
		t.Errorf("p.Y = %v, want centered at %v", p.Y, center.Y)
	}
}

func TestDistribute_ComponentDefaultSharedOrigin(t *testing.T) {
	sys := register(t, []Registration{
		reg("a", ball{r: 1}, "b"),
		reg("b", ball{r: 1}),
		reg("c", ball{r: 1}, "d"),
		reg("d", ball{r: 1}),
	})
	res, err := sys.Distribute()
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if res.Components != 2 {
		t.Fatalf("Components = %d, want 2", res.Components)
	}

	// Both components are translated by the same global offset, so the two
	// roots land on the same spot. Disconnected nodes carry no non-overlap
	// guarantee by default.
	a, c := res.Placements[NewID("a")], res.Placements[NewID("c")]
	if a.X != c.X || a.Y != c.Y {
		t.Errorf("roots diverge: a (%v, %v) vs c (%v, %v)", a.X, a.Y, c.X, c.Y)
	}
}

func TestDistribute_ComponentSpacing(t *testing.T) {
	sys := register(t, []Registration{
		reg("a", ball{r: 1}, "b"),
		reg("b", ball{r: 1}),
		reg("c", ball{r: 1}, "d"),
		reg("d", ball{r: 1}),
	})
	res, err := sys.Distribute(WithComponentSpacing(5))
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	// First component spans x [0,4]; the second starts after the gap.
	b := res.Placements[NewID("b")]
	c := res.Placements[NewID("c")]
	gap := (c.X - c.Radius) - (b.X + b.Radius)
	if math.Abs(gap-5) > 1e-9 {
		t.Errorf("gap between components = %v, want 5", gap)
	}
	for id, p := range res.Placements {
		if p.X-p.Radius < -1e-9 || p.Y-p.Radius < -1e-9 {
			t.Errorf("%v below zero after spacing: (%v, %v)", id, p.X, p.Y)
		}
	}
}

func TestDistribute_ParallelMatchesSequential(t *testing.T) {
	regs := []Registration{
		reg("a", ball{r: 1}, "b"),
		reg("b", ball{r: 2}),
		reg("c", ball{r: 1}, "d", "e"),
		reg("d", ball{r: 1}),
		reg("e", ball{r: 1.5}),
		reg("f", ball{r: 3}),
		reg("g", ball{r: 1}, "h"),
		reg("h", ball{r: 0.5}),
	}
	seq, err := register(t, regs).Distribute()
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	par, err := register(t, regs).Distribute(WithParallelism(4))
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	if len(par.Placements) != len(seq.Placements) {
		t.Fatalf("placement count = %d, want %d", len(par.Placements), len(seq.Placements))
	}
	for id, want := range seq.Placements {
		got := par.Placements[id]
		if got.X != want.X || got.Y != want.Y || got.Orbit != want.Orbit {
			t.Errorf("parallel placement %v = (%v, %v, %v), want (%v, %v, %v)",
				id, got.X, got.Y, got.Orbit, want.X, want.Y, want.Orbit)
		}
	}
}
