package orbit

import (
	"math"
	"slices"
	"testing"
)

func candidates(nodes ...tagged) []clusterCandidate {
	cands := make([]clusterCandidate, len(nodes))
	for i, n := range nodes {
		cands[i] = clusterCandidate{
			id:    NewID(string(rune('a' + i))),
			node:  n,
			limit: n.ClusterPolicy().MaxSize,
		}
	}
	return cands
}

func TestGroupSiblings_MaximizesGroupSize(t *testing.T) {
	// a shares tag 3 with b only; b shares tag 2 with c, d, e. b must join
	// the larger group, leaving a alone - never {a,b} plus {c,d,e}.
	groups := groupSiblings(candidates(
		tagged{r: 1, tags: []string{"1", "3"}},
		tagged{r: 1, tags: []string{"2", "3"}},
		tagged{r: 1, tags: []string{"2", "4"}},
		tagged{r: 1, tags: []string{"2", "4"}},
		tagged{r: 1, tags: []string{"2", "4"}},
	))

	want := [][]int{{1, 2, 3, 4}, {0}}
	if len(groups) != len(want) {
		t.Fatalf("groups = %v, want %v", groups, want)
	}
	for i := range want {
		if !slices.Equal(groups[i], want[i]) {
			t.Errorf("groups[%d] = %v, want %v", i, groups[i], want[i])
		}
	}
}

func TestGroupSiblings_AllIncompatible(t *testing.T) {
	groups := groupSiblings(candidates(
		tagged{r: 1, tags: []string{"1"}},
		tagged{r: 1, tags: []string{"2"}},
		tagged{r: 1, tags: []string{"3"}},
	))
	if len(groups) != 3 {
		t.Fatalf("groups = %v, want three singletons", groups)
	}
	for i, g := range groups {
		if len(g) != 1 {
			t.Errorf("groups[%d] = %v, want singleton", i, g)
		}
	}
}

func TestGroupSiblings_MaxSizeCaps(t *testing.T) {
	// Four mutually compatible nodes, but every policy caps groups at two.
	groups := groupSiblings(candidates(
		tagged{r: 1, tags: []string{"t"}, max: 2},
		tagged{r: 1, tags: []string{"t"}, max: 2},
		tagged{r: 1, tags: []string{"t"}, max: 2},
		tagged{r: 1, tags: []string{"t"}, max: 2},
	))
	if len(groups) != 2 {
		t.Fatalf("groups = %v, want two pairs", groups)
	}
	for i, g := range groups {
		if len(g) != 2 {
			t.Errorf("groups[%d] = %v, want size 2", i, g)
		}
	}
}

func TestGroupSiblings_TightestMemberCaps(t *testing.T) {
	// One member caps at 2; the group it joins cannot grow past it even
	// though the others allow more.
	groups := groupSiblings(candidates(
		tagged{r: 1, tags: []string{"t"}},
		tagged{r: 1, tags: []string{"t"}, max: 2},
		tagged{r: 1, tags: []string{"t"}},
		tagged{r: 1, tags: []string{"t"}},
	))
	// Largest reachable group is {a,c,d} (unbounded members); b pairs with
	// nobody afterwards and stays alone.
	want := [][]int{{0, 2, 3}, {1}}
	if len(groups) != len(want) {
		t.Fatalf("groups = %v, want %v", groups, want)
	}
	for i := range want {
		if !slices.Equal(groups[i], want[i]) {
			t.Errorf("groups[%d] = %v, want %v", i, groups[i], want[i])
		}
	}
}

// asym answers Siblings only when it is the caller, so the check must be
// treated as Deny in both directions.
type asym struct {
	r      float64
	agrees bool
}

func (a asym) Radius() float64         { return a.r }
func (a asym) ClusterPolicy() Policy   { return Policy{} }
func (a asym) ClusterWith(o Node) Node { return a }
func (a asym) Clusterable(o Node) Verdict {
	if a.agrees {
		return Siblings
	}
	return Deny
}

func TestGroupSiblings_AsymmetricIsDeny(t *testing.T) {
	groups := groupSiblings([]clusterCandidate{
		{id: NewID("a"), node: asym{r: 1, agrees: true}},
		{id: NewID("b"), node: asym{r: 1, agrees: false}},
	})
	if len(groups) != 2 {
		t.Fatalf("groups = %v, want two singletons (asymmetric verdicts)", groups)
	}
}

func TestNewCluster_UnionIDAndFold(t *testing.T) {
	members := []Registration{
		reg("b", tagged{r: 3, tags: []string{"t"}}),
		reg("a", tagged{r: 4, tags: []string{"t"}}),
	}
	c := newCluster(members)

	if want := NewID("a").Union(NewID("b")); c.ID() != want {
		t.Errorf("ID() = %v, want %v", c.ID(), want)
	}
	// Area-preserving reducer: sqrt(3^2 + 4^2) = 5.
	if math.Abs(c.Radius()-5) > 1e-9 {
		t.Errorf("Radius() = %v, want 5", c.Radius())
	}
	if got := c.Members(); len(got) != 2 || got[0] != NewID("b") || got[1] != NewID("a") {
		t.Errorf("Members() = %v, want [b a]", got)
	}
}

func TestNewCluster_IdempotentIdentity(t *testing.T) {
	// Merging a pre-merged cluster with a third node yields the union of
	// all leaf IDs, whichever order the merges happen in.
	ab := Registration{
		ID:   NewID("a").Union(NewID("b")),
		Node: tagged{r: 2, tags: []string{"t"}},
	}
	c := reg("c", tagged{r: 1, tags: []string{"t"}})

	first := newCluster([]Registration{ab, c})
	second := newCluster([]Registration{c, ab})

	want := NewID("a").Union(NewID("b")).Union(NewID("c"))
	if first.ID() != want || second.ID() != want {
		t.Errorf("IDs = %v, %v, want %v", first.ID(), second.ID(), want)
	}
}

func TestClusterWeight_FallsBackToMemberSum(t *testing.T) {
	// The tagged reducer result does not implement Weighted, so the cluster
	// weighs the sum of its members' own weights.
	c := newCluster([]Registration{
		reg("a", tagged{r: 1, tags: []string{"t"}}),
		reg("b", tagged{r: 1, tags: []string{"t"}}),
		reg("c", tagged{r: 1, tags: []string{"t"}}),
	})
	if c.Weight() != 3 {
		t.Errorf("Weight() = %v, want 3", c.Weight())
	}
}
