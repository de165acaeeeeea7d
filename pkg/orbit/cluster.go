package orbit

import "slices"

// Cluster is the derived node substituted for a merged group: its ID is the
// union of the members' IDs, its radius (and weight) comes from the payload
// produced by folding the members' ClusterWith reducers pairwise in
// registration order, and its neighbor set is the union of the members'
// neighbors minus the members themselves.
//
// Cluster implements [Node] and [Weighted], so a caller may register a
// cluster from an earlier run directly; merging it with further nodes unions
// the leaf IDs again, which keeps cluster identity idempotent.
type Cluster struct {
	id        ID
	node      Node
	members   []ID
	ownWeight float64
}

// ID returns the union of the member IDs.
func (c *Cluster) ID() ID { return c.id }

// Radius returns the merged payload's radius.
func (c *Cluster) Radius() float64 { return c.node.Radius() }

// Weight returns the merged payload's weight when the payload implements
// [Weighted], otherwise the sum of the members' own weights.
func (c *Cluster) Weight() float64 { return c.ownWeight }

// Members returns the member IDs in merge order.
func (c *Cluster) Members() []ID { return slices.Clone(c.members) }

// Node returns the merged payload produced by the ClusterWith fold.
func (c *Cluster) Node() Node { return c.node }

// newCluster folds a group of at least two registrations into one Cluster.
// The fold prefers the accumulator's reducer; when a reducer returns a
// payload that is no longer [Clusterable], the next member's reducer takes
// over with the accumulator as its argument.
func newCluster(members []Registration) *Cluster {
	id := members[0].ID
	acc := members[0].Node
	for _, m := range members[1:] {
		id = id.Union(m.ID)
		if c, ok := acc.(Clusterable); ok {
			acc = c.ClusterWith(m.Node)
		} else {
			acc = m.Node.(Clusterable).ClusterWith(acc)
		}
	}

	weight := 0.0
	if w, ok := acc.(Weighted); ok {
		weight = w.Weight()
	} else {
		for _, m := range members {
			if w, ok := m.Node.(Weighted); ok {
				weight += w.Weight()
			} else {
				weight++
			}
		}
	}

	ids := make([]ID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return &Cluster{id: id, node: acc, members: ids, ownWeight: weight}
}

// clusterCandidate is one node eligible for the grouping pass under the
// current anchor.
type clusterCandidate struct {
	id    ID
	node  Clusterable
	limit int // effective max group size, 0 = unbounded
}

// groupSiblings partitions the candidates into the groups that will be
// merged, returning member indices per group in candidate order.
//
// The search is greedy over resulting group size: every remaining candidate
// seeds a trial group, grown by adding (in candidate order) each remaining
// candidate that is mutually compatible with every current member and whose
// addition stays within every member's max size. The largest trial group is
// committed (ties go to the earliest seed), its members leave the pool, and
// the search repeats on the remainder. A node compatible with two disjoint
// groups therefore lands in the larger one, never merely the first found.
//
// Compatibility is checked in both directions and any disagreement counts as
// [Deny]. Minimum sizes never block a commit: the committed group is the
// largest reachable one, so a group below a member's preference means
// nothing larger existed.
func groupSiblings(cands []clusterCandidate) [][]int {
	n := len(cands)
	compat := make([][]bool, n)
	for i := range compat {
		compat[i] = make([]bool, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ok := cands[i].node.Clusterable(cands[j].node) == Siblings &&
				cands[j].node.Clusterable(cands[i].node) == Siblings
			compat[i][j], compat[j][i] = ok, ok
		}
	}

	taken := make([]bool, n)
	var groups [][]int
	for remaining := n; remaining > 0; {
		var best []int
		for seed := 0; seed < n; seed++ {
			if taken[seed] {
				continue
			}
			if grp := growGroup(seed, cands, compat, taken); len(grp) > len(best) {
				best = grp
			}
		}
		for _, i := range best {
			taken[i] = true
		}
		remaining -= len(best)
		slices.Sort(best)
		groups = append(groups, best)
	}
	return groups
}

// growGroup grows a trial group from one seed, keeping mutual compatibility
// and every member's max size intact.
func growGroup(seed int, cands []clusterCandidate, compat [][]bool, taken []bool) []int {
	grp := []int{seed}
	limit := cands[seed].limit
	for c := range cands {
		if taken[c] || c == seed {
			continue
		}
		if limit > 0 && len(grp)+1 > limit {
			break
		}
		if cands[c].limit > 0 && len(grp)+1 > cands[c].limit {
			continue
		}
		ok := true
		for _, m := range grp {
			if !compat[m][c] {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		grp = append(grp, c)
		if cands[c].limit > 0 && (limit == 0 || cands[c].limit < limit) {
			limit = cands[c].limit
		}
	}
	return grp
}
