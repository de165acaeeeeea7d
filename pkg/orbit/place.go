package orbit

import (
	"cmp"
	"math"
	"slices"
	"sync"
)

// sibling is one entry on an anchor's orbit: a single node, or a cluster
// standing in for its merged members.
type sibling struct {
	id       ID
	node     Node
	radius   float64
	weight   float64
	members  []ID // original candidate IDs covered, length 1 for singles
	adjacent []ID // traversal continuation for clusters (member union minus members)
}

// componentLayout is one component's placement in its own local coordinates,
// with the origin at the component root.
type componentLayout struct {
	placements map[ID]Placement
	merged     map[ID]ID // original member ID -> cluster ID
}

// place lays out every component and assembles the run result: local
// placements per component, optional left-to-right component arrangement,
// the global non-negative translation, and the final edge list remapped to
// cluster IDs.
func place(top *topology, cfg config) *Result {
	comps := top.components
	layouts := make([]*componentLayout, len(comps))

	if cfg.workers > 1 && len(comps) > 1 {
		sem := make(chan struct{}, cfg.workers)
		var wg sync.WaitGroup
		for i, comp := range comps {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				layouts[i] = placeComponent(top, cfg, comp)
			}()
		}
		wg.Wait()
	} else {
		for i, comp := range comps {
			layouts[i] = placeComponent(top, cfg, comp)
		}
	}

	placements := make(map[ID]Placement)
	merged := make(map[ID]ID)
	if cfg.componentGap > 0 {
		cursor := 0.0
		for _, cl := range layouts {
			minX, minY, maxX, _ := bounds(cl.placements)
			for id, p := range cl.placements {
				p.X += cursor - minX
				p.Y -= minY
				placements[id] = p
			}
			cursor += (maxX - minX) + cfg.componentGap
		}
	} else {
		for _, cl := range layouts {
			for id, p := range cl.placements {
				placements[id] = p
			}
		}
		if len(placements) > 0 {
			minX, minY, _, _ := bounds(placements)
			for id, p := range placements {
				p.X -= minX
				p.Y -= minY
				placements[id] = p
			}
		}
	}
	for _, cl := range layouts {
		for member, cluster := range cl.merged {
			merged[member] = cluster
		}
	}

	return &Result{
		Placements: placements,
		Edges:      remapEdges(top, merged),
		Components: len(comps),
	}
}

// placeComponent runs the recursive expansion for one component: pick the
// root, then breadth-first from it, clustering and packing each anchor's
// unplaced neighbors onto a shared orbit one level at a time. A node
// reachable through several paths is placed exactly once, at the first
// anchor that reaches it; surplus edges on cyclic inputs never move nodes.
func placeComponent(top *topology, cfg config, comp []ID) *componentLayout {
	root := top.centroid(comp)
	order, parent := top.spanning(root)
	weights := top.subtreeWeights(order, parent)

	cl := &componentLayout{
		placements: make(map[ID]Placement, len(comp)),
		merged:     make(map[ID]ID),
	}
	placed := make(map[ID]bool, len(comp))
	parentOf := make(map[ID]ID)
	clusterAdj := make(map[ID][]ID)

	cl.placements[root] = Placement{Radius: top.regs[root].Node.Radius(), Node: top.regs[root].Node}
	placed[root] = true

	queue := []ID{root}
	for len(queue) > 0 {
		anchor := queue[0]
		queue = queue[1:]
		ap := cl.placements[anchor]

		adjacent := clusterAdj[anchor]
		if adjacent == nil {
			adjacent = top.adjacent[anchor]
		}
		var cands []ID
		for _, nb := range adjacent {
			if !placed[nb] {
				cands = append(cands, nb)
			}
		}
		if len(cands) == 0 {
			continue
		}

		sibs := buildSiblings(top, cands, weights, cfg.clustering)
		slices.SortFunc(sibs, func(a, b sibling) int {
			if a.weight != b.weight {
				return cmp.Compare(b.weight, a.weight)
			}
			return compareID(a.id, b.id)
		})

		radii := make([]float64, len(sibs))
		for i, sb := range sibs {
			radii[i] = sb.radius
		}
		orbitR, angles := PackOrbit(ap.Radius, radii)

		// Fan out away from the anchor's own parent so subtrees radiate
		// outward; the root fans from angle zero.
		base := 0.0
		if pid, ok := parentOf[anchor]; ok {
			pp := cl.placements[pid]
			base = math.Atan2(ap.Y-pp.Y, ap.X-pp.X)
		}

		for i, sb := range sibs {
			dx, dy := polar(orbitR, base+angles[i])
			cl.placements[sb.id] = Placement{
				X:      ap.X + dx,
				Y:      ap.Y + dy,
				Orbit:  orbitR,
				Radius: sb.radius,
				Node:   sb.node,
			}
			parentOf[sb.id] = anchor
			for _, m := range sb.members {
				placed[m] = true
				if len(sb.members) > 1 {
					cl.merged[m] = sb.id
				}
			}
			if len(sb.members) > 1 {
				clusterAdj[sb.id] = sb.adjacent
			}
			queue = append(queue, sb.id)
		}
	}
	return cl
}

// buildSiblings turns an anchor's unplaced neighbors into orbit entries,
// merging eligible groups into clusters when clustering is enabled. Nodes
// without a cluster policy always stay single.
func buildSiblings(top *topology, cands []ID, weights map[ID]float64, clustering bool) []sibling {
	var sibs []sibling
	single := func(id ID) sibling {
		n := top.regs[id].Node
		return sibling{
			id:      id,
			node:    n,
			radius:  n.Radius(),
			weight:  weights[id],
			members: []ID{id},
		}
	}

	var eligible []clusterCandidate
	for _, id := range cands {
		if c, ok := top.regs[id].Node.(Clusterable); ok && clustering {
			eligible = append(eligible, clusterCandidate{
				id:    id,
				node:  c,
				limit: c.ClusterPolicy().MaxSize,
			})
		} else {
			sibs = append(sibs, single(id))
		}
	}
	if len(eligible) == 0 {
		return sibs
	}

	for _, grp := range groupSiblings(eligible) {
		if len(grp) == 1 {
			sibs = append(sibs, single(eligible[grp[0]].id))
			continue
		}
		members := make([]Registration, len(grp))
		memberSet := make(map[ID]bool, len(grp))
		weight := 0.0
		for i, idx := range grp {
			id := eligible[idx].id
			members[i] = top.regs[id]
			memberSet[id] = true
			weight += weights[id]
		}
		c := newCluster(members)

		var adjacent []ID
		seen := make(map[ID]bool)
		for _, m := range members {
			for _, nb := range top.adjacent[m.ID] {
				if !memberSet[nb] && !seen[nb] {
					seen[nb] = true
					adjacent = append(adjacent, nb)
				}
			}
		}

		memberIDs := make([]ID, len(members))
		for i, m := range members {
			memberIDs[i] = m.ID
		}
		sibs = append(sibs, sibling{
			id:       c.ID(),
			node:     c,
			radius:   c.Radius(),
			weight:   weight,
			members:  memberIDs,
			adjacent: adjacent,
		})
	}
	return sibs
}

// bounds returns the bounding box of a placement set, radius included.
func bounds(placements map[ID]Placement) (minX, minY, maxX, maxY float64) {
	first := true
	for _, p := range placements {
		if first {
			minX, minY = p.X-p.Radius, p.Y-p.Radius
			maxX, maxY = p.X+p.Radius, p.Y+p.Radius
			first = false
			continue
		}
		minX = math.Min(minX, p.X-p.Radius)
		minY = math.Min(minY, p.Y-p.Radius)
		maxX = math.Max(maxX, p.X+p.Radius)
		maxY = math.Max(maxY, p.Y+p.Radius)
	}
	return minX, minY, maxX, maxY
}

// remapEdges rewrites the declared neighbor relationships onto final IDs:
// endpoints merged into a cluster point at the cluster, duplicates and
// intra-cluster edges collapse, and the list is sorted for stable output.
func remapEdges(top *topology, merged map[ID]ID) []Edge {
	finalOf := func(id ID) ID {
		if m, ok := merged[id]; ok {
			return m
		}
		return id
	}

	seen := make(map[Edge]bool)
	var edges []Edge
	for _, id := range top.order {
		for _, nb := range top.regs[id].Neighbors {
			a, b := finalOf(id), finalOf(nb)
			if a == b {
				continue
			}
			if compareID(b, a) < 0 {
				a, b = b, a
			}
			e := Edge{From: a, To: b}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if c := compareID(a.From, b.From); c != 0 {
			return c
		}
		return compareID(a.To, b.To)
	})
	return edges
}
