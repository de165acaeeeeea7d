package orbit

import (
	"math"
	"slices"
)

// topology is the validated view of one run's registrations: a symmetric
// adjacency index and the connected components in discovery order. It is
// built once per Distribute call and read-only afterwards.
type topology struct {
	order      []ID
	regs       map[ID]Registration
	adjacent   map[ID][]ID // symmetric, first-seen order, no duplicates, no self loops
	components [][]ID      // BFS discovery order per unvisited registration
}

// analyze validates the registrations and partitions them into connected
// components. Every declared neighbor must resolve to a registration;
// otherwise analyze fails with a [DanglingReferenceError] carrying every
// missing ID, and no layout work happens.
func analyze(regs []Registration) (*topology, error) {
	t := &topology{
		order:    make([]ID, 0, len(regs)),
		regs:     make(map[ID]Registration, len(regs)),
		adjacent: make(map[ID][]ID, len(regs)),
	}
	for _, r := range regs {
		t.order = append(t.order, r.ID)
		t.regs[r.ID] = r
	}

	// Declared neighbors are one-directional in the input; insert both
	// directions so the traversals below see an undirected graph.
	var missing []ID
	seenMissing := make(map[ID]bool)
	linked := make(map[ID]map[ID]bool, len(regs))
	addEdge := func(a, b ID) {
		if linked[a] == nil {
			linked[a] = make(map[ID]bool)
		}
		if !linked[a][b] {
			linked[a][b] = true
			t.adjacent[a] = append(t.adjacent[a], b)
		}
	}
	for _, r := range regs {
		for _, nb := range r.Neighbors {
			if _, ok := t.regs[nb]; !ok {
				if !seenMissing[nb] {
					seenMissing[nb] = true
					missing = append(missing, nb)
				}
				continue
			}
			if nb == r.ID {
				continue
			}
			addEdge(r.ID, nb)
			addEdge(nb, r.ID)
		}
	}
	if len(missing) > 0 {
		slices.SortFunc(missing, compareID)
		return nil, &DanglingReferenceError{IDs: missing}
	}

	t.components = t.partition()
	return t, nil
}

// partition splits the node set into connected components with one
// breadth-first traversal per unvisited node, in registration order.
func (t *topology) partition() [][]ID {
	visited := make(map[ID]bool, len(t.order))
	var components [][]ID
	for _, start := range t.order {
		if visited[start] {
			continue
		}
		var comp []ID
		queue := []ID{start}
		visited[start] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			comp = append(comp, id)
			for _, nb := range t.adjacent[id] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

// ownWeight returns the node's own contribution to subtree weights:
// the [Weighted] override when present, 1 otherwise.
func (t *topology) ownWeight(id ID) float64 {
	if w, ok := t.regs[id].Node.(Weighted); ok {
		return w.Weight()
	}
	return 1
}

// spanning computes a breadth-first spanning tree of one component rooted at
// root, returning the visit order and the parent of every non-root node.
// On cyclic components the surplus edges are simply never tree edges.
func (t *topology) spanning(root ID) (order []ID, parent map[ID]ID) {
	parent = make(map[ID]ID)
	visited := map[ID]bool{root: true}
	queue := []ID{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, nb := range t.adjacent[id] {
			if !visited[nb] {
				visited[nb] = true
				parent[nb] = id
				queue = append(queue, nb)
			}
		}
	}
	return order, parent
}

// subtreeWeights folds own weights up the spanning tree: each node's weight
// is its own weight plus the weights of the subtrees hanging off it.
func (t *topology) subtreeWeights(order []ID, parent map[ID]ID) map[ID]float64 {
	weights := make(map[ID]float64, len(order))
	for _, id := range order {
		weights[id] = t.ownWeight(id)
	}
	for i := len(order) - 1; i > 0; i-- {
		id := order[i]
		weights[parent[id]] += weights[id]
	}
	return weights
}

// centroid selects the component's layout root: the node whose removal
// yields the most balanced split, i.e. whose heaviest adjacent branch is
// lightest. Computed by re-rooting the subtree weights of an arbitrary
// spanning tree: for node n with subtree weight w(n), the branch through its
// parent weighs total - w(n) and each child branch weighs the child's
// subtree. Ties go to the smaller canonical ID so the choice is independent
// of registration order.
func (t *topology) centroid(comp []ID) ID {
	if len(comp) == 1 {
		return comp[0]
	}
	order, parent := t.spanning(comp[0])
	weights := t.subtreeWeights(order, parent)
	total := weights[comp[0]]

	children := make(map[ID][]ID, len(order))
	for _, id := range order[1:] {
		children[parent[id]] = append(children[parent[id]], id)
	}

	best := comp[0]
	bestScore := math.Inf(-1)
	for _, id := range order {
		heaviest := 0.0
		for _, c := range children[id] {
			if weights[c] > heaviest {
				heaviest = weights[c]
			}
		}
		if id != order[0] {
			if up := total - weights[id]; up > heaviest {
				heaviest = up
			}
		}
		score := total - heaviest
		if score > bestScore || (score == bestScore && compareID(id, best) < 0) {
			best = id
			bestScore = score
		}
	}
	return best
}
