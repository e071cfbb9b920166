package graph

// unionFind is a disjoint-set forest over dense identities.
type unionFind struct {
	parent []ID
	rank   []uint8
}

func newUnionFind(n int) *unionFind {
	parent := make([]ID, n)
	for i := range parent {
		parent[i] = ID(i)
	}
	return &unionFind{parent: parent, rank: make([]uint8, n)}
}

// find returns the set representative, halving the path as it goes.
func (uf *unionFind) find(i ID) ID {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

// union merges two sets and reports whether they were distinct.
func (uf *unionFind) union(i, j ID) bool {
	ri, rj := uf.find(i), uf.find(j)
	if ri == rj {
		return false
	}

	// Union by rank
	switch {
	case uf.rank[ri] < uf.rank[rj]:
		uf.parent[ri] = rj
	case uf.rank[ri] > uf.rank[rj]:
		uf.parent[rj] = ri
	default:
		uf.parent[rj] = ri
		uf.rank[ri]++
	}
	return true
}

// Components counts weakly connected components, ignoring edge direction.
// An empty graph has zero components.
func Components(g Reader) int {
	n := g.Len()
	uf := newUnionFind(n)
	count := n
	for v := 0; v < n; v++ {
		for _, w := range g.Neighbors(ID(v)) {
			if uf.union(ID(v), w) {
				count--
			}
		}
	}
	return count
}
