package graph

import (
	"math"

	"github.com/nvandessel/ballfall/internal/models"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/mds"
)

// Layout places nodes in the plane by classical multidimensional scaling of
// the hop distances. Pairs in different components are treated as one hop
// farther apart than the longest finite distance. The result is deterministic
// and centered on the origin.
func Layout(g *Graph) map[int]models.Vec2 {
	n := g.NodeCount()
	out := make(map[int]models.Vec2, n)
	switch n {
	case 0:
		return out
	case 1:
		out[g.nodes[0]] = models.Vec2{}
		return out
	}

	var coords mat.Dense
	k, _ := mds.TorgersonScaling(&coords, nil, hopDistances(g))
	for i, id := range g.nodes {
		var p models.Vec2
		if k > 0 {
			p.X = coords.At(i, 0)
		}
		if k > 1 {
			p.Y = coords.At(i, 1)
		}
		out[id] = p
	}
	return out
}

// hopDistances returns the all-pairs hop counts in node order, with
// unreachable pairs set to the longest finite count plus one.
func hopDistances(g *Graph) *mat.SymDense {
	n := g.NodeCount()
	paths := path.DijkstraAllPaths(g.ug)

	dist := mat.NewSymDense(n, nil)
	longest := 0.0
	for i, u := range g.nodes {
		for j := i; j < n; j++ {
			d := paths.Weight(int64(u), int64(g.nodes[j]))
			dist.SetSym(i, j, d)
			if !math.IsInf(d, 0) {
				longest = math.Max(longest, d)
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if math.IsInf(dist.At(i, j), 0) {
				dist.SetSym(i, j, longest+1)
			}
		}
	}
	return dist
}
