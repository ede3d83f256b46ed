package graph

import "math"

// PageRankConfig holds configuration for PageRank computation.
type PageRankConfig struct {
	// DampingFactor (d) is the probability of following an edge vs. teleporting.
	// Standard value: 0.85.
	DampingFactor float64

	// MaxIterations is the maximum number of power iteration steps. Default: 100.
	MaxIterations int

	// Tolerance is the convergence threshold. Default: 1e-6.
	Tolerance float64
}

// DefaultPageRankConfig returns the default PageRank configuration.
func DefaultPageRankConfig() PageRankConfig {
	return PageRankConfig{
		DampingFactor: 0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

// PageRank returns a score per node identifier, normalized so the highest
// score is 1.
//
// Algorithm: standard power iteration over distinct neighbors
//  1. Initialize all nodes with score = 1/N
//  2. PR(v) = (1-d)/N + d * sum(PR(u)/deg(u)) over neighbors u of v
//  3. Stop when the max change < Tolerance
//  4. Divide by the max score
func PageRank(g *Graph, config PageRankConfig) map[int]float64 {
	n := g.NodeCount()
	scores := make(map[int]float64, n)
	if n == 0 {
		return scores
	}

	d := config.DampingFactor
	nf := float64(n)
	cur := make([]float64, n)
	for i := range cur {
		cur[i] = 1.0 / nf
	}

	next := make([]float64, n)
	for iter := 0; iter < config.MaxIterations; iter++ {
		maxDelta := 0.0
		for v := range cur {
			sum := 0.0
			for _, u := range g.adj[v] {
				if deg := len(g.adj[u]); deg > 0 {
					sum += cur[u] / float64(deg)
				}
			}
			next[v] = (1.0-d)/nf + d*sum
			if delta := math.Abs(next[v] - cur[v]); delta > maxDelta {
				maxDelta = delta
			}
		}
		cur, next = next, cur
		if maxDelta < config.Tolerance {
			break
		}
	}

	maxScore := 0.0
	for _, s := range cur {
		maxScore = math.Max(maxScore, s)
	}
	for i, id := range g.nodes {
		if maxScore > 0 {
			scores[id] = cur[i] / maxScore
		} else {
			scores[id] = cur[i]
		}
	}
	return scores
}
