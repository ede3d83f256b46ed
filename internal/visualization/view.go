// Package visualization renders contact graphs and scene snapshots.
package visualization

import (
	"github.com/nvandessel/ballfall/internal/graph"
	"github.com/nvandessel/ballfall/internal/models"
)

// Format specifies the output format for graph rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(s); f {
	case FormatDOT, FormatJSON, FormatSVG:
		return f, true
	}
	return "", false
}

// NodeView is one node with its computed properties.
type NodeView struct {
	ID        int
	Degree    int
	PageRank  float64
	Component int
	Pos       models.Vec2
}

// GraphView is a graph prepared for rendering. Nodes are in ascending
// identifier order; Edges keep parse order, duplicates included.
type GraphView struct {
	Nodes      []NodeView
	Edges      []graph.Edge
	Components int
}

// BuildView computes degree, PageRank, component index and layout position
// for every node of g.
func BuildView(g *graph.Graph) GraphView {
	ranks := graph.PageRank(g, graph.DefaultPageRankConfig())
	layout := graph.Layout(g)
	comps := g.Components()

	compOf := make(map[int]int, g.NodeCount())
	for ci, comp := range comps {
		for _, id := range comp {
			compOf[id] = ci
		}
	}

	ids := g.Nodes()
	nodes := make([]NodeView, len(ids))
	for i, id := range ids {
		nodes[i] = NodeView{
			ID:        id,
			Degree:    g.Degree(id),
			PageRank:  ranks[id],
			Component: compOf[id],
			Pos:       layout[id],
		}
	}
	return GraphView{Nodes: nodes, Edges: g.Edges(), Components: len(comps)}
}

// bounds returns the min and max corners of the node positions.
func (v GraphView) bounds() (lo, hi models.Vec2) {
	for i, n := range v.Nodes {
		if i == 0 {
			lo, hi = n.Pos, n.Pos
			continue
		}
		lo.X, lo.Y = min(lo.X, n.Pos.X), min(lo.Y, n.Pos.Y)
		hi.X, hi.Y = max(hi.X, n.Pos.X), max(hi.Y, n.Pos.Y)
	}
	return lo, hi
}
