package visualization

import (
	"fmt"
	"strings"
)

// dotScale converts layout units to DOT points.
const dotScale = 72.0

// componentColors cycles over connected components.
var componentColors = []string{
	"steelblue",
	"tomato",
	"mediumseagreen",
	"goldenrod",
	"mediumpurple",
	"lightslategray",
}

func componentColor(c int) string {
	return componentColors[c%len(componentColors)]
}

// RenderDOT produces an undirected Graphviz DOT document. Node positions come
// from the layout and are pinned, so `neato -n` reproduces them.
func RenderDOT(v GraphView) string {
	var b strings.Builder
	b.WriteString("graph contacts {\n")
	b.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [color=\"gray40\"];\n\n")

	for _, n := range v.Nodes {
		b.WriteString(fmt.Sprintf("  %d [pos=\"%.2f,%.2f!\", fillcolor=%q, tooltip=\"degree=%d pagerank=%.3f\"];\n",
			n.ID, n.Pos.X*dotScale, n.Pos.Y*dotScale, componentColor(n.Component), n.Degree, n.PageRank))
	}
	if len(v.Nodes) > 0 {
		b.WriteString("\n")
	}

	for _, e := range v.Edges {
		b.WriteString(fmt.Sprintf("  %d -- %d;\n", e.U, e.V))
	}

	b.WriteString("}\n")
	return b.String()
}

// RenderJSON produces a JSON-ready graph representation with nodes and edges arrays.
func RenderJSON(v GraphView) map[string]interface{} {
	jsonNodes := make([]map[string]interface{}, 0, len(v.Nodes))
	for _, n := range v.Nodes {
		jsonNodes = append(jsonNodes, map[string]interface{}{
			"id":        n.ID,
			"degree":    n.Degree,
			"pagerank":  n.PageRank,
			"component": n.Component,
			"x":         n.Pos.X,
			"y":         n.Pos.Y,
		})
	}

	jsonEdges := make([]map[string]interface{}, 0, len(v.Edges))
	for _, e := range v.Edges {
		jsonEdges = append(jsonEdges, map[string]interface{}{
			"source": e.U,
			"target": e.V,
		})
	}

	return map[string]interface{}{
		"nodes":           jsonNodes,
		"edges":           jsonEdges,
		"node_count":      len(jsonNodes),
		"edge_count":      len(jsonEdges),
		"component_count": v.Components,
	}
}
