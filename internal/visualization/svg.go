package visualization

import (
	"fmt"
	"strings"

	"github.com/nvandessel/ballfall/internal/models"
)

const (
	svgMargin     = 30.0
	svgNodeRadius = 10.0
)

// RenderSVG draws the graph layout into a size x size SVG image.
func RenderSVG(v GraphView, size float64) string {
	lo, hi := v.bounds()
	span := max(hi.X-lo.X, hi.Y-lo.Y)
	inner := size - 2*svgMargin
	scale := 1.0
	if span > 0 {
		scale = inner / span
	}
	// Center the drawing within the canvas.
	offX := svgMargin + (inner-(hi.X-lo.X)*scale)/2
	offY := svgMargin + (inner-(hi.Y-lo.Y)*scale)/2
	project := func(p models.Vec2) models.Vec2 {
		return models.Vec2{X: offX + (p.X-lo.X)*scale, Y: offY + (hi.Y-p.Y)*scale}
	}

	pos := make(map[int]models.Vec2, len(v.Nodes))
	for _, n := range v.Nodes {
		pos[n.ID] = project(n.Pos)
	}

	var b strings.Builder
	writeSVGHeader(&b, size, size)
	b.WriteString("  <g stroke=\"#666\" stroke-width=\"1.5\">\n")
	for _, e := range v.Edges {
		p, q := pos[e.U], pos[e.V]
		b.WriteString(fmt.Sprintf("    <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\"/>\n", p.X, p.Y, q.X, q.Y))
	}
	b.WriteString("  </g>\n")

	b.WriteString("  <g font-family=\"Helvetica\" font-size=\"9\" text-anchor=\"middle\">\n")
	for _, n := range v.Nodes {
		p := pos[n.ID]
		b.WriteString(fmt.Sprintf("    <circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.0f\" fill=\"%s\"><title>%d degree=%d pagerank=%.3f</title></circle>\n",
			p.X, p.Y, svgNodeRadius, componentColor(n.Component), n.ID, n.Degree, n.PageRank))
		b.WriteString(fmt.Sprintf("    <text x=\"%.2f\" y=\"%.2f\">%d</text>\n", p.X, p.Y+3, n.ID))
	}
	b.WriteString("  </g>\n")
	b.WriteString("</svg>\n")
	return b.String()
}

func writeSVGHeader(b *strings.Builder, width, height float64) {
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%.0f\" height=\"%.0f\" viewBox=\"0 0 %.0f %.0f\">\n",
		width, height, width, height))
	b.WriteString(fmt.Sprintf("  <rect width=\"%.0f\" height=\"%.0f\" fill=\"white\"/>\n", width, height))
}
