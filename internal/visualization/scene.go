package visualization

import (
	"fmt"
	"strings"

	"github.com/nvandessel/ballfall/internal/models"
)

// Scene is what a snapshot shows: the world box, its static segments, the
// bodies, and optionally the contacts between them.
type Scene struct {
	Width    float64
	Height   float64
	Segments []models.Segment
	Bodies   []models.Body
	Contacts []models.ContactPair
}

// screen maps a simulation-space point (y up) to image space (y down).
func (s Scene) screen(p models.Vec2) models.Vec2 {
	return models.Vec2{X: p.X, Y: s.Height - p.Y}
}

// RenderScene draws the scene as SVG. This is the only place simulation
// coordinates are flipped.
func RenderScene(s Scene) string {
	var b strings.Builder
	writeSVGHeader(&b, s.Width, s.Height)

	b.WriteString("  <g stroke=\"black\" stroke-linecap=\"round\">\n")
	for _, seg := range s.Segments {
		a, c := s.screen(seg.A), s.screen(seg.B)
		b.WriteString(fmt.Sprintf("    <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"%.2f\"/>\n",
			a.X, a.Y, c.X, c.Y, 2*seg.Thickness))
	}
	b.WriteString("  </g>\n")

	b.WriteString("  <g fill=\"steelblue\" fill-opacity=\"0.8\">\n")
	for _, body := range s.Bodies {
		p := s.screen(body.Position)
		b.WriteString(fmt.Sprintf("    <circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\"><title>%d</title></circle>\n",
			p.X, p.Y, body.Radius, body.ID))
	}
	b.WriteString("  </g>\n")

	if len(s.Contacts) > 0 {
		byID := make(map[int]models.Vec2, len(s.Bodies))
		for _, body := range s.Bodies {
			byID[body.ID] = s.screen(body.Position)
		}
		b.WriteString("  <g stroke=\"tomato\" stroke-width=\"2\">\n")
		for _, c := range s.Contacts {
			p, q := byID[c.I], byID[c.J]
			b.WriteString(fmt.Sprintf("    <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\"/>\n", p.X, p.Y, q.X, q.Y))
		}
		b.WriteString("  </g>\n")
	}

	b.WriteString("</svg>\n")
	return b.String()
}
