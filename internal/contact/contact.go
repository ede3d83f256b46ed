// Package contact derives the contact graph from settled body positions.
package contact

import "github.com/nvandessel/ballfall/internal/models"

// PairCount returns n*(n-1)/2, the number of unordered pairs Extract compares.
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// Threshold is the center distance below which two bodies touch.
func Threshold(radius, ratio float64) float64 {
	return 2 * radius * ratio
}

// IsContact reports whether centers a and b are strictly closer than
// 2*radius*ratio. The test is symmetric in a and b.
func IsContact(a, b models.Vec2, radius, ratio float64) bool {
	return a.Distance(b) < Threshold(radius, ratio)
}

// Extract compares every unordered pair of bodies once and returns the
// touching ones. bodies must be in identifier order; the result is ordered
// by I ascending, then J ascending, and is rebuilt on every call.
func Extract(bodies []models.Body, radius, ratio float64) []models.ContactPair {
	threshold := Threshold(radius, ratio)
	pairs := []models.ContactPair{}
	Visit(bodies, func(i, j int, dist float64) {
		if dist < threshold {
			pairs = append(pairs, models.ContactPair{I: i, J: j})
		}
	})
	return pairs
}

// Visit calls fn with the identifiers and center distance of every unordered
// pair, in extraction order.
func Visit(bodies []models.Body, fn func(i, j int, dist float64)) {
	for i := 0; i < len(bodies)-1; i++ {
		for j := i + 1; j < len(bodies); j++ {
			fn(bodies[i].ID, bodies[j].ID, bodies[i].Position.Distance(bodies[j].Position))
		}
	}
}

// FromPositions assigns identifiers 0..n-1 to positions in order.
func FromPositions(positions []models.Vec2, radius float64) []models.Body {
	bodies := make([]models.Body, len(positions))
	for i, p := range positions {
		bodies[i] = models.Body{ID: i, Radius: radius, Position: p}
	}
	return bodies
}
