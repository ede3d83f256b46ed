package models

import (
	"fmt"
	"strconv"
)

// Body is a circular simulated object. The physics engine owns its velocity
// and mass state; Body only carries what the core reads back.
type Body struct {
	// ID is assigned in spawn order starting at 0.
	ID int `json:"id" yaml:"id"`

	// Radius is the same for every body in a run.
	Radius float64 `json:"radius" yaml:"radius"`

	// Position is the body's center in simulation space.
	Position Vec2 `json:"position" yaml:"position"`
}

// Segment is a static line segment of the environment.
type Segment struct {
	A          Vec2    `json:"a" yaml:"a"`
	B          Vec2    `json:"b" yaml:"b"`
	Thickness  float64 `json:"thickness" yaml:"thickness"`
	Elasticity float64 `json:"elasticity" yaml:"elasticity"`
	Friction   float64 `json:"friction" yaml:"friction"`
}

// Seed is one record of the initial-position source: integer x,y.
type Seed struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Vec converts the seed to a simulation-space position.
func (s Seed) Vec() Vec2 {
	return Vec2{X: float64(s.X), Y: float64(s.Y)}
}

// ContactPair references two touching bodies by identifier, I < J.
type ContactPair struct {
	I int `json:"i"`
	J int `json:"j"`
}

// String renders the pair in the adjacency line format "i;j".
func (p ContactPair) String() string {
	return fmt.Sprintf("%d;%d", p.I, p.J)
}

// FormatPosition renders a position in the report line format "x;y".
func FormatPosition(v Vec2) string {
	return strconv.FormatFloat(v.X, 'f', -1, 64) + ";" + strconv.FormatFloat(v.Y, 'f', -1, 64)
}
