package models

import "math"

// Vec2 is a point or displacement in simulation space.
// Y grows upward; only presentation code flips it.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Length returns the Euclidean norm of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the Euclidean distance between v and o using both axes.
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Length()
}
