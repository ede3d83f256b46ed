// Package physics is the port to the rigid-body engine. The rest of ballfall
// only sees the Engine interface: add static segments, add circles, step,
// read positions back.
package physics

import "github.com/nvandessel/ballfall/internal/models"

// Handle identifies a dynamic body inside an Engine.
type Handle int

// BodyParams are the physical parameters of a circular body.
type BodyParams struct {
	Radius     float64
	Mass       float64
	Moment     float64
	Elasticity float64
	Friction   float64
}

// SpaceParams configure the simulated space. Chipmunk keeps contacts cached
// for its fixed 3 steps; that is not configurable.
type SpaceParams struct {
	Gravity       models.Vec2
	Iterations    int
	CollisionSlop float64
}

// Engine is an opaque stepping service. Step blocks for one solve and is
// called from a single goroutine.
type Engine interface {
	// AddSegment adds an immovable segment.
	AddSegment(seg models.Segment)

	// AddCircle adds a dynamic circle centered at pos and returns its handle.
	AddCircle(pos models.Vec2, p BodyParams) Handle

	// Step advances the simulation by dt.
	Step(dt float64)

	// Position returns the center of the body.
	Position(h Handle) models.Vec2

	// Velocity returns the linear velocity of the body.
	Velocity(h Handle) models.Vec2
}
