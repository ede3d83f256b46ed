package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/nvandessel/ballfall/internal/models"
)

// ChipmunkEngine implements Engine on a Chipmunk2D space.
type ChipmunkEngine struct {
	space  *cp.Space
	bodies []*cp.Body
}

// NewChipmunkEngine creates a space configured with p.
func NewChipmunkEngine(p SpaceParams) *ChipmunkEngine {
	space := cp.NewSpace()
	space.SetGravity(toVector(p.Gravity))
	space.Iterations = uint(p.Iterations)
	space.SetCollisionSlop(p.CollisionSlop)
	return &ChipmunkEngine{space: space}
}

// AddSegment attaches seg to the space's static body.
func (e *ChipmunkEngine) AddSegment(seg models.Segment) {
	shape := cp.NewSegment(e.space.StaticBody, toVector(seg.A), toVector(seg.B), seg.Thickness)
	shape.SetElasticity(seg.Elasticity)
	shape.SetFriction(seg.Friction)
	e.space.AddShape(shape)
}

// AddCircle adds a dynamic body with one circle shape.
func (e *ChipmunkEngine) AddCircle(pos models.Vec2, p BodyParams) Handle {
	body := cp.NewBody(p.Mass, p.Moment)
	body.SetPosition(toVector(pos))

	shape := cp.NewCircle(body, p.Radius, cp.Vector{})
	shape.SetElasticity(p.Elasticity)
	shape.SetFriction(p.Friction)

	e.space.AddBody(body)
	e.space.AddShape(shape)

	e.bodies = append(e.bodies, body)
	return Handle(len(e.bodies) - 1)
}

// Step advances the space by dt.
func (e *ChipmunkEngine) Step(dt float64) {
	e.space.Step(dt)
}

// Position returns the body's center.
func (e *ChipmunkEngine) Position(h Handle) models.Vec2 {
	return fromVector(e.bodies[h].Position())
}

// Velocity returns the body's linear velocity.
func (e *ChipmunkEngine) Velocity(h Handle) models.Vec2 {
	return fromVector(e.bodies[h].Velocity())
}

func toVector(v models.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromVector(v cp.Vector) models.Vec2 {
	return models.Vec2{X: v.X, Y: v.Y}
}
