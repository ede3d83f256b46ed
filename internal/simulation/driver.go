package simulation

import (
	"github.com/nvandessel/ballfall/internal/environment"
	"github.com/nvandessel/ballfall/internal/models"
	"github.com/nvandessel/ballfall/internal/physics"
)

// Params are the fixed per-run values the Driver needs.
type Params struct {
	Body     physics.BodyParams
	Gravity  models.Vec2
	Timestep float64
}

// Driver owns the body set and the engine for one run.
// It is not safe for concurrent use.
type Driver struct {
	env     *environment.Environment
	engine  physics.Engine
	params  Params
	handles []physics.Handle
	frame   int
}

// NewDriver registers every environment segment with engine and returns a
// driver with no bodies. The engine must already be configured with the same
// gravity as params.
func NewDriver(env *environment.Environment, engine physics.Engine, params Params) *Driver {
	for _, seg := range env.Segments() {
		engine.AddSegment(seg)
	}
	return &Driver{env: env, engine: engine, params: params}
}

// Spawn adds a body centered at pos and returns it with the next identifier.
func (d *Driver) Spawn(pos models.Vec2) models.Body {
	h := d.engine.AddCircle(pos, d.params.Body)
	d.handles = append(d.handles, h)
	return models.Body{
		ID:       len(d.handles) - 1,
		Radius:   d.params.Body.Radius,
		Position: pos,
	}
}

// Advance steps the engine by exactly one timestep.
func (d *Driver) Advance() {
	d.engine.Step(d.params.Timestep)
	d.frame++
}

// Frame returns the number of completed Advance calls.
func (d *Driver) Frame() int { return d.frame }

// Len returns the number of bodies spawned so far.
func (d *Driver) Len() int { return len(d.handles) }

// Bodies returns every body with its current simulation-space position,
// in identifier order.
func (d *Driver) Bodies() []models.Body {
	bodies := make([]models.Body, len(d.handles))
	for id, h := range d.handles {
		bodies[id] = models.Body{
			ID:       id,
			Radius:   d.params.Body.Radius,
			Position: d.engine.Position(h),
		}
	}
	return bodies
}

// MaxSpeed returns the largest body speed, or 0 with no bodies.
func (d *Driver) MaxSpeed() float64 {
	maxSpeed := 0.0
	for _, h := range d.handles {
		if s := d.engine.Velocity(h).Length(); s > maxSpeed {
			maxSpeed = s
		}
	}
	return maxSpeed
}

// State returns a snapshot of the run.
func (d *Driver) State() State {
	return State{
		Bodies:      d.Bodies(),
		Environment: d.env,
		Gravity:     d.params.Gravity,
		Timestep:    d.params.Timestep,
		Frame:       d.frame,
	}
}
