package simulation

import (
	"github.com/nvandessel/ballfall/internal/environment"
	"github.com/nvandessel/ballfall/internal/models"
	"github.com/nvandessel/ballfall/internal/physics"
)

// fakeEngine records calls and moves every body by drift per step.
type fakeEngine struct {
	segments  []models.Segment
	positions []models.Vec2
	params    []physics.BodyParams
	steps     []float64
	drift     models.Vec2
}

func (f *fakeEngine) AddSegment(seg models.Segment) {
	f.segments = append(f.segments, seg)
}

func (f *fakeEngine) AddCircle(pos models.Vec2, p physics.BodyParams) physics.Handle {
	f.positions = append(f.positions, pos)
	f.params = append(f.params, p)
	return physics.Handle(len(f.positions) - 1)
}

func (f *fakeEngine) Step(dt float64) {
	f.steps = append(f.steps, dt)
	for i := range f.positions {
		f.positions[i].X += f.drift.X
		f.positions[i].Y += f.drift.Y
	}
}

func (f *fakeEngine) Position(h physics.Handle) models.Vec2 {
	return f.positions[h]
}

func (f *fakeEngine) Velocity(h physics.Handle) models.Vec2 {
	return f.drift
}

// fixedPolicy hands out positions in order, cycling.
type fixedPolicy struct {
	points []models.Vec2
	next   int
}

func (p *fixedPolicy) Next() models.Vec2 {
	v := p.points[p.next%len(p.points)]
	p.next++
	return v
}

func testParams() Params {
	return Params{
		Body:     physics.BodyParams{Radius: 20, Mass: 1, Moment: 100, Elasticity: 0.8, Friction: 0.5},
		Gravity:  models.Vec2{X: 0, Y: -500},
		Timestep: 1.0 / 60.0,
	}
}

func testEnv() *environment.Environment {
	return environment.New(800, 600, environment.DefaultFunnel(800, 600, environment.SegmentDefaults{Thickness: 5}))
}
