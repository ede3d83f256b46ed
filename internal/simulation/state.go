package simulation

import (
	"github.com/nvandessel/ballfall/internal/environment"
	"github.com/nvandessel/ballfall/internal/models"
)

// State is a snapshot of a run. Bodies are in identifier order, which is
// also spawn order.
type State struct {
	Bodies      []models.Body
	Environment *environment.Environment
	Gravity     models.Vec2
	Timestep    float64
	Frame       int
}
