package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/nvandessel/ballfall/internal/models"
)

// SpawnPolicy decides where the next body enters. The caller decides when.
type SpawnPolicy interface {
	Next() models.Vec2
}

// Band describes the horizontal spawn band.
type Band struct {
	Width        float64
	Height       float64
	Margin       float64
	HeightOffset float64
}

// BandPolicy spawns at an integer x drawn uniformly from
// [Margin, Width-Margin] on the line y = Height-HeightOffset.
type BandPolicy struct {
	rng  *rand.Rand
	minX int
	maxX int
	y    float64
}

// NewBandPolicy creates a policy drawing from rng.
func NewBandPolicy(rng *rand.Rand, b Band) (*BandPolicy, error) {
	minX := int(math.Ceil(b.Margin))
	maxX := int(math.Floor(b.Width - b.Margin))
	if maxX < minX {
		return nil, fmt.Errorf("empty spawn band: margin %g in width %g", b.Margin, b.Width)
	}
	return &BandPolicy{rng: rng, minX: minX, maxX: maxX, y: b.Height - b.HeightOffset}, nil
}

// Next returns the next spawn position.
func (p *BandPolicy) Next() models.Vec2 {
	x := p.minX + p.rng.IntN(p.maxX-p.minX+1)
	return models.Vec2{X: float64(x), Y: p.y}
}

// NewRand returns a generator seeded with seed, or from the runtime's entropy when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}
