package contact

import (
	"math/rand/v2"
	"testing"

	"github.com/nvandessel/ballfall/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	radius = 20.0
	ratio  = 1.02
)

func TestExtract_ThreeBodyScenario(t *testing.T) {
	bodies := FromPositions([]models.Vec2{{X: 100, Y: 100}, {X: 100, Y: 140}, {X: 300, Y: 100}}, radius)

	pairs := Extract(bodies, radius, ratio)

	assert.Equal(t, []models.ContactPair{{I: 0, J: 1}}, pairs)
}

func TestExtract_UsesBothAxes(t *testing.T) {
	// Same x, far apart in y: a distance built from x twice would call this a contact.
	bodies := FromPositions([]models.Vec2{{X: 100, Y: 100}, {X: 100, Y: 400}}, radius)
	assert.Empty(t, Extract(bodies, radius, ratio))

	// Far apart in x, same y.
	bodies = FromPositions([]models.Vec2{{X: 100, Y: 100}, {X: 400, Y: 100}}, radius)
	assert.Empty(t, Extract(bodies, radius, ratio))
}

func TestIsContact_Boundary(t *testing.T) {
	origin := models.Vec2{X: 0, Y: 0}
	tests := []struct {
		name string
		b    models.Vec2
		want bool
	}{
		{"exact tangency", models.Vec2{X: 2 * radius, Y: 0}, true},
		{"overlap", models.Vec2{X: radius, Y: 0}, true},
		{"within slack", models.Vec2{X: 0, Y: 40.7}, true},
		{"at threshold is not contact", models.Vec2{X: Threshold(radius, ratio), Y: 0}, false},
		{"three percent apart", models.Vec2{X: 2 * radius * 1.03, Y: 0}, false},
		{"diagonal", models.Vec2{X: 30, Y: 30}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsContact(origin, tt.b, radius, ratio))
		})
	}
}

func TestIsContact_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		a := models.Vec2{X: rng.Float64() * 200, Y: rng.Float64() * 200}
		b := models.Vec2{X: a.X + rng.NormFloat64()*30, Y: a.Y + rng.NormFloat64()*30}
		require.Equal(t, IsContact(a, b, radius, ratio), IsContact(b, a, radius, ratio))
	}
}

func TestVisit_EnumeratesEveryPairOnce(t *testing.T) {
	for n := 0; n <= 12; n++ {
		positions := make([]models.Vec2, n)
		for i := range positions {
			positions[i] = models.Vec2{X: float64(i) * 10, Y: 0}
		}
		bodies := FromPositions(positions, radius)

		seen := map[[2]int]bool{}
		var order [][2]int
		Visit(bodies, func(i, j int, _ float64) {
			require.Less(t, i, j, "no self pairs, i < j")
			key := [2]int{i, j}
			require.False(t, seen[key], "pair %v repeated", key)
			seen[key] = true
			order = append(order, key)
		})

		assert.Len(t, seen, PairCount(n), "n=%d", n)
		for k := 1; k < len(order); k++ {
			prev, cur := order[k-1], order[k]
			assert.True(t, prev[0] < cur[0] || (prev[0] == cur[0] && prev[1] < cur[1]),
				"order %v then %v", prev, cur)
		}
	}
}

func TestExtract_StackedBodiesYieldEveryPairInOrder(t *testing.T) {
	for n := 0; n <= 12; n++ {
		bodies := FromPositions(make([]models.Vec2, n), radius)

		pairs := Extract(bodies, radius, ratio)

		require.Len(t, pairs, PairCount(n), "n=%d", n)
		k := 0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				assert.Equal(t, models.ContactPair{I: i, J: j}, pairs[k])
				k++
			}
		}
	}
}

func TestExtract_OrderAndIdempotence(t *testing.T) {
	// A tight cluster where every pair touches.
	bodies := FromPositions([]models.Vec2{
		{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 15, Y: 25}, {X: 15, Y: 10},
	}, radius)

	first := Extract(bodies, radius, ratio)
	second := Extract(bodies, radius, ratio)

	assert.Equal(t, []models.ContactPair{
		{I: 0, J: 1}, {I: 0, J: 2}, {I: 0, J: 3},
		{I: 1, J: 2}, {I: 1, J: 3},
		{I: 2, J: 3},
	}, first)
	assert.Equal(t, first, second)
}

func TestExtract_RelabelingPreservesContacts(t *testing.T) {
	a := models.Vec2{X: 100, Y: 100}
	b := models.Vec2{X: 120, Y: 130}
	c := models.Vec2{X: 400, Y: 400}

	forward := Extract(FromPositions([]models.Vec2{a, b, c}, radius), radius, ratio)
	swapped := Extract(FromPositions([]models.Vec2{b, a, c}, radius), radius, ratio)

	assert.Equal(t, []models.ContactPair{{I: 0, J: 1}}, forward)
	assert.Equal(t, forward, swapped)
}

func TestExtract_FewBodies(t *testing.T) {
	assert.Empty(t, Extract(nil, radius, ratio))
	assert.Empty(t, Extract(FromPositions([]models.Vec2{{X: 1, Y: 1}}, radius), radius, ratio))
	assert.NotNil(t, Extract(nil, radius, ratio))
}

func TestPairCount(t *testing.T) {
	assert.Equal(t, 0, PairCount(0))
	assert.Equal(t, 0, PairCount(1))
	assert.Equal(t, 1, PairCount(2))
	assert.Equal(t, 3, PairCount(3))
	assert.Equal(t, 780, PairCount(40))
}
