package simulation

import (
	"math"
	"testing"

	"antcolony-sim/internal/common"
	"antcolony-sim/internal/config"
	"antcolony-sim/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestColony(cfg *config.Config, rng Random, points ...common.Vector) *colony {
	nodes := NewNodeRegistry()
	for _, p := range points {
		nodes.Add(p)
	}
	return &colony{
		cfg:    cfg,
		nodes:  nodes,
		trails: NewTrailRegistry(cfg),
		rng:    rng,
		logger: logging.Discard(),
	}
}

func TestDesirability(t *testing.T) {
	tests := []struct {
		name      string
		dist      float64
		pheromone float64
		distPow   float64
		pheroPow  float64
		want      float64
	}{
		{"unit distance and pheromone", 100, 1, 3, 1.3, 1},
		{"half distance cubed", 50, 1, 3, 1, 8},
		{"double distance squared", 200, 1, 2, 1, 0.25},
		{"pheromone power", 100, 4, 1, 0.5, 2},
		{"combined", 50, 9, 1, 0.5, 6},
		{"zero powers", 37, 13, 0, 0, 1},
		{"zero powers at zero distance", 0, 13, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.AntConfig{DistancePower: tt.distPow, PheromonePower: tt.pheroPow}
			assert.InDelta(t, tt.want, Desirability(tt.dist, tt.pheromone, cfg), 1e-9)
		})
	}
}

func TestDesirability_CoincidentNodesStayFinite(t *testing.T) {
	cfg := &config.AntConfig{DistancePower: 3, PheromonePower: 1.3}
	got := Desirability(0, 1, cfg)
	assert.False(t, math.IsInf(got, 0))
	assert.False(t, math.IsNaN(got))
	assert.Greater(t, got, Desirability(1, 1, cfg))

	huge := &config.AntConfig{DistancePower: 100, PheromonePower: 1}
	assert.Equal(t, math.MaxFloat64, Desirability(0, 1, huge))
}

func TestAnt_StateMachine(t *testing.T) {
	cfg := testConfig()
	cfg.Pheromone.PassiveAscend = false
	cfg.Pheromone.Passive = 2
	c := newTestColony(cfg, &scriptedRandom{floats: []float64{0}}, square()...)
	ant := newAnt(0, c.nodes.At(0))

	assert.Equal(t, AntPicking, ant.State())
	assert.Equal(t, []int{0}, ant.Path())

	ant.Step(c)
	require.Equal(t, AntIdle, ant.State())
	ws := ant.Weights()
	require.Len(t, ws, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{ws[0].Node, ws[1].Node, ws[2].Node})
	assert.InDelta(t, 1, ws[0].Score, 1e-9, "distance 100, pheromone 1")
	assert.Equal(t, 3, c.trails.Len(), "scoring creates the candidate trails")

	ant.Step(c)
	assert.Equal(t, AntPicking, ant.State())
	assert.Equal(t, []int{0, 1}, ant.Path())
	assert.Equal(t, 1, ant.CurrentNode())
	assert.Equal(t, 0, ant.InitialNode())
	assert.Equal(t, common.NewVector(100, 0), ant.GetPosition())
	assert.Empty(t, ant.Weights())
	tr, _ := c.trails.Lookup(0, 1)
	assert.Equal(t, 2.0, tr.Value(), "absolute passive update")

	for i := 0; i < 4; i++ {
		ant.Step(c)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, ant.Path())
	assert.Equal(t, AntPicking, ant.State())

	ant.Step(c)
	assert.Equal(t, AntDone, ant.State())
	assert.Empty(t, ant.Weights())

	ant.Step(c)
	assert.Equal(t, AntDone, ant.State(), "done is terminal")
	assert.Equal(t, []int{0, 1, 2, 3}, ant.Path())
}

func TestAnt_PassiveAscend(t *testing.T) {
	cfg := testConfig()
	cfg.Pheromone.PassiveAscend = true
	cfg.Pheromone.Passive = 1.5
	c := newTestColony(cfg, &scriptedRandom{floats: []float64{0}}, square()...)
	c.trails.GetOrCreate(0, 1).SetValue(3)
	ant := newAnt(0, c.nodes.At(0))

	ant.Step(c)
	ant.Step(c)

	tr, _ := c.trails.Lookup(1, 0)
	assert.InDelta(t, 3*(1+0.5/19), tr.Value(), 1e-12)
}

func TestAnt_TurboCollapsesIdleAndPicking(t *testing.T) {
	cfg := testConfig()
	cfg.Run.Turbo = true
	c := newTestColony(cfg, &scriptedRandom{floats: []float64{0}}, square()...)
	ant := newAnt(0, c.nodes.At(2))

	ant.Step(c)
	require.Equal(t, AntIdle, ant.State())
	ant.Step(c)
	assert.Equal(t, AntIdle, ant.State(), "moved and scored in the same step")
	assert.Len(t, ant.Path(), 2)
	assert.Equal(t, 2, len(ant.Weights()))

	ant.Step(c)
	ant.Step(c)
	assert.Equal(t, AntDone, ant.State())
	requirePermutation(t, ant.Path(), 4)
}

func TestAnt_VisitsEveryNodeOnce(t *testing.T) {
	cfg := testConfig()
	draws := []float64{0.99, 0.01, 0.5, 0.73, 0.2}
	c := newTestColony(cfg, &scriptedRandom{floats: draws}, pentagon()...)

	for start := 0; start < c.nodes.Len(); start++ {
		ant := newAnt(start, c.nodes.At(start))
		for i := 0; i < 20 && ant.State() != AntDone; i++ {
			ant.Step(c)
		}
		require.Equal(t, AntDone, ant.State())
		path := ant.Path()
		requirePermutation(t, path, c.nodes.Len())
		assert.Equal(t, start, path[0])
	}
}

func TestAntState_String(t *testing.T) {
	assert.Equal(t, "picking", AntPicking.String())
	assert.Equal(t, "idle", AntIdle.String())
	assert.Equal(t, "done", AntDone.String())
	assert.Equal(t, "unknown", AntState(9).String())
}
