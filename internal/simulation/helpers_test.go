package simulation

import (
	"math/rand"
	"testing"

	"antcolony-sim/internal/common"
	"antcolony-sim/internal/config"

	"github.com/stretchr/testify/require"
)

// scriptedRandom replays fixed draws in a loop.
type scriptedRandom struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRandom) Float64() float64 {
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)] % n
	r.ii++
	return v
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Ant.Count = 10
	cfg.Run.TickInterval = 0
	cfg.Run.Seed = 1
	return cfg
}

func newTestSimulation(t *testing.T, cfg *config.Config, rng Random, points ...common.Vector) *Simulation {
	t.Helper()
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	sim, err := NewSimulation(cfg, rng, nil)
	require.NoError(t, err)
	for _, p := range points {
		_, err := sim.AddNode(p)
		require.NoError(t, err)
	}
	return sim
}

func square() []common.Vector {
	return []common.Vector{
		common.NewVector(0, 0),
		common.NewVector(100, 0),
		common.NewVector(100, 100),
		common.NewVector(0, 100),
	}
}

func pentagon() []common.Vector {
	return []common.Vector{
		common.NewVector(300, 100),
		common.NewVector(490, 240),
		common.NewVector(420, 460),
		common.NewVector(180, 460),
		common.NewVector(110, 240),
	}
}

// runUntilGeneration ticks until the given generation completes.
func runUntilGeneration(t *testing.T, sim *Simulation, generation int) {
	t.Helper()
	for i := 0; sim.Generation() < generation; i++ {
		require.Less(t, i, 100000, "generation %d never completed", generation)
		sim.Tick()
	}
}

func requirePermutation(t *testing.T, path []int, n int) {
	t.Helper()
	require.Len(t, path, n)
	seen := make(map[int]bool, n)
	for _, id := range path {
		require.False(t, seen[id], "node %d visited twice in %v", id, path)
		require.GreaterOrEqual(t, id, 0)
		require.Less(t, id, n)
		seen[id] = true
	}
}
