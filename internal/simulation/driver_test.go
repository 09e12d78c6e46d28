package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_RequiresStartedSimulation(t *testing.T) {
	sim := newTestSimulation(t, testConfig(), nil, square()...)
	_, err := NewDriver(sim).Run(context.Background())
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestDriver_StopsAfterMaxGenerations(t *testing.T) {
	cfg := testConfig()
	cfg.Run.MaxGenerations = 4
	sim := newTestSimulation(t, cfg, nil, pentagon()...)
	require.NoError(t, sim.Start())
	runID := sim.RunID()

	var seen []int
	d := NewDriver(sim)
	d.OnGeneration = func(s GenerationStats) { seen = append(seen, s.Generation) }

	result, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, runID, result.RunID)
	assert.Equal(t, 4, result.Generations)
	require.NotNil(t, result.Best)
	requirePermutation(t, result.Best.Nodes, 5)
	require.Len(t, result.History, 4)
	assert.Equal(t, result.Best.Length, result.History[3].Best)
	assert.Equal(t, []int{1, 2, 3, 4}, seen)

	assert.False(t, sim.Started(), "the run is cleaned up")
	assert.Equal(t, 0, sim.Generation())
	assert.Empty(t, sim.Trails())
}

func TestDriver_TurboRunsBackToBack(t *testing.T) {
	cfg := testConfig()
	cfg.Run.MaxGenerations = 3
	cfg.Run.Turbo = true
	cfg.Run.TickInterval = time.Hour
	sim := newTestSimulation(t, cfg, nil, square()...)
	require.NoError(t, sim.Start())

	done := make(chan Result, 1)
	go func() {
		result, _ := NewDriver(sim).Run(context.Background())
		done <- result
	}()

	select {
	case result := <-done:
		assert.Equal(t, 3, result.Generations)
	case <-time.After(5 * time.Second):
		t.Fatal("turbo run waited for the tick interval")
	}
}

func TestDriver_CancellationStopsTheRun(t *testing.T) {
	cfg := testConfig()
	cfg.Run.TickInterval = time.Millisecond
	sim := newTestSimulation(t, cfg, nil, pentagon()...)
	require.NoError(t, sim.Start())

	ctx, cancel := context.WithCancel(context.Background())
	d := NewDriver(sim)
	d.OnGeneration = func(s GenerationStats) {
		if s.Generation == 2 {
			cancel()
		}
	}

	result, err := d.Run(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Generations, 2)
	assert.False(t, sim.Started())
	assert.Empty(t, sim.Ants())
}

func TestDriver_PausedRunCanBeCancelled(t *testing.T) {
	cfg := testConfig()
	cfg.Run.TickInterval = 0
	cfg.Run.Paused = true
	sim := newTestSimulation(t, cfg, nil, square()...)
	require.NoError(t, sim.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	result, err := NewDriver(sim).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Generations, "paused runs make no progress")
	assert.False(t, sim.Started())
}
