package visualization

import (
	"testing"
	"time"

	"antcolony-sim/internal/common"
	"antcolony-sim/internal/config"
	"antcolony-sim/internal/logging"
	"antcolony-sim/internal/simulation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	cfg := config.Default()
	cfg.Ant.Count = 5
	cfg.Run.Seed = 3
	cfg.Run.TickInterval = time.Second
	cfg.View.TurboTicksPerFrame = 4
	sim, err := simulation.NewSimulation(cfg, nil, logging.Discard())
	require.NoError(t, err)
	r := NewRenderer(sim)
	r.Layout(800, 600)
	return r
}

func TestTransformRoundTrip(t *testing.T) {
	r := newTestRenderer(t)
	r.calculateTransform()

	world := common.NewVector(400, 300)
	x, y := r.worldToScreen(world)
	back := r.screenToWorld(int(x), int(y))
	assert.InDelta(t, world.X(), back.X(), 2)
	assert.InDelta(t, world.Y(), back.Y(), 2)
}

func TestTransformFitsNodesOutsideWorld(t *testing.T) {
	r := newTestRenderer(t)
	_, err := r.sim.AddNode(common.NewVector(-400, 1200))
	require.NoError(t, err)
	r.calculateTransform()

	x, y := r.worldToScreen(common.NewVector(-400, 1200))
	assert.GreaterOrEqual(t, float64(x), padding-1)
	assert.LessOrEqual(t, float64(y), 600-padding+1)
}

func TestApplyStartRequiresPoints(t *testing.T) {
	r := newTestRenderer(t)
	r.input.Apply(CommandStart)
	assert.False(t, r.sim.Started())
	assert.Contains(t, r.status, "cannot start")

	for _, p := range []common.Vector{{0, 0}, {100, 0}, {100, 100}, {0, 100}} {
		r.input.addPoint(p)
	}
	r.input.Apply(CommandStart)
	require.True(t, r.sim.Started())

	r.input.addPoint(common.NewVector(50, 50))
	assert.Len(t, r.sim.Nodes(), 4)
	assert.Contains(t, r.status, "stop the run")

	r.input.Apply(CommandStop)
	assert.False(t, r.sim.Started())
	assert.Len(t, r.sim.Nodes(), 4)

	r.input.Apply(CommandStop)
	assert.Empty(t, r.sim.Nodes())
}

func TestApplyToggles(t *testing.T) {
	r := newTestRenderer(t)
	r.input.Apply(CommandToggleTurbo)
	assert.True(t, r.sim.Config().Run.Turbo)
	r.input.Apply(CommandTogglePause)
	assert.True(t, r.sim.Config().Run.Paused)
	r.input.Apply(CommandTogglePause)
	assert.False(t, r.sim.Config().Run.Paused)
}

func TestAdvanceHonoursInterval(t *testing.T) {
	r := newTestRenderer(t)
	for _, p := range []common.Vector{{0, 0}, {100, 0}, {100, 100}, {0, 100}} {
		r.input.addPoint(p)
	}
	require.NoError(t, r.sim.Start())

	now := time.Now()
	r.advance(now)
	for _, ant := range r.sim.Ants() {
		require.Equal(t, simulation.AntIdle, ant.State(), "first frame ticks")
	}

	r.advance(now.Add(time.Millisecond))
	for _, ant := range r.sim.Ants() {
		require.Equal(t, simulation.AntIdle, ant.State(), "interval not elapsed")
	}

	r.advance(now.Add(2 * time.Second))
	for _, ant := range r.sim.Ants() {
		assert.Equal(t, simulation.AntPicking, ant.State())
		assert.Len(t, ant.Path(), 2)
	}
}

func TestAdvanceTurboBatchesTicks(t *testing.T) {
	r := newTestRenderer(t)
	for _, p := range []common.Vector{{0, 0}, {100, 0}, {100, 100}} {
		r.input.addPoint(p)
	}
	require.NoError(t, r.sim.Start())
	r.sim.SetTurbo(true)

	r.advance(time.Now())
	assert.Equal(t, 1, r.sim.Generation())
}

func TestWithAlpha(t *testing.T) {
	c := withAlpha(trailColor, 1)
	assert.Equal(t, trailColor, c)
	c = withAlpha(trailColor, 0)
	assert.Equal(t, uint8(0), c.A)
	assert.Equal(t, uint8(0), c.B)
}
