package simulation

import (
	"fmt"

	"antcolony-sim/internal/common"
	"antcolony-sim/internal/config"
)

// MaxPheromone is the upper clamp applied by decay-mode evaporation.
const MaxPheromone = 20.0

// PheroTrail is the pheromone state of the undirected edge between two nodes.
type PheroTrail struct {
	id    int
	nodeA int
	nodeB int
	value float64
}

// GetID returns the trail identifier.
func (t *PheroTrail) GetID() int {
	return t.id
}

// Nodes returns the two endpoints in the order the trail was created with.
func (t *PheroTrail) Nodes() (int, int) {
	return t.nodeA, t.nodeB
}

// Value returns the current pheromone level.
func (t *PheroTrail) Value() float64 {
	return t.value
}

// SetValue overwrites the pheromone level.
func (t *PheroTrail) SetValue(v float64) {
	t.value = v
}

// Evaporate applies one evaporation step. In decay mode the value shrinks by
// the evaporation rate and is clamped to [minimum, MaxPheromone]. Otherwise the
// value is reset to the initial level with probability equal to the rate.
func (t *PheroTrail) Evaporate(cfg *config.PheromoneConfig, rng common.RandomSource) {
	if cfg.Decay {
		t.value *= 1 - cfg.EvaporationRate
		t.value = common.Clamp(t.value, cfg.Minimum, MaxPheromone)
		return
	}
	if rng.Float64() < cfg.EvaporationRate {
		t.value = cfg.Initial
	}
}

// String returns a human-readable representation of the trail.
func (t *PheroTrail) String() string {
	return fmt.Sprintf("Trail[%d] %d<->%d value=%.3f", t.id, t.nodeA, t.nodeB, t.value)
}

// edgeKey is the canonical identity of an unordered node pair.
type edgeKey struct {
	lo, hi int
}

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b}
}

// TrailRegistry owns the trails, at most one per unordered node pair.
type TrailRegistry struct {
	cfg    *config.Config
	trails []*PheroTrail // Creation order
	index  map[edgeKey]*PheroTrail
	nextID int
}

// NewTrailRegistry creates an empty registry. New trails start at the
// initial pheromone level read from cfg at creation time.
func NewTrailRegistry(cfg *config.Config) *TrailRegistry {
	return &TrailRegistry{
		cfg:   cfg,
		index: make(map[edgeKey]*PheroTrail),
	}
}

// GetOrCreate returns the trail between a and b, creating it if needed.
// The argument order does not matter.
func (r *TrailRegistry) GetOrCreate(a, b int) *PheroTrail {
	key := newEdgeKey(a, b)
	if t, ok := r.index[key]; ok {
		return t
	}
	t := &PheroTrail{
		id:    r.nextID,
		nodeA: a,
		nodeB: b,
		value: r.cfg.Pheromone.Initial,
	}
	r.nextID++
	r.trails = append(r.trails, t)
	r.index[key] = t
	return t
}

// Lookup returns the trail between a and b without creating it.
func (r *TrailRegistry) Lookup(a, b int) (*PheroTrail, bool) {
	t, ok := r.index[newEdgeKey(a, b)]
	return t, ok
}

// Evaporate applies one evaporation step to every trail.
func (r *TrailRegistry) Evaporate(rng common.RandomSource) {
	for _, t := range r.trails {
		t.Evaporate(&r.cfg.Pheromone, rng)
	}
}

// All returns the trails in creation order.
func (r *TrailRegistry) All() []*PheroTrail {
	return append([]*PheroTrail(nil), r.trails...)
}

// Len returns the number of trails.
func (r *TrailRegistry) Len() int {
	return len(r.trails)
}

// Clear removes every trail and restarts the id counter.
func (r *TrailRegistry) Clear() {
	r.trails = nil
	r.index = make(map[edgeKey]*PheroTrail)
	r.nextID = 0
}
