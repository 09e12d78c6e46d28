package simulation

import (
	"context"
	"log/slog"
	"math"

	"antcolony-sim/internal/common"
	"antcolony-sim/internal/config"
	"antcolony-sim/internal/logging"
)

// MinDistance replaces the distance between coincident nodes so that the
// inverse-distance term stays finite.
const MinDistance = 1e-9

// AntState is the phase of an ant within its tour.
type AntState int

const (
	// AntPicking scores the candidate nodes.
	AntPicking AntState = iota
	// AntIdle holds scored candidates and moves on its next step.
	AntIdle
	// AntDone has visited every node.
	AntDone
)

// String returns the state name.
func (s AntState) String() string {
	switch s {
	case AntPicking:
		return "picking"
	case AntIdle:
		return "idle"
	case AntDone:
		return "done"
	default:
		return "unknown"
	}
}

// Random is the source of randomness used by the colony. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// colony is everything an ant consults while walking. All of it is owned by
// the controller and mutated only on the tick goroutine.
type colony struct {
	cfg    *config.Config
	nodes  *NodeRegistry
	trails *TrailRegistry
	rng    Random
	logger *slog.Logger
}

// Ant builds one tour per generation.
type Ant struct {
	id        int
	initial   *Point
	current   *Point
	path      []int        // Visited node ids in order, never repeating
	visited   map[int]bool // Set view of path
	weights   *WeightMap   // Desirability of the candidates while idle
	state     AntState
	evaluated bool // Tour length already compared against the best tour
}

func newAnt(id int, start *Point) *Ant {
	return &Ant{
		id:      id,
		initial: start,
		current: start,
		path:    []int{start.id},
		visited: map[int]bool{start.id: true},
		weights: NewWeightMap(),
		state:   AntPicking,
	}
}

// GetID returns the ant identifier within its generation.
func (a *Ant) GetID() int {
	return a.id
}

// GetPosition returns the position of the node the ant stands on.
func (a *Ant) GetPosition() common.Vector {
	return a.current.position
}

// State returns the current state.
func (a *Ant) State() AntState {
	return a.state
}

// CurrentNode returns the id of the node the ant stands on.
func (a *Ant) CurrentNode() int {
	return a.current.id
}

// InitialNode returns the id of the node the tour started from.
func (a *Ant) InitialNode() int {
	return a.initial.id
}

// Path returns a copy of the visited sequence.
func (a *Ant) Path() []int {
	return append([]int(nil), a.path...)
}

// Weights returns the pending candidate scores in insertion order.
func (a *Ant) Weights() []Weight {
	return a.weights.Entries()
}

// Step advances the ant by one state transition.
func (a *Ant) Step(c *colony) {
	switch a.state {
	case AntPicking:
		a.pick(c)
	case AntIdle:
		a.move(c)
	}
}

// pick scores every unvisited node, or finishes the tour once all nodes are visited.
func (a *Ant) pick(c *colony) {
	a.weights.Reset()

	if len(a.path) == c.nodes.Len() {
		a.state = AntDone
		if c.logger.Enabled(context.Background(), logging.LevelTrace) {
			c.logger.Log(context.Background(), logging.LevelTrace, "ant finished tour", "ant", a.id, "path", a.path)
		}
		return
	}

	for _, p := range c.nodes.points {
		if a.visited[p.id] || p.id == a.current.id {
			continue
		}
		trail := c.trails.GetOrCreate(a.current.id, p.id)
		dist := a.current.position.Distance(p.position)
		a.weights.Set(p.id, Desirability(dist, trail.Value(), &c.cfg.Ant))
	}
	a.state = AntIdle
}

// move draws the next node, marks the crossed trail and walks onto the node.
func (a *Ant) move(c *colony) {
	next, ok := WeightedChoice(a.weights, c.rng)
	if !ok {
		a.state = AntPicking
		return
	}
	point, ok := c.nodes.Get(next)
	if !ok {
		a.state = AntPicking
		return
	}

	pheromone := &c.cfg.Pheromone
	trail := c.trails.GetOrCreate(a.current.id, point.id)
	if pheromone.PassiveAscend {
		trail.value *= 1 + common.Normalize(pheromone.Passive, MaxPheromone, 1)
	} else {
		trail.value = pheromone.Passive
	}

	if c.logger.Enabled(context.Background(), logging.LevelTrace) {
		c.logger.Log(context.Background(), logging.LevelTrace, "ant moved",
			"ant", a.id, "from", a.current.id, "to", point.id, "trail", trail.value)
	}

	a.weights.Reset()
	a.path = append(a.path, point.id)
	a.visited[point.id] = true
	a.current = point

	if c.cfg.Run.Turbo {
		a.pick(c)
		return
	}
	a.state = AntPicking
}

// Desirability scores a candidate node at distance dist over a trail with the
// given pheromone value. Distances are measured in units of 100. Coincident
// nodes use MinDistance and a non-finite score is mapped onto the float range.
func Desirability(dist, pheromone float64, cfg *config.AntConfig) float64 {
	if dist < MinDistance {
		dist = MinDistance
	}
	score := math.Pow(1/(dist/100), cfg.DistancePower) * math.Pow(pheromone, cfg.PheromonePower)
	return common.Finite(score)
}
