package simulation

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"antcolony-sim/internal/common"
	"antcolony-sim/internal/config"
	"antcolony-sim/internal/logging"

	"github.com/google/uuid"
)

// MinNodes is the smallest node set a run can start with.
const MinNodes = 3

var (
	// ErrTooFewNodes is returned by Start when fewer than MinNodes nodes exist.
	ErrTooFewNodes = errors.New("place at least 3 points")
	// ErrRunning is returned by operations that need a stopped simulation.
	ErrRunning = errors.New("simulation is running")
	// ErrNotStarted is returned by operations that need a running simulation.
	ErrNotStarted = errors.New("simulation is not running")
)

// Phase is the generational state of the simulation.
type Phase int

const (
	// PhasePathfinding advances every ant by one step per tick.
	PhasePathfinding Phase = iota
	// PhaseDoneFinding evaporates trails and reinforces the best tour.
	PhaseDoneFinding
	// PhaseIdle spawns the next generation.
	PhaseIdle
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePathfinding:
		return "pathfinding"
	case PhaseDoneFinding:
		return "donefinding"
	case PhaseIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Tour is a closed visiting sequence and its length.
type Tour struct {
	Nodes  []int
	Length float64
}

func (t *Tour) clone() *Tour {
	if t == nil {
		return nil
	}
	return &Tour{Nodes: append([]int(nil), t.Nodes...), Length: t.Length}
}

// Simulation drives the ant colony one phase-step per tick. It is not safe
// for concurrent use: every call must come from the goroutine issuing ticks.
type Simulation struct {
	cfg    *config.Config
	logger *slog.Logger
	rng    Random

	nodes  *NodeRegistry
	trails *TrailRegistry
	ants   []*Ant // Current generation, in population order
	colony *colony

	runID      string
	started    bool
	phase      Phase
	generation int
	nextAntID  int
	best       *Tour

	tourLengths []float64 // Tours evaluated during the current generation
	history     []GenerationStats
}

// NewSimulation creates a stopped simulation with no nodes. cfg is held by
// reference and read at every decision point. A nil rng is seeded from
// cfg.Run.Seed (or the clock when the seed is 0); a nil logger discards output.
func NewSimulation(cfg *config.Config, rng Random, logger *slog.Logger) (*Simulation, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if rng == nil {
		seed := cfg.Run.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Simulation{
		cfg:    cfg,
		logger: logger,
		rng:    rng,
		nodes:  NewNodeRegistry(),
		trails: NewTrailRegistry(cfg),
		phase:  PhasePathfinding,
	}
	s.colony = &colony{cfg: cfg, nodes: s.nodes, trails: s.trails, rng: rng, logger: logger}
	return s, nil
}

// Config returns the live configuration. Edits apply from the next decision point.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// AddNode places a node at pos. Nodes can only change while stopped.
// Any best tour is dropped since it no longer covers every node.
func (s *Simulation) AddNode(pos common.Vector) (*Point, error) {
	if s.started {
		return nil, ErrRunning
	}
	p := s.nodes.Add(pos)
	s.best = nil
	return p, nil
}

// AddRandomNode places a node at a random position inside the configured world.
func (s *Simulation) AddRandomNode() (*Point, error) {
	pos, err := common.NewRandomVector(s.rng, s.cfg.Run.World)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random position for node: %w", err)
	}
	return s.AddNode(pos)
}

// ClearNodes removes every node. Only allowed while stopped.
func (s *Simulation) ClearNodes() error {
	if s.started {
		return ErrRunning
	}
	s.Reset()
	s.nodes.Clear()
	return nil
}

// Start validates the node set and spawns the first generation.
// On failure the simulation is left untouched.
func (s *Simulation) Start() error {
	if s.started {
		return ErrRunning
	}
	if n := s.nodes.Len(); n < MinNodes {
		startRejectedTotal.Inc()
		s.logger.Warn("start rejected", "nodes", n, "required", MinNodes)
		return fmt.Errorf("%w: have %d", ErrTooFewNodes, n)
	}

	s.started = true
	s.runID = uuid.NewString()
	s.ants = nil
	s.best = nil
	s.tourLengths = nil
	s.phase = PhasePathfinding
	s.spawnAnts()

	s.logger.Info("simulation started",
		"run", s.runID, "nodes", s.nodes.Len(), "ants", s.cfg.Ant.Count)
	return nil
}

// Stop ends the run and clears its state. Nodes are kept. Calling Stop on a
// stopped simulation only repeats the cleanup.
func (s *Simulation) Stop() {
	if s.started {
		s.logger.Info("simulation stopped", "run", s.runID, "generations", s.generation)
	}
	s.started = false
	s.Reset()
}

// Reset clears ants, trails and the best tour and zeroes the counters.
func (s *Simulation) Reset() {
	s.ants = nil
	s.nextAntID = 0
	s.trails.Clear()
	s.best = nil
	s.generation = 0
	s.phase = PhasePathfinding
	s.tourLengths = nil
	s.history = nil
	s.runID = ""
	trailCount.Set(0)
	bestTourLength.Set(0)
}

// Tick advances one phase-step unless the simulation is paused or stopped.
func (s *Simulation) Tick() {
	if !s.started || s.cfg.Run.Paused {
		return
	}
	s.step()
}

// Step advances one phase-step even while paused.
func (s *Simulation) Step() error {
	if !s.started {
		return ErrNotStarted
	}
	s.step()
	return nil
}

// SetTurbo switches fast-forward mode.
func (s *Simulation) SetTurbo(on bool) {
	s.cfg.Run.Turbo = on
}

// SetPaused switches tick suppression.
func (s *Simulation) SetPaused(on bool) {
	s.cfg.Run.Paused = on
}

func (s *Simulation) step() {
	switch s.phase {
	case PhasePathfinding:
		s.pathfind()
	case PhaseDoneFinding:
		s.finishGeneration()
	case PhaseIdle:
		s.spawnAnts()
		s.phase = PhasePathfinding
	}
}

// pathfind steps every ant once. The first completed tour switches the phase
// but the sweep still runs over the whole population.
func (s *Simulation) pathfind() {
	for _, ant := range s.ants {
		if ant.state != AntDone {
			ant.Step(s.colony)
		}
		if ant.state == AntDone && !ant.evaluated {
			ant.evaluated = true
			s.evaluate(ant)
			s.phase = PhaseDoneFinding
		}
	}
	trailCount.Set(float64(s.trails.Len()))
}

func (s *Simulation) evaluate(ant *Ant) {
	length, err := s.nodes.TourLength(ant.path)
	if err != nil {
		s.logger.Error("failed to measure tour", "ant", ant.id, "error", err)
		return
	}
	toursCompletedTotal.Inc()
	tourLength.Observe(length)
	s.tourLengths = append(s.tourLengths, length)

	if s.best == nil || length < s.best.Length {
		s.best = &Tour{Nodes: ant.Path(), Length: length}
		bestTourLength.Set(length)
		s.logger.Debug("new best tour", "run", s.runID, "generation", s.generation, "ant", ant.id, "length", length)
	}
}

// finishGeneration discards the ants, evaporates every trail and reinforces
// the best tour.
func (s *Simulation) finishGeneration() {
	s.ants = nil
	s.nextAntID = 0

	s.trails.Evaporate(s.rng)

	if s.best != nil {
		intensity := s.cfg.Pheromone.Intensity
		tour := s.best.Nodes
		for i := 1; i < len(tour); i++ {
			s.trails.GetOrCreate(tour[i-1], tour[i]).SetValue(intensity)
		}
		s.trails.GetOrCreate(tour[0], tour[len(tour)-1]).SetValue(intensity)
	}

	s.generation++
	stats := summarizeTours(s.generation, s.tourLengths, s.best)
	s.history = append(s.history, stats)
	s.tourLengths = nil

	generationsTotal.Inc()
	trailCount.Set(float64(s.trails.Len()))

	s.logger.Info("generation complete",
		"run", s.runID,
		"generation", stats.Generation,
		"tours", stats.Tours,
		"best", stats.Best,
		"mean", stats.Mean,
		"stddev", stats.StdDev,
		"min", stats.Min,
	)

	s.phase = PhaseIdle
}

// spawnAnts creates a fresh population, each ant on a uniformly random node.
func (s *Simulation) spawnAnts() {
	n := s.nodes.Len()
	s.ants = make([]*Ant, 0, s.cfg.Ant.Count)
	for i := 0; i < s.cfg.Ant.Count; i++ {
		start := s.nodes.At(s.rng.Intn(n))
		s.ants = append(s.ants, newAnt(s.nextAntID, start))
		s.nextAntID++
	}
}

// Started reports whether a run is active.
func (s *Simulation) Started() bool {
	return s.started
}

// RunID returns the identifier of the active run, empty when stopped.
func (s *Simulation) RunID() string {
	return s.runID
}

// Phase returns the current phase.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Generation returns the number of completed generations in this run.
func (s *Simulation) Generation() int {
	return s.generation
}

// Best returns a copy of the best-known tour.
func (s *Simulation) Best() (Tour, bool) {
	if s.best == nil {
		return Tour{}, false
	}
	return *s.best.clone(), true
}

// Nodes returns the tour nodes in insertion order.
func (s *Simulation) Nodes() []*Point {
	return s.nodes.All()
}

// Ants returns the current population.
func (s *Simulation) Ants() []*Ant {
	return append([]*Ant(nil), s.ants...)
}

// Trails returns every trail in creation order.
func (s *Simulation) Trails() []*PheroTrail {
	return s.trails.All()
}

// Trail returns the trail between two nodes without creating it.
func (s *Simulation) Trail(a, b int) (*PheroTrail, bool) {
	return s.trails.Lookup(a, b)
}

// History returns the statistics of every completed generation of the run.
func (s *Simulation) History() []GenerationStats {
	return append([]GenerationStats(nil), s.history...)
}

// GetAllObjects returns every node followed by every ant.
func (s *Simulation) GetAllObjects() []SimulationObject {
	objects := make([]SimulationObject, 0, s.nodes.Len()+len(s.ants))
	for _, p := range s.nodes.points {
		objects = append(objects, p)
	}
	for _, a := range s.ants {
		objects = append(objects, a)
	}
	return objects
}

// PrintState writes a summary of the simulation to w.
func (s *Simulation) PrintState(w io.Writer) {
	fmt.Fprintln(w, "--- Current Simulation State ---")
	fmt.Fprintf(w, "Run: %s | Started: %t | Phase: %s | Generation: %d\n", s.runID, s.started, s.phase, s.generation)
	fmt.Fprintf(w, "Nodes: %d | Ants: %d | Trails: %d\n", s.nodes.Len(), len(s.ants), s.trails.Len())
	if s.best == nil {
		fmt.Fprintln(w, "Best tour: none")
	} else {
		fmt.Fprintf(w, "Best tour: %v (length %.3f)\n", s.best.Nodes, s.best.Length)
	}
	fmt.Fprintln(w, "-----------------------------")
}
