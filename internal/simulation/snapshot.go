package simulation

import "antcolony-sim/internal/common"

// NodeView is a read-only copy of a node.
type NodeView struct {
	ID       int
	Position common.Vector
}

// AntView is a read-only copy of an ant.
type AntView struct {
	ID       int
	State    AntState
	Current  int
	Initial  int
	Position common.Vector
	Path     []int
	Weights  []Weight
}

// TrailView is a read-only copy of a trail.
type TrailView struct {
	ID    int
	NodeA int
	NodeB int
	Value float64
}

// Snapshot is the state exposed to renderers and other observers.
// It shares no memory with the simulation.
type Snapshot struct {
	RunID      string
	Started    bool
	Paused     bool
	Turbo      bool
	Phase      Phase
	Generation int
	Nodes      []NodeView
	Ants       []AntView
	Trails     []TrailView
	Best       *Tour
	LastStats  *GenerationStats
}

// Snapshot copies the current state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		RunID:      s.runID,
		Started:    s.started,
		Paused:     s.cfg.Run.Paused,
		Turbo:      s.cfg.Run.Turbo,
		Phase:      s.phase,
		Generation: s.generation,
		Nodes:      make([]NodeView, 0, s.nodes.Len()),
		Ants:       make([]AntView, 0, len(s.ants)),
		Trails:     make([]TrailView, 0, s.trails.Len()),
		Best:       s.best.clone(),
	}

	for _, p := range s.nodes.points {
		snap.Nodes = append(snap.Nodes, NodeView{ID: p.id, Position: p.position})
	}
	for _, a := range s.ants {
		snap.Ants = append(snap.Ants, AntView{
			ID:       a.id,
			State:    a.state,
			Current:  a.current.id,
			Initial:  a.initial.id,
			Position: a.current.position,
			Path:     a.Path(),
			Weights:  a.Weights(),
		})
	}
	for _, t := range s.trails.trails {
		snap.Trails = append(snap.Trails, TrailView{ID: t.id, NodeA: t.nodeA, NodeB: t.nodeB, Value: t.value})
	}
	if n := len(s.history); n > 0 {
		last := s.history[n-1]
		snap.LastStats = &last
	}
	return snap
}
