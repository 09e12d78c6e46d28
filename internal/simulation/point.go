package simulation

import (
	"fmt"

	"antcolony-sim/internal/common"
)

// Point is a tour node. It is immutable once placed.
type Point struct {
	id       int
	position common.Vector
}

// GetID returns the unique identifier of the point.
func (p *Point) GetID() int {
	return p.id
}

// GetPosition returns the position of the point.
func (p *Point) GetPosition() common.Vector {
	return p.position
}

// String returns a human-readable representation of the point.
func (p *Point) String() string {
	return fmt.Sprintf("Point[%d] Pos: %s", p.id, p.position)
}

// NodeRegistry owns the fixed set of tour nodes. Identifiers come from a
// counter owned by the registry and restart from zero on Clear.
type NodeRegistry struct {
	points []*Point       // Insertion order, used for candidate iteration
	byID   map[int]*Point // Quick lookup by id
	nextID int
}

// NewNodeRegistry creates an empty registry.
func NewNodeRegistry() *NodeRegistry {
	return &NodeRegistry{byID: make(map[int]*Point)}
}

// Add places a new node at pos and returns it.
func (r *NodeRegistry) Add(pos common.Vector) *Point {
	p := &Point{id: r.nextID, position: pos}
	r.nextID++
	r.points = append(r.points, p)
	r.byID[p.id] = p
	return p
}

// Get returns the node with the given id.
func (r *NodeRegistry) Get(id int) (*Point, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// At returns the i-th node in insertion order.
func (r *NodeRegistry) At(i int) *Point {
	return r.points[i]
}

// Len returns the number of nodes.
func (r *NodeRegistry) Len() int {
	return len(r.points)
}

// All returns the nodes in insertion order.
func (r *NodeRegistry) All() []*Point {
	return append([]*Point(nil), r.points...)
}

// Distance returns the distance between two nodes.
func (r *NodeRegistry) Distance(a, b int) (float64, error) {
	pa, ok := r.byID[a]
	if !ok {
		return 0, fmt.Errorf("unknown node %d", a)
	}
	pb, ok := r.byID[b]
	if !ok {
		return 0, fmt.Errorf("unknown node %d", b)
	}
	return pa.position.Distance(pb.position), nil
}

// TourLength returns the length of the closed tour visiting the given nodes
// in order and returning to the first one.
func (r *NodeRegistry) TourLength(tour []int) (float64, error) {
	if len(tour) == 0 {
		return 0, nil
	}
	total := 0.0
	for i := 1; i < len(tour); i++ {
		d, err := r.Distance(tour[i-1], tour[i])
		if err != nil {
			return 0, err
		}
		total += d
	}
	closing, err := r.Distance(tour[len(tour)-1], tour[0])
	if err != nil {
		return 0, err
	}
	return total + closing, nil
}

// Clear removes every node and restarts the id counter.
func (r *NodeRegistry) Clear() {
	r.points = nil
	r.byID = make(map[int]*Point)
	r.nextID = 0
}
