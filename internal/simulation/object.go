package simulation

import "antcolony-sim/internal/common"

// SimulationObject defines the interface for any object placed in the plane.
type SimulationObject interface {
	// GetPosition returns the current position of the object.
	GetPosition() common.Vector
	// GetID returns the identifier of the object, unique among objects of its kind.
	GetID() int
}
