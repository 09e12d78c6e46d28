package common

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// RandomSource yields uniform draws in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Vector represents a point in the 2D plane.
type Vector [2]float64

// NewVector creates a vector from its coordinates.
func NewVector(x, y float64) Vector {
	return Vector{x, y}
}

// NewRandomVector creates a vector with random coordinates within given bounds.
// bounds should have 4 elements: [minX, maxX, minY, maxY]
func NewRandomVector(rng RandomSource, bounds []float64) (Vector, error) {
	if len(bounds) != 4 {
		return Vector{}, fmt.Errorf("bounds length must be 4, got %d", len(bounds))
	}
	var v Vector
	for i := range v {
		min := bounds[i*2]
		max := bounds[i*2+1]
		v[i] = min + rng.Float64()*(max-min) // Generate random float between min and max
	}
	return v, nil
}

// X returns the horizontal coordinate.
func (v Vector) X() float64 { return v[0] }

// Y returns the vertical coordinate.
func (v Vector) Y() float64 { return v[1] }

// Distance calculates the Euclidean distance between two vectors.
func (v Vector) Distance(other Vector) float64 {
	return floats.Distance(v[:], other[:], 2)
}

// Add adds another vector to this vector.
func (v Vector) Add(other Vector) Vector {
	return Vector{v[0] + other[0], v[1] + other[1]}
}

// Subtract subtracts another vector from this vector.
func (v Vector) Subtract(other Vector) Vector {
	return Vector{v[0] - other[0], v[1] - other[1]}
}

// MultiplyByScalar multiplies the vector by a scalar value.
func (v Vector) MultiplyByScalar(scalar float64) Vector {
	return Vector{v[0] * scalar, v[1] * scalar}
}

// String returns a string representation of the vector.
func (v Vector) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", v[0], v[1])
}
