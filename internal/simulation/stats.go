package simulation

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarizes the tours completed in one generation.
type GenerationStats struct {
	Generation int     `json:"generation"` // Generation number, starting at 1
	Tours      int     `json:"tours"`      // Number of tours evaluated
	Mean       float64 `json:"mean"`       // Mean tour length
	StdDev     float64 `json:"stddev"`     // Sample standard deviation, 0 with fewer than two tours
	Min        float64 `json:"min"`        // Shortest tour of the generation
	Max        float64 `json:"max"`        // Longest tour of the generation
	Best       float64 `json:"best"`       // Best-known tour length after the generation, 0 if none
}

func summarizeTours(generation int, lengths []float64, best *Tour) GenerationStats {
	s := GenerationStats{Generation: generation, Tours: len(lengths)}
	if best != nil {
		s.Best = best.Length
	}
	if len(lengths) == 0 {
		return s
	}
	s.Mean = stat.Mean(lengths, nil)
	if len(lengths) > 1 {
		s.StdDev = stat.StdDev(lengths, nil)
	}
	s.Min = floats.Min(lengths)
	s.Max = floats.Max(lengths)
	return s
}
