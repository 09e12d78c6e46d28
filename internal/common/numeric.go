package common

import "math"

// Clamp limits n to the closed range [min, max].
func Clamp(n, min, max float64) float64 {
	return math.Max(min, math.Min(n, max))
}

// Normalize maps n from the range [min, max] onto [0, 1].
// Values outside the range are not clamped.
func Normalize(n, max, min float64) float64 {
	return (n - min) / (max - min)
}

// Finite maps a non-finite value onto the float range:
// NaN becomes 0 and infinities become the largest finite value of the same sign.
func Finite(n float64) float64 {
	switch {
	case math.IsNaN(n):
		return 0
	case math.IsInf(n, 1):
		return math.MaxFloat64
	case math.IsInf(n, -1):
		return -math.MaxFloat64
	}
	return n
}
