//go:build !fastmath

package dynamics

import "math"

func log2(x float64) float64 {
	return math.Log2(x)
}

func pow2(x float64) float64 {
	return math.Pow(2, x)
}

func pow10(x float64) float64 {
	return math.Pow(10, x)
}
