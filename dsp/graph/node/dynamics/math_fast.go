//go:build fastmath

package dynamics

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

const ln2 = math.Ln2

// log2 and pow2 run once per sample inside Render, so under the fastmath
// tag they go through algo-approx's polynomial approximations.
func log2(x float64) float64 {
	return approx.FastLog(x) / ln2
}

func pow2(x float64) float64 {
	return approx.FastExp(x * ln2)
}

// pow10 runs only on construction (makeup gain), so exact math is fine.
func pow10(x float64) float64 {
	return math.Pow(10, x)
}
