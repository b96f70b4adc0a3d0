package graph

import "github.com/cwbudde/algo-vecmath"

// Sample is the numeric domain a Graph operates over. float64 is the
// specialization backed by algo-vecmath's block kernels; other
// instantiations fall back to a plain Go loop.
type Sample interface {
	~float32 | ~float64
}

// Equilibrium writes the silence value (channel-wise zero) into buf.
func Equilibrium[S Sample](buf []S) {
	for i := range buf {
		buf[i] = 0
	}
}

// AddFrame performs dst[i] += src[i] for every sample in a signed domain,
// avoiding the wraparound a fixed-point accumulator would suffer.
func AddFrame[S Sample](dst, src []S) {
	if f64Dst, f64Src, ok := asFloat64Pair(dst, src); ok {
		vecmath.AddBlockInPlace(f64Dst, f64Src)
		return
	}

	for i := range dst {
		dst[i] += src[i]
	}
}

// MulAmp scales src by amp and writes the result into dst. dst and src may
// alias the same backing array.
func MulAmp[S Sample](dst, src []S, amp float64) {
	if f64Dst, f64Src, ok := asFloat64Pair(dst, src); ok {
		vecmath.ScaleBlock(f64Dst, f64Src, amp)
		return
	}

	for i := range src {
		dst[i] = S(float64(src[i]) * amp)
	}
}

// asFloat64Pair reinterprets dst/src as []float64 when S is float64,
// letting callers hit the vecmath fast path without a copy.
func asFloat64Pair[S Sample](dst, src []S) ([]float64, []float64, bool) {
	d, ok := any(dst).([]float64)
	if !ok {
		return nil, nil, false
	}

	s, ok := any(src).([]float64)
	if !ok {
		return nil, nil, false
	}

	return d, s, true
}
