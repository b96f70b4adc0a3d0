// Package spectralfreeze bundles an STFT spectral-freeze effect node for
// github.com/cwbudde/algo-dsp-graph/dsp/graph. While frozen, the node
// sustains the magnitude spectrum of the frame captured at freeze time,
// advancing each bin's phase by its center frequency so the held sound
// keeps moving instead of buzzing.
package spectralfreeze

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp-graph/dsp/window"
	algofft "github.com/cwbudde/algo-fft"
)

const (
	defaultFrameSize = 1024
	defaultHopSize   = 256
	minFrameSize     = 64
	normFloor        = 1e-12
)

// Option mutates construction-time parameters.
type Option func(*config) error

type config struct {
	frameSize  int
	hopSize    int
	windowType window.Type
	dry, wet   float64
}

func defaultConfig() config {
	return config{
		frameSize:  defaultFrameSize,
		hopSize:    defaultHopSize,
		windowType: window.Hann,
		dry:        0,
		wet:        1,
	}
}

// WithFrameSize sets the STFT analysis frame size in samples. The size
// must be a power of two and at least 64.
func WithFrameSize(size int) Option {
	return func(cfg *config) error {
		if size < minFrameSize || size&(size-1) != 0 {
			return fmt.Errorf("spectralfreeze: frame size must be a power of two >= %d: %d", minFrameSize, size)
		}

		cfg.frameSize = size
		if cfg.hopSize >= size {
			cfg.hopSize = size / 4
		}

		return nil
	}
}

// WithHopSize sets the STFT hop size in samples, in [1, frameSize).
func WithHopSize(hop int) Option {
	return func(cfg *config) error {
		if hop <= 0 || hop >= cfg.frameSize {
			return fmt.Errorf("spectralfreeze: hop size must be in [1, %d): %d", cfg.frameSize, hop)
		}

		cfg.hopSize = hop

		return nil
	}
}

// WithWindow selects the analysis/synthesis window function.
func WithWindow(t window.Type) Option {
	return func(cfg *config) error {
		cfg.windowType = t
		return nil
	}
}

// WithMix sets the node-level dry/wet blend applied by the host graph:
// wet = mix, dry = 1 - mix.
func WithMix(mix float64) Option {
	return func(cfg *config) error {
		if mix < 0 || mix > 1 || math.IsNaN(mix) {
			return fmt.Errorf("spectralfreeze: mix must be in [0, 1]: %f", mix)
		}

		cfg.dry = 1 - mix
		cfg.wet = mix

		return nil
	}
}

// Freeze is a streaming STFT effect node. Input samples accumulate into a
// sliding analysis frame; every hop the frame is windowed, transformed,
// optionally replaced by the held spectrum, transformed back, and
// overlap-added into the output stream. Latency() reports the fixed
// delay this pipeline imposes.
type Freeze struct {
	frameSize int
	hop       int
	dry, wet  float64

	plan  *algofft.Plan[complex128]
	win   []float64
	omega []float64

	frozen   bool
	captured bool
	heldMag  []float64
	phase    []float64

	// Streaming state. frame is the sliding window of the most recent
	// frameSize input samples; pending counts samples received since the
	// last hop. acc/norm accumulate overlap-added synthesis output, the
	// first hop samples of which are emitted and shifted out per hop.
	frame   []float64
	pending int

	scratch []float64
	spec    []complex128
	time    []complex128

	acc  []float64
	norm []float64

	out      []float64
	outRead  int
	outCount int
}

// New creates a Freeze node with practical defaults and optional
// overrides.
func New(opts ...Option) (*Freeze, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.hopSize >= cfg.frameSize {
		return nil, fmt.Errorf("spectralfreeze: hop size must be in [1, %d): %d", cfg.frameSize, cfg.hopSize)
	}

	plan, err := algofft.NewPlan64(cfg.frameSize)
	if err != nil {
		return nil, fmt.Errorf("spectralfreeze: FFT plan: %w", err)
	}

	bins := cfg.frameSize/2 + 1

	f := &Freeze{
		frameSize: cfg.frameSize,
		hop:       cfg.hopSize,
		dry:       cfg.dry,
		wet:       cfg.wet,
		plan:      plan,
		win:       window.Coefficients(cfg.windowType, cfg.frameSize, true),
		omega:     make([]float64, bins),
		heldMag:   make([]float64, bins),
		phase:     make([]float64, bins),
		frame:     make([]float64, cfg.frameSize),
		scratch:   make([]float64, cfg.frameSize),
		spec:      make([]complex128, cfg.frameSize),
		time:      make([]complex128, cfg.frameSize),
		acc:       make([]float64, cfg.frameSize),
		norm:      make([]float64, cfg.frameSize),
		out:       make([]float64, cfg.frameSize+cfg.hopSize),
	}

	for k := range f.omega {
		f.omega[k] = 2 * math.Pi * float64(k) / float64(cfg.frameSize)
	}

	return f, nil
}

// Render pushes buf through the STFT pipeline in place.
func (f *Freeze) Render(buf []float64, _ float64) {
	for i, x := range buf {
		buf[i] = f.pop()

		f.frame[f.frameSize-f.hop+f.pending] = x

		f.pending++
		if f.pending == f.hop {
			f.processHop()
			f.pending = 0
		}
	}
}

// Dry returns the configured dry coefficient.
func (f *Freeze) Dry() float64 { return f.dry }

// Wet returns the configured wet coefficient.
func (f *Freeze) Wet() float64 { return f.wet }

// Freeze captures the next analysis frame's spectrum and sustains it.
func (f *Freeze) Freeze() {
	if !f.frozen {
		f.captured = false
	}

	f.frozen = true
}

// Unfreeze resumes normal analysis/synthesis passthrough.
func (f *Freeze) Unfreeze() {
	f.frozen = false
	f.captured = false
}

// Frozen reports whether the node is currently sustaining a captured
// frame (or will capture one at the next hop).
func (f *Freeze) Frozen() bool { return f.frozen }

// Latency returns the pipeline delay in samples: output lags input by one
// full analysis frame.
func (f *Freeze) Latency() int { return f.frameSize }

// Reset clears all streaming state and drops the captured spectrum. The
// frozen flag is kept: a frozen node captures a new spectrum at the next
// hop.
func (f *Freeze) Reset() {
	f.captured = false
	f.pending = 0
	f.outRead = 0
	f.outCount = 0

	zero(f.frame)
	zero(f.acc)
	zero(f.norm)
	zero(f.phase)
}

// processHop runs one analysis/synthesis cycle over the current sliding
// frame and queues hop samples of overlap-added output.
func (f *Freeze) processHop() {
	copy(f.scratch, f.frame)
	window.Apply(f.scratch, f.win)

	for i, v := range f.scratch {
		f.spec[i] = complex(v, 0)
	}

	half := f.frameSize / 2

	ok := f.plan.Forward(f.spec, f.spec) == nil
	if ok && f.frozen {
		if !f.captured {
			for k := 0; k <= half; k++ {
				re, im := real(f.spec[k]), imag(f.spec[k])
				f.heldMag[k] = math.Hypot(re, im)
				f.phase[k] = math.Atan2(im, re)
			}

			f.captured = true
		} else {
			for k := 0; k <= half; k++ {
				f.phase[k] += f.omega[k] * float64(f.hop)
			}
		}

		for k := 0; k <= half; k++ {
			f.spec[k] = complex(f.heldMag[k]*math.Cos(f.phase[k]), f.heldMag[k]*math.Sin(f.phase[k]))
		}

		// Real synthesis output needs a Hermitian spectrum.
		f.spec[0] = complex(real(f.spec[0]), 0)
		f.spec[half] = complex(real(f.spec[half]), 0)

		for k := 1; k < half; k++ {
			f.spec[f.frameSize-k] = complex(real(f.spec[k]), -imag(f.spec[k]))
		}
	}

	if ok {
		ok = f.plan.Inverse(f.time, f.spec) == nil
	}

	for i := range f.frameSize {
		synth := 0.0
		if ok {
			synth = real(f.time[i])
		}

		w := f.win[i]
		f.acc[i] += synth * w
		f.norm[i] += w * w
	}

	for i := range f.hop {
		v := f.acc[i]
		if f.norm[i] > normFloor {
			v /= f.norm[i]
		}

		f.push(v)
	}

	copy(f.acc, f.acc[f.hop:])
	copy(f.norm, f.norm[f.hop:])
	zero(f.acc[f.frameSize-f.hop:])
	zero(f.norm[f.frameSize-f.hop:])

	copy(f.frame, f.frame[f.hop:])
}

func (f *Freeze) push(v float64) {
	if f.outCount == len(f.out) {
		return
	}

	f.out[(f.outRead+f.outCount)%len(f.out)] = v
	f.outCount++
}

func (f *Freeze) pop() float64 {
	if f.outCount == 0 {
		return 0
	}

	v := f.out[f.outRead]
	f.outRead = (f.outRead + 1) % len(f.out)
	f.outCount--

	return v
}

func zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}
