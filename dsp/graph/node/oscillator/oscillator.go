// Package oscillator bundles a phase-accumulating sine generator Node for
// github.com/cwbudde/algo-dsp-graph/dsp/graph.
package oscillator

import (
	"fmt"
	"math"
)

const (
	defaultFrequencyHz = 440.0
	defaultAmplitude   = 1.0
	twoPi              = 2 * math.Pi
)

// Option mutates construction-time parameters.
type Option func(*config) error

type config struct {
	frequencyHz float64
	amplitude   float64
}

func defaultConfig() config {
	return config{frequencyHz: defaultFrequencyHz, amplitude: defaultAmplitude}
}

// WithFrequencyHz sets the oscillator frequency in Hz.
func WithFrequencyHz(hz float64) Option {
	return func(cfg *config) error {
		if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return fmt.Errorf("oscillator: frequency must be > 0 and finite: %f", hz)
		}

		cfg.frequencyHz = hz

		return nil
	}
}

// WithAmplitude sets the peak output amplitude.
func WithAmplitude(amplitude float64) Option {
	return func(cfg *config) error {
		if amplitude < 0 || math.IsNaN(amplitude) || math.IsInf(amplitude, 0) {
			return fmt.Errorf("oscillator: amplitude must be >= 0 and finite: %f", amplitude)
		}

		cfg.amplitude = amplitude

		return nil
	}
}

// Oscillator is a source Node: it ignores the sum of its inputs (if any are
// connected at all; typically none are) and writes a sine wave of its own
// into buf, advancing an internal phase accumulator sample by sample.
type Oscillator struct {
	frequencyHz float64
	amplitude   float64

	phase        float64
	phaseInc     float64
	lastHz       float64
	lastSampleHz float64
}

// New creates an Oscillator with practical defaults and optional overrides.
func New(opts ...Option) (*Oscillator, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Oscillator{
		frequencyHz: cfg.frequencyHz,
		amplitude:   cfg.amplitude,
	}, nil
}

// Render overwrites buf with amplitude * sin(phase), advancing phase by
// 2π*frequencyHz/sampleHz per sample and wrapping into [0, 2π).
func (o *Oscillator) Render(buf []float64, sampleHz float64) {
	if o.frequencyHz != o.lastHz || sampleHz != o.lastSampleHz {
		o.lastHz = o.frequencyHz
		o.lastSampleHz = sampleHz
		o.phaseInc = twoPi * o.frequencyHz / sampleHz
	}

	for i := range buf {
		buf[i] = o.amplitude * math.Sin(o.phase)

		o.phase += o.phaseInc
		if o.phase >= twoPi {
			o.phase -= twoPi
		}
	}
}

// SetFrequencyHz updates the oscillator frequency in place.
func (o *Oscillator) SetFrequencyHz(hz float64) error {
	if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
		return fmt.Errorf("oscillator: frequency must be > 0 and finite: %f", hz)
	}

	o.frequencyHz = hz

	return nil
}

// Reset clears the phase accumulator.
func (o *Oscillator) Reset() {
	o.phase = 0
}
