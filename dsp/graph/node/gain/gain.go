// Package gain bundles a stateless amplitude-scaling node for
// github.com/cwbudde/algo-dsp-graph/dsp/graph.
package gain

import (
	"fmt"
	"math"
)

const (
	minDB = -96.0
	maxDB = 24.0
)

// Option mutates construction-time parameters.
type Option func(*config) error

type config struct {
	gainDB   float64
	dry, wet float64
}

func defaultConfig() config {
	return config{gainDB: 0, dry: 0, wet: 1}
}

// WithGainDB sets the applied gain in decibels. Values outside [-96, 24]
// are rejected with an error.
func WithGainDB(db float64) Option {
	return func(cfg *config) error {
		if db < minDB || db > maxDB || math.IsNaN(db) || math.IsInf(db, 0) {
			return fmt.Errorf("gain: gain must be in [%g, %g] dB: %f", minDB, maxDB, db)
		}

		cfg.gainDB = db

		return nil
	}
}

// WithMix sets the dry/wet mix: wet = mix, dry = 1 - mix.
func WithMix(mix float64) Option {
	return func(cfg *config) error {
		if mix < 0 || mix > 1 || math.IsNaN(mix) {
			return fmt.Errorf("gain: mix must be in [0, 1]: %f", mix)
		}

		cfg.dry = 1 - mix
		cfg.wet = mix

		return nil
	}
}

// Gain is a stateless amplitude-scaling Node. It implements DryWetter, so a
// host that wires it with a non-default mix blends scaled and unscaled
// signal; the default mix is fully wet.
type Gain struct {
	factor   float64
	dry, wet float64
}

// New creates a Gain node with practical defaults and optional overrides.
func New(opts ...Option) (*Gain, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Gain{
		factor: dbToLinear(cfg.gainDB),
		dry:    cfg.dry,
		wet:    cfg.wet,
	}, nil
}

func dbToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// Render scales buf in place by the configured linear gain factor.
func (g *Gain) Render(buf []float64, _ float64) {
	for i := range buf {
		buf[i] *= g.factor
	}
}

// Dry returns the configured dry coefficient.
func (g *Gain) Dry() float64 { return g.dry }

// Wet returns the configured wet coefficient.
func (g *Gain) Wet() float64 { return g.wet }

// SetGainDB updates the linear gain factor in place.
func (g *Gain) SetGainDB(db float64) error {
	if db < minDB || db > maxDB || math.IsNaN(db) || math.IsInf(db, 0) {
		return fmt.Errorf("gain: gain must be in [%g, %g] dB: %f", minDB, maxDB, db)
	}

	g.factor = dbToLinear(db)

	return nil
}
