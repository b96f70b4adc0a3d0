// Package dynamics bundles a feed-forward compressor node for
// github.com/cwbudde/algo-dsp-graph/dsp/graph. Level detection runs a
// one-pole peak envelope follower; gain computation works in the log2
// domain with a soft knee. Build with -tags fastmath to route the
// per-sample transcendentals through algo-approx instead of the standard
// library.
package dynamics

import (
	"fmt"
	"math"
)

const (
	minRatio     = 1.0
	maxRatio     = 100.0
	minAttackMs  = 0.1
	maxAttackMs  = 1000.0
	minReleaseMs = 1.0
	maxReleaseMs = 5000.0
	maxKneeDB    = 24.0

	// dbToLog2 converts decibels to log2 units: log2(10) / 20.
	dbToLog2 = 0.16609640474436813
)

// Option mutates construction-time parameters.
type Option func(*config) error

type config struct {
	thresholdDB float64
	ratio       float64
	kneeDB      float64
	attackMs    float64
	releaseMs   float64
	makeupDB    float64
	dry, wet    float64
}

func defaultConfig() config {
	return config{
		thresholdDB: -18,
		ratio:       4,
		kneeDB:      6,
		attackMs:    10,
		releaseMs:   100,
		dry:         0,
		wet:         1,
	}
}

// WithThresholdDB sets the threshold level. With a hard knee, gain
// reduction starts above it; with a soft knee, it starts half the knee
// width below it.
func WithThresholdDB(db float64) Option {
	return func(cfg *config) error {
		if math.IsNaN(db) || math.IsInf(db, 0) {
			return fmt.Errorf("dynamics: threshold must be finite: %f", db)
		}

		cfg.thresholdDB = db

		return nil
	}
}

// WithRatio sets the compression ratio, in [1, 100].
func WithRatio(ratio float64) Option {
	return func(cfg *config) error {
		if ratio < minRatio || ratio > maxRatio || math.IsNaN(ratio) {
			return fmt.Errorf("dynamics: ratio must be in [%g, %g]: %f", minRatio, maxRatio, ratio)
		}

		cfg.ratio = ratio

		return nil
	}
}

// WithKneeDB sets the soft-knee width in dB, in [0, 24]. Zero is a hard
// knee.
func WithKneeDB(db float64) Option {
	return func(cfg *config) error {
		if db < 0 || db > maxKneeDB || math.IsNaN(db) {
			return fmt.Errorf("dynamics: knee must be in [0, %g] dB: %f", maxKneeDB, db)
		}

		cfg.kneeDB = db

		return nil
	}
}

// WithAttackMs sets the envelope attack time in milliseconds.
func WithAttackMs(ms float64) Option {
	return func(cfg *config) error {
		if ms < minAttackMs || ms > maxAttackMs || math.IsNaN(ms) {
			return fmt.Errorf("dynamics: attack must be in [%g, %g] ms: %f", minAttackMs, maxAttackMs, ms)
		}

		cfg.attackMs = ms

		return nil
	}
}

// WithReleaseMs sets the envelope release time in milliseconds.
func WithReleaseMs(ms float64) Option {
	return func(cfg *config) error {
		if ms < minReleaseMs || ms > maxReleaseMs || math.IsNaN(ms) {
			return fmt.Errorf("dynamics: release must be in [%g, %g] ms: %f", minReleaseMs, maxReleaseMs, ms)
		}

		cfg.releaseMs = ms

		return nil
	}
}

// WithMakeupDB sets a fixed output gain applied after compression.
func WithMakeupDB(db float64) Option {
	return func(cfg *config) error {
		if math.IsNaN(db) || math.IsInf(db, 0) {
			return fmt.Errorf("dynamics: makeup gain must be finite: %f", db)
		}

		cfg.makeupDB = db

		return nil
	}
}

// WithMix sets the node-level dry/wet blend the host graph applies:
// wet = mix, dry = 1 - mix. A mix below 1 gives parallel compression.
func WithMix(mix float64) Option {
	return func(cfg *config) error {
		if mix < 0 || mix > 1 || math.IsNaN(mix) {
			return fmt.Errorf("dynamics: mix must be in [0, 1]: %f", mix)
		}

		cfg.dry = 1 - mix
		cfg.wet = mix

		return nil
	}
}

// Compressor is a mono feed-forward compressor node.
type Compressor struct {
	cfg config

	// Derived values, valid for sampleHz; recomputed lazily when Render
	// sees a different rate.
	sampleHz     float64
	attackCoeff  float64
	releaseCoeff float64

	thresholdLog2 float64
	kneeLog2      float64
	invKneeLog2   float64
	slope         float64
	makeupLin     float64

	envelope float64
	lastGain float64
}

// New creates a Compressor with practical defaults and optional
// overrides.
func New(opts ...Option) (*Compressor, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	c := &Compressor{cfg: cfg, lastGain: 1}
	c.recalculate()

	return c, nil
}

func (c *Compressor) recalculate() {
	c.thresholdLog2 = c.cfg.thresholdDB * dbToLog2
	c.kneeLog2 = c.cfg.kneeDB * dbToLog2

	c.invKneeLog2 = 0
	if c.cfg.kneeDB > 0 {
		c.invKneeLog2 = 1 / c.kneeLog2
	}

	c.slope = 1 - 1/c.cfg.ratio
	c.makeupLin = pow10(c.cfg.makeupDB / 20)
}

func (c *Compressor) retune(sampleHz float64) {
	c.sampleHz = sampleHz
	c.attackCoeff = 1 - math.Exp(-math.Ln2/(c.cfg.attackMs*0.001*sampleHz))
	c.releaseCoeff = math.Exp(-math.Ln2 / (c.cfg.releaseMs * 0.001 * sampleHz))
}

// Render compresses buf in place.
func (c *Compressor) Render(buf []float64, sampleHz float64) {
	if sampleHz != c.sampleHz {
		c.retune(sampleHz)
	}

	for i, x := range buf {
		level := math.Abs(x)
		if level > c.envelope {
			c.envelope += (level - c.envelope) * c.attackCoeff
		} else {
			c.envelope = level + (c.envelope-level)*c.releaseCoeff
		}

		gain := c.gainFor(c.envelope)
		c.lastGain = gain
		buf[i] = x * gain * c.makeupLin
	}
}

// gainFor maps a detected level to a gain factor. All comparisons happen
// in the log2 domain so the knee is symmetric in dB.
func (c *Compressor) gainFor(level float64) float64 {
	if level <= 0 {
		return 1
	}

	over := log2(level) - c.thresholdLog2

	if c.kneeLog2 <= 0 {
		if over <= 0 {
			return 1
		}

		return pow2(-over * c.slope)
	}

	half := c.kneeLog2 * 0.5
	switch {
	case over <= -half:
		return 1
	case over >= half:
		return pow2(-over * c.slope)
	default:
		// Quadratic interpolation through the knee region.
		t := over + half
		return pow2(-t * t * 0.5 * c.invKneeLog2 * c.slope)
	}
}

// Dry returns the configured dry coefficient.
func (c *Compressor) Dry() float64 { return c.cfg.dry }

// Wet returns the configured wet coefficient.
func (c *Compressor) Wet() float64 { return c.cfg.wet }

// GainReductionDB reports the gain applied to the most recent sample, in
// dB (zero or negative).
func (c *Compressor) GainReductionDB() float64 {
	if c.lastGain <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(c.lastGain)
}

// Reset clears the envelope follower.
func (c *Compressor) Reset() {
	c.envelope = 0
	c.lastGain = 1
}
