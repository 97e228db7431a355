// Package integrate implements the threshold integrator: a leaky
// integrate-and-fire analog with two states, Resting and Refractory.
// Stimulus accumulates into a membrane-potential analog; crossing the
// threshold fires, resets to baseline, and opens a fixed refractory
// window during which no accumulation occurs.
package integrate

import "math"

// #region config
// Config tunes one integrator instance.
type Config struct {
	Threshold    float64 // firing threshold on the membrane-potential analog
	Gain         float64 // multiplier applied to incoming stimulus strength
	Baseline     float64 // potential after reset
	RefractoryMS int64   // firing lockout window
	DecayTauMS   float64 // idle decay time constant toward baseline; 0 disables
}

// DefaultConfig returns a general-purpose integrator tuning.
func DefaultConfig() Config {
	return Config{
		Threshold:    1.0,
		Gain:         1.0,
		Baseline:     0.0,
		RefractoryMS: 30,
		DecayTauMS:   200,
	}
}
// #endregion config

// #region state
// State is the integrator's lifecycle phase.
type State int

const (
	Resting State = iota
	Refractory
)

func (s State) String() string {
	if s == Refractory {
		return "refractory"
	}
	return "resting"
}
// #endregion state

// #region integrator
// Integrator accumulates stimulus into a membrane-potential analog.
// Each instance is exclusively owned by one dorsal horn sub-channel
// and must only be mutated through Activate.
type Integrator struct {
	config          Config
	potential       float64
	refractoryUntil int64
	lastActive      int64
	touched         bool
}

// New creates an integrator at baseline.
func New(config Config) *Integrator {
	return &Integrator{config: config, potential: config.Baseline}
}

// Potential returns the current membrane-potential analog.
func (n *Integrator) Potential() float64 { return n.potential }

// StateAt reports the integrator state at the given time.
func (n *Integrator) StateAt(now int64) State {
	if now < n.refractoryUntil {
		return Refractory
	}
	return Resting
}

// Reset returns the integrator to baseline and clears the refractory window.
func (n *Integrator) Reset() {
	n.potential = n.config.Baseline
	n.refractoryUntil = 0
	n.touched = false
}
// #endregion integrator

// #region activate
// Activate accumulates strength*gain at time now and reports whether the
// integrator fired. During the refractory window no accumulation occurs
// and the result is always false, regardless of stimulus magnitude.
//
// Before accumulating, the potential decays exponentially toward
// baseline over the idle interval since the previous activation, with
// time constant DecayTauMS, so charge does not persist across
// arbitrarily separated stimuli.
func (n *Integrator) Activate(now int64, strength float64) bool {
	if now < n.refractoryUntil {
		return false
	}

	if n.config.DecayTauMS > 0 && n.touched && now > n.lastActive {
		idle := float64(now - n.lastActive)
		n.potential = n.config.Baseline +
			(n.potential-n.config.Baseline)*math.Exp(-idle/n.config.DecayTauMS)
	}
	n.lastActive = now
	n.touched = true

	n.potential += strength * n.config.Gain
	if n.potential >= n.config.Threshold {
		n.potential = n.config.Baseline
		n.refractoryUntil = now + n.config.RefractoryMS
		return true
	}
	return false
}
// #endregion activate
