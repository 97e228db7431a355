package fiber

import "errors"

// #region errors
var (
	// ErrUnknownFiberClass is returned for a fiber class outside the
	// fixed enumerated set. Never silently defaulted.
	ErrUnknownFiberClass = errors.New("fiber: unknown fiber class")

	// ErrNonPositiveDistance is returned when a sample's conduction
	// distance is zero or negative.
	ErrNonPositiveDistance = errors.New("fiber: source distance must be greater than zero")
)
// #endregion errors

// #region fiber-class
// FiberClass enumerates the afferent fiber classes the simulation models.
type FiberClass string

const (
	FiberAbeta  FiberClass = "A_beta" // low-threshold mechanoreceptors
	FiberIaII   FiberClass = "Ia_II"  // muscle spindle afferents
	FiberIb     FiberClass = "Ib"     // Golgi tendon organ afferents
	FiberAdelta FiberClass = "A_delta" // fast, sharp pain
	FiberC      FiberClass = "C"       // slow, dull pain
)
// #endregion fiber-class

// #region stimulus-type
// StimulusType enumerates the sensory modalities routed by the dorsal horn.
type StimulusType string

const (
	StimulusTouch   StimulusType = "touch"
	StimulusPain    StimulusType = "pain"
	StimulusProprio StimulusType = "proprioceptive"
	StimulusTension StimulusType = "tension"
)
// #endregion stimulus-type

// #region sample
// SensorySample is one afferent stimulus. Immutable once created.
type SensorySample struct {
	Class            FiberClass
	Stimulus         StimulusType
	Intensity        float64 // [0, inf)
	SourceDistanceCM float64 // > 0
}
// #endregion sample

// #region profile
// Profile holds the static per-class conduction constants. Read-only
// after construction.
type Profile struct {
	VelocityMPerS float64 // conduction velocity in m/s
	DefaultGain   float64 // multiplier applied to intensity at integration
}

// Profiles returns the fiber profile table. Velocities follow typical
// neurophysiology ranges: fast myelinated fibers around 15 m/s and up,
// unmyelinated C fibers around 1 m/s.
func Profiles() map[FiberClass]Profile {
	return map[FiberClass]Profile{
		FiberAbeta:  {VelocityMPerS: 50.0, DefaultGain: 1.4},
		FiberIaII:   {VelocityMPerS: 72.0, DefaultGain: 1.2},
		FiberIb:     {VelocityMPerS: 70.0, DefaultGain: 1.0},
		FiberAdelta: {VelocityMPerS: 15.0, DefaultGain: 1.1},
		FiberC:      {VelocityMPerS: 1.0, DefaultGain: 0.9},
	}
}
// #endregion profile

// #region model-config
// ModelConfig tunes afferent conduction.
type ModelConfig struct {
	JitterMS float64 // Gaussian jitter stddev on arrival time; 0 disables
	Seed     int64   // RNG seed for jitter; reproducible by construction
}

// DefaultModelConfig returns jitter-free conduction.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{JitterMS: 0, Seed: 1}
}
// #endregion model-config
