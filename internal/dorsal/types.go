package dorsal

import (
	"errors"

	"github.com/danielpatrickdp/reflex-sim/internal/fiber"
	"github.com/danielpatrickdp/reflex-sim/internal/integrate"
	"github.com/danielpatrickdp/reflex-sim/internal/noci"
)

// #region errors
// ErrUnroutableStimulus is returned for stimulus types outside the
// fixed set. Never coerced to a default reflex.
var ErrUnroutableStimulus = errors.New("dorsal: unroutable stimulus type")
// #endregion errors

// #region reflex-kind
// ReflexKind is the symbolic decision produced by integration.
type ReflexKind string

const (
	ReflexWithdraw     ReflexKind = "withdraw"
	ReflexLightContact ReflexKind = "light_contact"
	ReflexCrossedExtend ReflexKind = "crossed_extend"
	ReflexNone         ReflexKind = "none"
)
// #endregion reflex-kind

// #region severity
// Severity grades a directive.
type Severity string

const (
	SeverityLow  Severity = "low"
	SeverityHigh Severity = "high"
)
// #endregion severity

// #region directive
// ReflexDirective is the immutable outcome of one dorsal horn
// evaluation that crossed threshold.
type ReflexDirective struct {
	Kind     ReflexKind
	Severity Severity
	Fiber    fiber.FiberClass
	Evidence fiber.SensorySample
	WindUp   bool // severity escalated by wind-up sensitization
}
// #endregion directive

// #region config
// Config tunes the dorsal horn's per-modality integrators and its
// modulation.
type Config struct {
	Touch   integrate.Config
	Proprio integrate.Config
	Tension integrate.Config
	Noci    noci.Config

	// AnalgesiaLevel scales pain input down before integration,
	// modeling descending inhibitory drive. 0 means none.
	AnalgesiaLevel float64

	// HighSeverityIntensity is the raw pain intensity at or above
	// which a directive is graded high without wind-up.
	HighSeverityIntensity float64
}

// DefaultConfig returns the standard dorsal horn tuning.
func DefaultConfig() Config {
	return Config{
		Touch: integrate.Config{
			Threshold:    1.0,
			Gain:         1.0,
			RefractoryMS: 30,
			DecayTauMS:   200,
		},
		Proprio: integrate.Config{
			Threshold:    1.2,
			Gain:         1.0,
			RefractoryMS: 25,
			DecayTauMS:   200,
		},
		Tension: integrate.Config{
			Threshold:    1.4,
			Gain:         1.0,
			RefractoryMS: 40,
			DecayTauMS:   200,
		},
		Noci:                  noci.DefaultConfig(),
		AnalgesiaLevel:        0,
		HighSeverityIntensity: 2.0,
	}
}
// #endregion config
