// Package dorsal routes incoming sensory samples to the integrator for
// their modality and emits a symbolic reflex directive when threshold
// is crossed. Pain routes through the nociceptive specializer; touch,
// proprioception, and tension each own a dedicated integrator.
package dorsal

import (
	"fmt"

	"github.com/danielpatrickdp/reflex-sim/internal/fiber"
	"github.com/danielpatrickdp/reflex-sim/internal/integrate"
	"github.com/danielpatrickdp/reflex-sim/internal/noci"
)

// #region horn
// Horn is the dorsal-horn integration stage. Each sub-channel's state
// is exclusively owned here and mutated only through ProcessInput.
type Horn struct {
	model   *fiber.Model
	touch   *integrate.Integrator
	proprio *integrate.Integrator
	tension *integrate.Integrator
	pain    *noci.Channel
	config  Config
}

// NewHorn builds a dorsal horn over the given conduction model.
func NewHorn(model *fiber.Model, config Config) *Horn {
	return &Horn{
		model:   model,
		touch:   integrate.New(config.Touch),
		proprio: integrate.New(config.Proprio),
		tension: integrate.New(config.Tension),
		pain:    noci.NewChannel(config.Noci),
		config:  config,
	}
}
// #endregion horn

// #region process-input
// ProcessInput evaluates one sensory sample at time now. It returns a
// directive when the routed integrator fires, nil when it stays
// sub-threshold, and an error for malformed input (no reflex fires on
// error).
func (h *Horn) ProcessInput(now int64, sample fiber.SensorySample) (*ReflexDirective, error) {
	profile, err := h.model.Profile(sample.Class)
	if err != nil {
		return nil, err
	}
	strength := sample.Intensity * profile.DefaultGain

	switch sample.Stimulus {
	case fiber.StimulusPain:
		return h.processPain(now, sample, strength)
	case fiber.StimulusTouch:
		if h.touch.Activate(now, strength) {
			return h.directive(ReflexLightContact, SeverityLow, sample), nil
		}
		return nil, nil
	case fiber.StimulusProprio:
		if h.proprio.Activate(now, strength) {
			return h.directive(ReflexCrossedExtend, SeverityLow, sample), nil
		}
		return nil, nil
	case fiber.StimulusTension:
		// Autogenic inhibition: the firing is audited but never
		// dispatched to a motor pool.
		if h.tension.Activate(now, strength) {
			return h.directive(ReflexNone, SeverityLow, sample), nil
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnroutableStimulus, sample.Stimulus)
	}
}

// processPain routes through the nociceptive channel, applying
// descending analgesia before integration.
func (h *Horn) processPain(now int64, sample fiber.SensorySample, strength float64) (*ReflexDirective, error) {
	if h.config.AnalgesiaLevel > 0 {
		strength /= 1.0 + h.config.AnalgesiaLevel
	}

	res, err := h.pain.Process(now, sample.Class, strength)
	if err != nil {
		return nil, fmt.Errorf("route pain sample: %w", err)
	}
	if !res.Fired {
		return nil, nil
	}

	severity := SeverityLow
	if sample.Intensity >= h.config.HighSeverityIntensity || res.WindUp {
		severity = SeverityHigh
	}
	d := h.directive(ReflexWithdraw, severity, sample)
	d.WindUp = res.WindUp
	return d, nil
}

func (h *Horn) directive(kind ReflexKind, severity Severity, sample fiber.SensorySample) *ReflexDirective {
	return &ReflexDirective{
		Kind:     kind,
		Severity: severity,
		Fiber:    sample.Class,
		Evidence: sample,
	}
}
// #endregion process-input
