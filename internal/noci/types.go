package noci

import (
	"errors"

	"github.com/danielpatrickdp/reflex-sim/internal/integrate"
)

// #region errors
// ErrNotPainFiber is returned when a non-pain fiber class reaches the
// nociceptive channel; routing is the dorsal horn's responsibility.
var ErrNotPainFiber = errors.New("noci: fiber class is not a pain fiber")
// #endregion errors

// #region config
// Config tunes the paired pain channels and the wind-up tracker.
type Config struct {
	Fast integrate.Config // A-delta channel, tuned for immediate firing
	Slow integrate.Config // C channel

	WindowMS       int64 // wind-up observation window
	CountThreshold int   // C arrivals within window that trigger wind-up
	Capacity       int   // fixed ring capacity for event timestamps
}

// DefaultConfig returns the standard nociceptive tuning: a hair-trigger
// fast channel and a slow channel whose threshold only repeated or
// intense input can cross.
func DefaultConfig() Config {
	return Config{
		Fast: integrate.Config{
			Threshold:    0.8,
			Gain:         1.1,
			RefractoryMS: 20,
			DecayTauMS:   200,
		},
		Slow: integrate.Config{
			Threshold:    1.6,
			Gain:         0.9,
			RefractoryMS: 60,
			DecayTauMS:   200,
		},
		WindowMS:       1500,
		CountThreshold: 5,
		Capacity:       32,
	}
}
// #endregion config

// #region result
// Result reports one pain arrival's outcome.
type Result struct {
	Fired    bool // the selected channel fired (or wind-up forced it)
	FastPath bool // routed through the A-delta channel
	WindUp   bool // wind-up sensitization was active for this arrival
}
// #endregion result
