package arc

import "github.com/danielpatrickdp/reflex-sim/internal/dorsal"

// #region override
// OverrideDecision is a supraspinal verdict on a pending directive.
type OverrideDecision string

const (
	Allow    OverrideDecision = "allow"
	Suppress OverrideDecision = "suppress"
)

// Override is the descending-control hook consulted before dispatch.
// A nil override fails open: every directive is allowed.
type Override interface {
	Evaluate(directive dorsal.ReflexDirective) OverrideDecision
}

// OverrideFunc adapts a plain function to the Override interface.
type OverrideFunc func(directive dorsal.ReflexDirective) OverrideDecision

func (f OverrideFunc) Evaluate(d dorsal.ReflexDirective) OverrideDecision { return f(d) }
// #endregion override

// #region config
// Config tunes the orchestrator itself; stage tuning lives with each
// stage's own config.
type Config struct {
	// CooldownMS is the minimum gap between two dispatches of the same
	// reflex kind. A directive arriving inside the window is still
	// evaluated, audited, and forwarded upward, but fires no motor
	// units. 0 disables the cooldown.
	CooldownMS int64
}

// DefaultConfig returns the standard orchestrator tuning.
func DefaultConfig() Config {
	return Config{CooldownMS: 50}
}
// #endregion config
