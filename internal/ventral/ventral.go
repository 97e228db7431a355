// Package ventral holds the motor effector stage: named motor pools,
// reflex-to-dispatch conversion, reciprocal inhibition of antagonist
// pools, and Renshaw (recurrent) damping of same-tick re-fires.
package ventral

import "github.com/danielpatrickdp/reflex-sim/internal/dorsal"

// #region horn
// Horn converts reflex directives into motor dispatch records. The pool
// registry is initialized once and never reallocated.
type Horn struct {
	config    Config
	lastFired map[string]int64 // pool name -> last dispatch tick
	everFired map[string]bool
}

// NewHorn builds a ventral horn over the given pool registry.
func NewHorn(config Config) *Horn {
	return &Horn{
		config:    config,
		lastFired: make(map[string]int64, len(config.Pools)),
		everFired: make(map[string]bool, len(config.Pools)),
	}
}
// #endregion horn

// #region trigger-action
// TriggerAction converts kind into a motor dispatch at tick time now.
//
// An unregistered kind is not an error: the dispatch comes back with an
// empty unit list, action none, and PoolRegistered false so the audit
// record can tell wiring gaps from genuinely empty reflexes. Withdraw
// and crossed-extend dispatches record their antagonist pool as
// suppressed (reciprocal inhibition); a pool that already fired at this
// tick is damped and fires no units (Renshaw inhibition).
func (h *Horn) TriggerAction(now int64, kind dorsal.ReflexKind) MotorDispatch {
	pool, ok := h.config.Pools[kind]
	if !ok {
		return MotorDispatch{
			Action:   dorsal.ReflexNone,
			TickTime: now,
		}
	}

	dispatch := MotorDispatch{
		Action:         kind,
		Pool:           pool.Name,
		TickTime:       now,
		PoolRegistered: true,
	}

	if h.everFired[pool.Name] && h.lastFired[pool.Name] == now {
		dispatch.RenshawBlocked = true
		return dispatch
	}

	dispatch.UnitsFired = make([]string, len(pool.Units))
	copy(dispatch.UnitsFired, pool.Units)
	h.lastFired[pool.Name] = now
	h.everFired[pool.Name] = true

	if kind == dorsal.ReflexWithdraw || kind == dorsal.ReflexCrossedExtend {
		dispatch.SuppressedPool = h.config.Antagonists[pool.Name]
	}
	return dispatch
}
// #endregion trigger-action

// #region registry-access
// Pool returns the registered pool for kind, if any.
func (h *Horn) Pool(kind dorsal.ReflexKind) (MotorPool, bool) {
	p, ok := h.config.Pools[kind]
	return p, ok
}
// #endregion registry-access
