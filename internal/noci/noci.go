// Package noci specializes pain processing: a fast (A-delta) and a slow
// (C) integrator pair, plus wind-up sensitization that escalates
// severity when sub-threshold slow-pain input repeats within a short
// window.
package noci

import (
	"fmt"

	"github.com/danielpatrickdp/reflex-sim/internal/fiber"
	"github.com/danielpatrickdp/reflex-sim/internal/integrate"
)

// #region windup-tracker
// WindUpTracker keeps C-fiber arrival timestamps in a fixed-capacity
// ring. Oldest entries are evicted on overflow; entries older than the
// window are ignored when counting.
type WindUpTracker struct {
	buf            []int64
	head           int
	count          int
	windowMS       int64
	countThreshold int
}

// NewWindUpTracker builds a tracker with the given fixed capacity.
func NewWindUpTracker(capacity int, windowMS int64, countThreshold int) *WindUpTracker {
	if capacity <= 0 {
		capacity = DefaultConfig().Capacity
	}
	return &WindUpTracker{
		buf:            make([]int64, capacity),
		windowMS:       windowMS,
		countThreshold: countThreshold,
	}
}

// Observe records an arrival at now and reports whether wind-up is
// active: countThreshold or more arrivals within the window, this one
// included.
func (w *WindUpTracker) Observe(now int64) bool {
	w.buf[w.head] = now
	w.head = (w.head + 1) % len(w.buf)
	if w.count < len(w.buf) {
		w.count++
	}
	return w.Recent(now) >= w.countThreshold
}

// Recent counts recorded arrivals within the window ending at now.
func (w *WindUpTracker) Recent(now int64) int {
	cutoff := now - w.windowMS
	recent := 0
	for i := 0; i < w.count; i++ {
		if w.buf[i] >= cutoff && w.buf[i] <= now {
			recent++
		}
	}
	return recent
}
// #endregion windup-tracker

// #region channel
// Channel wraps the fast/slow pain integrators and the wind-up tracker.
type Channel struct {
	fast   *integrate.Integrator
	slow   *integrate.Integrator
	windup *WindUpTracker
}

// NewChannel builds a nociceptive channel from config.
func NewChannel(config Config) *Channel {
	return &Channel{
		fast:   integrate.New(config.Fast),
		slow:   integrate.New(config.Slow),
		windup: NewWindUpTracker(config.Capacity, config.WindowMS, config.CountThreshold),
	}
}

// Process routes one pain arrival to the fast or slow integrator by
// fiber class. On C arrivals the wind-up tracker observes the
// timestamp first; when wind-up is active the slow pathway fires even
// if the raw integrator alone stayed sub-threshold. Sensitization
// substitutes for threshold crossing rather than adding charge.
func (c *Channel) Process(now int64, class fiber.FiberClass, strength float64) (Result, error) {
	switch class {
	case fiber.FiberAdelta:
		return Result{
			Fired:    c.fast.Activate(now, strength),
			FastPath: true,
		}, nil
	case fiber.FiberC:
		wound := c.windup.Observe(now)
		fired := c.slow.Activate(now, strength)
		if wound {
			fired = true
		}
		return Result{Fired: fired, WindUp: wound}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrNotPainFiber, class)
	}
}
// #endregion channel
