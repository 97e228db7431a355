// Package fiber models afferent sensory fiber conduction: each fiber
// class carries a characteristic velocity, and firing a sample schedules
// exactly one delayed arrival event on the queue.
package fiber

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/danielpatrickdp/reflex-sim/internal/sched"
)

// #region model
// Model computes conduction delays from the static profile table and
// schedules arrival events.
type Model struct {
	profiles map[FiberClass]Profile
	config   ModelConfig
	rng      *rand.Rand
}

// NewModel builds a conduction model over the process-wide profile table.
func NewModel(config ModelConfig) *Model {
	return &Model{
		profiles: Profiles(),
		config:   config,
		rng:      rand.New(rand.NewSource(config.Seed)),
	}
}
// #endregion model

// #region profile-lookup
// Profile returns the static constants for class.
func (m *Model) Profile(class FiberClass) (Profile, error) {
	p, ok := m.profiles[class]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownFiberClass, class)
	}
	return p, nil
}
// #endregion profile-lookup

// #region delay
// DelayMS returns the conduction delay for class over distanceCM:
// (distance_cm / 100) / velocity_m_per_s * 1000.
func (m *Model) DelayMS(class FiberClass, distanceCM float64) (float64, error) {
	p, err := m.Profile(class)
	if err != nil {
		return 0, err
	}
	if distanceCM <= 0 {
		return 0, fmt.Errorf("%w: %g cm", ErrNonPositiveDistance, distanceCM)
	}
	return (distanceCM / 100.0) / p.VelocityMPerS * 1000.0, nil
}
// #endregion delay

// #region fire
// Fire schedules exactly one arrival event for sample, delayed by its
// class's conduction time from the queue's current now. deliver receives
// the arrival time and the original, unmodified sample.
func (m *Model) Fire(q *sched.Queue, sample SensorySample, priority int, deliver func(arrival int64, s SensorySample)) (sched.EventID, error) {
	delay, err := m.DelayMS(sample.Class, sample.SourceDistanceCM)
	if err != nil {
		return 0, err
	}
	if m.config.JitterMS > 0 {
		delay += m.rng.NormFloat64() * m.config.JitterMS
		if delay < 0 {
			delay = 0
		}
	}
	arrival := q.Now() + int64(math.Round(delay))
	id, err := q.Schedule(arrival, priority, func(t int64) {
		deliver(t, sample)
	})
	if err != nil {
		return 0, fmt.Errorf("fire %s afferent: %w", sample.Class, err)
	}
	return id, nil
}
// #endregion fire
