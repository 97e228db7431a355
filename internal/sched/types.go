package sched

import "errors"

// #region errors
// ErrQueueFull is returned by Schedule when the queue is at capacity.
// The new event is rejected; existing queue contents are left untouched.
var ErrQueueFull = errors.New("sched: queue full")
// #endregion errors

// #region event-types
// EventID identifies a scheduled event and can be passed to Cancel
// before the event fires.
type EventID int64

// Handler is invoked when an event fires. fireTime is the event's
// scheduled time, which becomes the queue's current time for the
// duration of the call.
type Handler func(fireTime int64)

// event is a pending queue entry. Ordering is a strict weak ordering by
// (fireTime, priority, seq); seq guarantees FIFO among equal pairs.
type event struct {
	fireTime int64
	priority int
	seq      int64
	id       EventID
	handler  Handler
	interval int64 // >0 re-arms the event after each firing
}
// #endregion event-types

// #region queue-config
// QueueConfig holds the fixed sizing of an event queue.
type QueueConfig struct {
	Capacity int // maximum number of pending events; never grows
}

// DefaultQueueConfig returns the standard queue sizing.
func DefaultQueueConfig() QueueConfig {
	return QueueConfig{Capacity: 1024}
}
// #endregion queue-config
