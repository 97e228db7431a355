// Package sched provides the bounded, deterministic event queue that
// drives the reflex simulation. Events fire in ascending
// (fireTime, priority, sequence) order; capacity is fixed at
// construction and Schedule rejects rather than grows.
package sched

import (
	"container/heap"
	"errors"
	"fmt"
	"log"
)

// #region heap
// eventHeap orders events by (fireTime, priority, seq).
type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].fireTime != h[j].fireTime {
		return h[i].fireTime < h[j].fireTime
	}
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(*event)) }

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return ev
}
// #endregion heap

// #region queue-struct
// Queue is a fixed-capacity, time-and-priority-ordered store of pending
// events. It is single-threaded by design: RunUntil is the sole driver
// and handlers run synchronously to completion.
type Queue struct {
	events    eventHeap
	capacity  int
	now       int64
	nextSeq   int64
	nextID    EventID
	cancelled map[EventID]struct{}
	overflows uint64
}

// New creates a queue with the capacity fixed by config.
func New(config QueueConfig) *Queue {
	capacity := config.Capacity
	if capacity <= 0 {
		capacity = DefaultQueueConfig().Capacity
	}
	return &Queue{
		events:    make(eventHeap, 0, capacity),
		capacity:  capacity,
		nextID:    1,
		cancelled: make(map[EventID]struct{}, capacity),
	}
}
// #endregion queue-struct

// #region accessors
// Now returns the queue's current simulation time in milliseconds.
func (q *Queue) Now() int64 { return q.now }

// Len returns the number of pending events, cancelled ones included.
func (q *Queue) Len() int { return len(q.events) }

// Overflows returns how many Schedule calls were rejected with
// ErrQueueFull since construction.
func (q *Queue) Overflows() uint64 { return q.overflows }
// #endregion accessors

// #region schedule
// Schedule enqueues handler to fire at fireTime with the given priority
// (lower fires first among equal times). Returns ErrQueueFull when the
// queue is at capacity; the pending contents are unchanged.
func (q *Queue) Schedule(fireTime int64, priority int, handler Handler) (EventID, error) {
	return q.schedule(fireTime, priority, handler, 0)
}

// ScheduleRepeating enqueues handler to fire every intervalMS, first at
// now+intervalMS. The event re-arms itself after each firing until
// cancelled; a re-arm that finds the queue full is dropped and counted
// as an overflow.
func (q *Queue) ScheduleRepeating(intervalMS int64, priority int, handler Handler) (EventID, error) {
	if intervalMS <= 0 {
		return 0, errors.New("sched: interval must be greater than zero")
	}
	return q.schedule(q.now+intervalMS, priority, handler, intervalMS)
}

func (q *Queue) schedule(fireTime int64, priority int, handler Handler, interval int64) (EventID, error) {
	if handler == nil {
		return 0, errors.New("sched: nil handler")
	}
	if len(q.events) >= q.capacity {
		q.overflows++
		log.Printf("[SCHED] rejected event at t=%d: queue full (capacity %d)", fireTime, q.capacity)
		return 0, ErrQueueFull
	}
	ev := &event{
		fireTime: fireTime,
		priority: priority,
		seq:      q.nextSeq,
		id:       q.nextID,
		handler:  handler,
		interval: interval,
	}
	q.nextSeq++
	q.nextID++
	heap.Push(&q.events, ev)
	return ev.id, nil
}
// #endregion schedule

// #region cancel
// Cancel withdraws a scheduled event before it fires. Returns false if
// the event already fired, was already cancelled, or is unknown. A
// cancelled repeating event stops re-arming.
func (q *Queue) Cancel(id EventID) bool {
	for _, ev := range q.events {
		if ev.id == id {
			if _, dead := q.cancelled[id]; dead {
				return false
			}
			q.cancelled[id] = struct{}{}
			return true
		}
	}
	return false
}
// #endregion cancel

// #region run-until
// RunUntil advances simulation time to tStop and invokes every handler
// whose fireTime <= tStop, in (fireTime, priority, sequence) order.
//
// The iteration bound is the queue length captured at call entry, so
// the drain always terminates even when handlers enqueue new events:
// events scheduled mid-drain fire on the next RunUntil call. Returns
// the number of handlers invoked.
func (q *Queue) RunUntil(tStop int64) (int, error) {
	if tStop < q.now {
		return 0, fmt.Errorf("sched: cannot run backwards from %d to %d", q.now, tStop)
	}

	fired := 0
	bound := len(q.events)
	for i := 0; i < bound; i++ {
		if len(q.events) == 0 || q.events[0].fireTime > tStop {
			break
		}
		ev := heap.Pop(&q.events).(*event)
		q.now = ev.fireTime

		if _, dead := q.cancelled[ev.id]; dead {
			delete(q.cancelled, ev.id)
			continue
		}

		invoke(ev)
		fired++

		if ev.interval > 0 {
			q.rearm(ev)
		}
	}

	if tStop > q.now {
		q.now = tStop
	}
	return fired, nil
}

// rearm re-enqueues a repeating event under its original ID so a
// pending Cancel still reaches it. A full queue drops the re-arm.
func (q *Queue) rearm(ev *event) {
	if len(q.events) >= q.capacity {
		q.overflows++
		log.Printf("[SCHED] dropped re-arm of repeating event %d: queue full", ev.id)
		return
	}
	next := &event{
		fireTime: ev.fireTime + ev.interval,
		priority: ev.priority,
		seq:      q.nextSeq,
		id:       ev.id,
		handler:  ev.handler,
		interval: ev.interval,
	}
	q.nextSeq++
	heap.Push(&q.events, next)
}

// invoke runs a handler, containing panics so one faulty handler cannot
// halt the drain.
func invoke(ev *event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[SCHED] event %d handler panicked at t=%d: %v", ev.id, ev.fireTime, r)
		}
	}()
	ev.handler(ev.fireTime)
}
// #endregion run-until
