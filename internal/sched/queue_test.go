package sched

import "testing"

func TestRunUntilFiresInTimeOrder(t *testing.T) {
	q := New(QueueConfig{Capacity: 16})
	var order []int64

	for _, at := range []int64{30, 10, 20} {
		at := at
		if _, err := q.Schedule(at, 0, func(tm int64) { order = append(order, tm) }); err != nil {
			t.Fatalf("schedule at %d: %v", at, err)
		}
	}

	fired, err := q.RunUntil(100)
	if err != nil {
		t.Fatalf("run until: %v", err)
	}
	if fired != 3 {
		t.Fatalf("expected 3 fired, got %d", fired)
	}
	want := []int64{10, 20, 30}
	for i, at := range want {
		if order[i] != at {
			t.Fatalf("position %d: expected t=%d, got %d", i, at, order[i])
		}
	}
	if q.Now() != 100 {
		t.Fatalf("expected now=100, got %d", q.Now())
	}
}

func TestEqualTimePriorityThenSubmissionOrder(t *testing.T) {
	q := New(QueueConfig{Capacity: 16})
	var order []string

	mark := func(label string) Handler {
		return func(int64) { order = append(order, label) }
	}

	// Interleave priorities deliberately out of order.
	q.Schedule(50, 2, mark("p2-first"))
	q.Schedule(50, 0, mark("p0-first"))
	q.Schedule(50, 1, mark("p1"))
	q.Schedule(50, 0, mark("p0-second"))
	q.Schedule(50, 2, mark("p2-second"))

	if _, err := q.RunUntil(50); err != nil {
		t.Fatalf("run until: %v", err)
	}

	want := []string{"p0-first", "p0-second", "p1", "p2-first", "p2-second"}
	if len(order) != len(want) {
		t.Fatalf("expected %d firings, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestScheduleBeyondCapacityRejectsNewEvent(t *testing.T) {
	q := New(QueueConfig{Capacity: 3})
	var order []int64
	keep := func(tm int64) { order = append(order, tm) }

	q.Schedule(10, 0, keep)
	q.Schedule(20, 0, keep)
	q.Schedule(30, 0, keep)

	if _, err := q.Schedule(5, 0, keep); err != ErrQueueFull {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	if q.Overflows() != 1 {
		t.Fatalf("expected 1 overflow, got %d", q.Overflows())
	}

	// Existing contents remain intact and correctly ordered.
	if _, err := q.RunUntil(100); err != nil {
		t.Fatalf("run until: %v", err)
	}
	want := []int64{10, 20, 30}
	if len(order) != 3 {
		t.Fatalf("expected 3 firings, got %d", len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("position %d: expected t=%d, got %d", i, want[i], order[i])
		}
	}
}

func TestCancelBeforePop(t *testing.T) {
	q := New(QueueConfig{Capacity: 8})
	fired := false

	id, err := q.Schedule(10, 0, func(int64) { fired = true })
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if !q.Cancel(id) {
		t.Fatal("expected cancel to succeed before pop")
	}
	if q.Cancel(id) {
		t.Fatal("double cancel should report false")
	}

	q.RunUntil(100)
	if fired {
		t.Fatal("cancelled event must not fire")
	}
	if q.Cancel(id) {
		t.Fatal("cancel after drain should report false")
	}
}

func TestHandlerEnqueuesWaitForNextDrain(t *testing.T) {
	q := New(QueueConfig{Capacity: 8})
	var order []string

	q.Schedule(10, 0, func(int64) {
		order = append(order, "outer")
		// Due before tStop, but the drain bound was captured at entry.
		q.Schedule(20, 0, func(int64) { order = append(order, "inner") })
	})

	q.RunUntil(100)
	if len(order) != 1 || order[0] != "outer" {
		t.Fatalf("expected only outer to fire in first drain, got %v", order)
	}

	q.RunUntil(100)
	if len(order) != 2 || order[1] != "inner" {
		t.Fatalf("expected inner to fire in second drain, got %v", order)
	}
}

func TestScheduleRepeating(t *testing.T) {
	q := New(QueueConfig{Capacity: 8})
	var times []int64

	id, err := q.ScheduleRepeating(25, 0, func(tm int64) { times = append(times, tm) })
	if err != nil {
		t.Fatalf("schedule repeating: %v", err)
	}

	// Each drain fires one occurrence: the re-arm lands after the
	// iteration bound captured at entry.
	q.RunUntil(60)
	q.RunUntil(110)
	q.RunUntil(110)
	if len(times) < 3 {
		t.Fatalf("expected at least 3 firings, got %v", times)
	}
	if times[0] != 25 || times[1] != 50 || times[2] != 75 {
		t.Fatalf("unexpected firing times %v", times)
	}

	if !q.Cancel(id) {
		t.Fatal("expected cancel of repeating event to succeed")
	}
	n := len(times)
	q.RunUntil(500)
	if len(times) != n {
		t.Fatalf("repeating event fired after cancel: %v", times)
	}
}

func TestRunUntilRejectsBackwardsTime(t *testing.T) {
	q := New(DefaultQueueConfig())
	if _, err := q.RunUntil(50); err != nil {
		t.Fatalf("run until: %v", err)
	}
	if _, err := q.RunUntil(10); err == nil {
		t.Fatal("expected error running backwards in time")
	}
}

func TestPanickingHandlerDoesNotHaltDrain(t *testing.T) {
	q := New(QueueConfig{Capacity: 8})
	survived := false

	q.Schedule(10, 0, func(int64) { panic("boom") })
	q.Schedule(20, 0, func(int64) { survived = true })

	if _, err := q.RunUntil(100); err != nil {
		t.Fatalf("run until: %v", err)
	}
	if !survived {
		t.Fatal("later event should fire despite earlier panic")
	}
}
