package audit

import (
	"errors"
	"fmt"
	"testing"
)

func rec(i int) Record {
	return Record{TickID: fmt.Sprintf("tick-%d", i), TickTime: int64(i)}
}

func TestRecordAndSnapshotOrder(t *testing.T) {
	l := NewLog(LogConfig{Capacity: 8})
	for i := 0; i < 5; i++ {
		if err := l.Record(rec(i)); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	snap := l.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("expected 5 records, got %d", len(snap))
	}
	for i, r := range snap {
		if r.TickTime != int64(i) {
			t.Fatalf("snapshot out of order at %d: %+v", i, r)
		}
	}
}

func TestWrapFlagsAndCountsDrops(t *testing.T) {
	l := NewLog(LogConfig{Capacity: 3})
	for i := 0; i < 3; i++ {
		if err := l.Record(rec(i)); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	// Fourth record wraps: flagged, counted, still stored.
	if err := l.Record(rec(3)); !errors.Is(err, ErrLogFull) {
		t.Fatalf("expected ErrLogFull on wrap, got %v", err)
	}
	if l.Dropped() != 1 {
		t.Fatalf("expected 1 dropped record, got %d", l.Dropped())
	}

	snap := l.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("ring must stay at fixed capacity, got %d", len(snap))
	}
	if snap[0].TickTime != 1 || snap[2].TickTime != 3 {
		t.Fatalf("expected oldest record evicted, got %+v", snap)
	}
}

func TestWrapIsNeverFatal(t *testing.T) {
	l := NewLog(LogConfig{Capacity: 2})
	for i := 0; i < 100; i++ {
		l.Record(rec(i))
	}
	if l.Dropped() != 98 {
		t.Fatalf("expected 98 drops, got %d", l.Dropped())
	}
	snap := l.Snapshot()
	if snap[1].TickTime != 99 {
		t.Fatalf("newest record must always be retained, got %+v", snap)
	}
}
