package audit

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/danielpatrickdp/reflex-sim/internal/dorsal"
	"github.com/danielpatrickdp/reflex-sim/internal/fiber"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndReadBack(t *testing.T) {
	s := openTestStore(t)

	want := Record{
		TickID:          "tick-abc",
		TickTime:        67,
		Fiber:           fiber.FiberAdelta,
		Stimulus:        fiber.StimulusPain,
		Reflex:          dorsal.ReflexWithdraw,
		Severity:        dorsal.SeverityHigh,
		MotorUnitsFired: []string{"flexor_mn_0", "flexor_mn_1"},
		Pool:            "flexor_pool",
		SuppressedPool:  "extensor_pool",
		PoolRegistered:  true,
		AscendTargets:   []string{"thalamic_relay", "affect_tagging"},
		AscendErrors:    []string{"affect_tagging: unavailable"},
	}
	if err := s.Append(want); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if diff := cmp.Diff(want, got[0], cmpopts.IgnoreFields(Record{}, "RecordedAt")); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if got[0].RecordedAt.IsZero() {
		t.Fatal("store must stamp RecordedAt when absent")
	}
}

func TestNoPartialRecords(t *testing.T) {
	s := openTestStore(t)

	// A no-op tick still has every column populated.
	noop := Record{
		TickID:   "tick-noop",
		TickTime: 12,
		Fiber:    fiber.FiberAbeta,
		Stimulus: fiber.StimulusTouch,
		Reflex:   dorsal.ReflexNone,
		Severity: dorsal.SeverityLow,
		NoOp:     true,
	}
	if err := s.Append(noop); err != nil {
		t.Fatalf("append noop: %v", err)
	}

	got, err := s.Recent(1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if !got[0].NoOp || got[0].Reflex != dorsal.ReflexNone {
		t.Fatalf("no-op tick not faithfully persisted: %+v", got[0])
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 persisted record, got %d", n)
	}
}
