package replay

import (
	"testing"

	"github.com/danielpatrickdp/reflex-sim/internal/config"
)

// mixedTrain is a stimulus train with distinct conduction delays:
// touch on A-beta arrives first despite being emitted second, the
// A-delta pain emitted at t=0 crosses 100cm in ~67ms, and a weak touch
// lands inside the touch integrator's refractory window.
func mixedTrain() *Fixture {
	return &Fixture{
		Description: "mixed afferent train",
		Stimuli: []FixtureStimulus{
			{AtMS: 0, Fiber: "A_delta", Stimulus: "pain", Intensity: 1.0, DistanceCM: 100},
			{AtMS: 10, Fiber: "A_beta", Stimulus: "touch", Intensity: 1.2, DistanceCM: 50},
			{AtMS: 30, Fiber: "A_beta", Stimulus: "touch", Intensity: 1.2, DistanceCM: 50},
		},
		Expected: []FixtureExpectation{
			{Index: 0, Reflex: "light_contact", Severity: "low", Dispatched: true},
			{Index: 1, Reflex: "none", NoOp: true},
			{Index: 2, Reflex: "withdraw", Severity: "low", Dispatched: true},
		},
	}
}

func TestRunOrdersByArrival(t *testing.T) {
	result, err := Run(mixedTrain(), config.Default())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Passed() {
		t.Fatalf("expected clean replay, got mismatches: %+v", result.Mismatches)
	}
	if len(result.Records) != 3 {
		t.Fatalf("expected 3 audit records, got %d", len(result.Records))
	}
	// Emissions plus arrivals all pass through the queue.
	if result.Processed != 6 {
		t.Fatalf("expected 6 drained events, got %d", result.Processed)
	}
	if result.Records[0].TickTime >= result.Records[2].TickTime {
		t.Fatalf("records out of arrival order: %d then %d",
			result.Records[0].TickTime, result.Records[2].TickTime)
	}
}

func TestRunDeterministic(t *testing.T) {
	first, err := Run(mixedTrain(), config.Default())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := Run(mixedTrain(), config.Default())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(first.Records) != len(second.Records) {
		t.Fatalf("record counts differ: %d vs %d", len(first.Records), len(second.Records))
	}
	for i := range first.Records {
		a, b := first.Records[i], second.Records[i]
		if a.TickTime != b.TickTime || a.Reflex != b.Reflex || len(a.MotorUnitsFired) != len(b.MotorUnitsFired) {
			t.Fatalf("record %d diverged between runs:\n%+v\n%+v", i, a, b)
		}
	}
}

func TestRunReportsMismatches(t *testing.T) {
	f := mixedTrain()
	f.Expected = []FixtureExpectation{
		{Index: 0, Reflex: "withdraw", Dispatched: true}, // actually light_contact
		{Index: 9, Reflex: "withdraw", Dispatched: true}, // out of range
	}

	result, err := Run(f, config.Default())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Passed() {
		t.Fatal("expected mismatches")
	}
	if len(result.Mismatches) != 2 {
		t.Fatalf("expected 2 mismatches, got %+v", result.Mismatches)
	}
	if result.Mismatches[0].Field != "reflex" {
		t.Fatalf("first mismatch should flag the reflex field: %+v", result.Mismatches[0])
	}
	if result.Mismatches[1].Field != "index" {
		t.Fatalf("out-of-range expectation should flag the index: %+v", result.Mismatches[1])
	}
}

func TestRunRejectsUnknownFiber(t *testing.T) {
	f := &Fixture{
		Stimuli: []FixtureStimulus{
			{AtMS: 0, Fiber: "B_gamma", Stimulus: "touch", Intensity: 1.0, DistanceCM: 10},
		},
	}
	if _, err := Run(f, config.Default()); err == nil {
		t.Fatal("expected error for unknown fiber class")
	}
}
