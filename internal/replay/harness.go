// Package replay re-runs a recorded stimulus train through a freshly
// assembled engine and checks the audit trail against the fixture's
// expectations. Runs entirely in-memory; no sink, no collaborators.
package replay

import (
	"fmt"

	"github.com/danielpatrickdp/reflex-sim/internal/arc"
	"github.com/danielpatrickdp/reflex-sim/internal/ascend"
	"github.com/danielpatrickdp/reflex-sim/internal/audit"
	"github.com/danielpatrickdp/reflex-sim/internal/config"
	"github.com/danielpatrickdp/reflex-sim/internal/dorsal"
	"github.com/danielpatrickdp/reflex-sim/internal/fiber"
	"github.com/danielpatrickdp/reflex-sim/internal/sched"
	"github.com/danielpatrickdp/reflex-sim/internal/ventral"
)

// #region types

// Mismatch records one divergence between an expectation and the audit
// record it addresses.
type Mismatch struct {
	Index int
	Field string
	Want  string
	Got   string
}

// Result captures the outcome of one replay run.
type Result struct {
	Records    []audit.Record // full audit trail, arrival order
	Processed  int            // events drained, emissions included
	Mismatches []Mismatch
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Mismatches) == 0 }

// #endregion types

// #region run

// Run replays the fixture through a fresh engine built from c and
// compares the resulting audit trail against the fixture's
// expectations. Replay is deterministic as long as c disables jitter.
func Run(f *Fixture, c *config.Config) (*Result, error) {
	queue := sched.New(c.QueueConfigValue())
	model := fiber.NewModel(c.FiberModelConfig())
	ring := audit.NewLog(c.AuditLogConfig())

	orch := arc.New(
		dorsal.NewHorn(model, c.DorsalHornConfig()),
		ventral.NewHorn(c.VentralHornConfig()),
		ascend.NewForwarder(),
		nil,
		ring,
		nil,
		c.ArcOrchestratorConfig(),
	)

	deliver := func(arrival int64, s fiber.SensorySample) {
		orch.HandleArrival(arrival, s)
	}

	horizon := int64(0)
	for i := range f.Stimuli {
		stim := f.Stimuli[i]
		sample := stim.ToSample()

		delay, err := model.DelayMS(sample.Class, sample.SourceDistanceCM)
		if err != nil {
			return nil, fmt.Errorf("stimulus %d: %w", i, err)
		}
		if arrival := stim.AtMS + int64(delay) + 1; arrival > horizon {
			horizon = arrival
		}

		// Emission event at AtMS; conduction delay applies from there.
		// If the queue is full the arrival is delivered immediately so
		// the stimulus still yields its audit record.
		_, err = queue.Schedule(stim.AtMS, 0, func(int64) {
			if _, fireErr := model.Fire(queue, sample, 0, deliver); fireErr != nil {
				orch.HandleArrival(queue.Now(), sample)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("schedule stimulus %d: %w", i, err)
		}
	}

	// Each emission schedules exactly one arrival and arrivals schedule
	// nothing, so the total event count is fixed at twice the stimulus
	// count. Each drain pass fires at least one pending event, which
	// bounds the pass loop.
	processed := 0
	maxPasses := 2 * len(f.Stimuli)
	for pass := 0; pass < maxPasses && queue.Len() > 0; pass++ {
		n, err := queue.RunUntil(horizon)
		if err != nil {
			return nil, fmt.Errorf("drain pass %d: %w", pass, err)
		}
		processed += n
	}

	result := &Result{
		Records:   ring.Snapshot(),
		Processed: processed,
	}
	result.Mismatches = compare(f.Expected, result.Records)
	return result, nil
}

// #endregion run

// #region compare

func compare(expected []FixtureExpectation, records []audit.Record) []Mismatch {
	var mismatches []Mismatch
	for _, exp := range expected {
		if exp.Index < 0 || exp.Index >= len(records) {
			mismatches = append(mismatches, Mismatch{
				Index: exp.Index,
				Field: "index",
				Want:  fmt.Sprintf("record %d", exp.Index),
				Got:   fmt.Sprintf("%d records", len(records)),
			})
			continue
		}
		rec := records[exp.Index]

		if exp.Reflex != "" && rec.Reflex != dorsal.ReflexKind(exp.Reflex) {
			mismatches = append(mismatches, Mismatch{exp.Index, "reflex", exp.Reflex, string(rec.Reflex)})
		}
		if exp.Severity != "" && rec.Severity != dorsal.Severity(exp.Severity) {
			mismatches = append(mismatches, Mismatch{exp.Index, "severity", exp.Severity, string(rec.Severity)})
		}
		if dispatched := len(rec.MotorUnitsFired) > 0; dispatched != exp.Dispatched {
			mismatches = append(mismatches, Mismatch{
				exp.Index, "dispatched",
				fmt.Sprintf("%t", exp.Dispatched),
				fmt.Sprintf("%t", dispatched),
			})
		}
		if rec.NoOp != exp.NoOp {
			mismatches = append(mismatches, Mismatch{
				exp.Index, "no_op",
				fmt.Sprintf("%t", exp.NoOp),
				fmt.Sprintf("%t", rec.NoOp),
			})
		}
	}
	return mismatches
}

// #endregion compare
