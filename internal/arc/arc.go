// Package arc coordinates one reflex tick end to end: dorsal
// integration, supraspinal override check, ventral dispatch, ascending
// broadcast, and the mandatory audit record. The orchestrator owns no
// stage state of its own beyond per-kind cooldown bookkeeping.
package arc

// #region imports
import (
	"log"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/reflex-sim/internal/ascend"
	"github.com/danielpatrickdp/reflex-sim/internal/audit"
	"github.com/danielpatrickdp/reflex-sim/internal/dorsal"
	"github.com/danielpatrickdp/reflex-sim/internal/fiber"
	"github.com/danielpatrickdp/reflex-sim/internal/ventral"
)

// #endregion

// #region orchestrator-struct

// Orchestrator is the central reflex-arc coordinator. Every afferent
// arrival flows through HandleArrival, and every arrival yields exactly
// one audit record, no-op ticks and rejected inputs included.
type Orchestrator struct {
	dorsal    *dorsal.Horn
	ventral   *ventral.Horn
	forwarder *ascend.Forwarder
	override  Override // nil means fail open
	log       *audit.Log
	sink      *audit.Store // optional persistent sink
	config    Config

	lastDispatch map[dorsal.ReflexKind]int64
	dispatched   map[dorsal.ReflexKind]bool
}

// #endregion

// #region constructor

// New wires a fully assembled orchestrator. override and sink may be
// nil: a nil override allows every directive, a nil sink keeps the
// audit trail purely in memory.
func New(
	dorsalHorn *dorsal.Horn,
	ventralHorn *ventral.Horn,
	forwarder *ascend.Forwarder,
	override Override,
	auditLog *audit.Log,
	sink *audit.Store,
	config Config,
) *Orchestrator {
	return &Orchestrator{
		dorsal:       dorsalHorn,
		ventral:      ventralHorn,
		forwarder:    forwarder,
		override:     override,
		log:          auditLog,
		sink:         sink,
		config:       config,
		lastDispatch: make(map[dorsal.ReflexKind]int64, 4),
		dispatched:   make(map[dorsal.ReflexKind]bool, 4),
	}
}

// #endregion

// #region handle-arrival

// HandleArrival runs one full tick for a sample arriving at time now
// and returns its audit record. Stage order is fixed: integrate,
// override check, dispatch, ascend, audit. The audit stage always runs.
func (o *Orchestrator) HandleArrival(now int64, sample fiber.SensorySample) audit.Record {
	rec := audit.Record{
		TickID:   uuid.New().String(),
		TickTime: now,
		Fiber:    sample.Class,
		Stimulus: sample.Stimulus,
		Reflex:   dorsal.ReflexNone,
		Severity: dorsal.SeverityLow,
	}

	directive, err := o.dorsal.ProcessInput(now, sample)
	if err != nil {
		rec.NoOp = true
		rec.RejectReason = err.Error()
		o.record(rec)
		return rec
	}
	if directive == nil {
		rec.NoOp = true
		o.record(rec)
		return rec
	}

	rec.Reflex = directive.Kind
	rec.Severity = directive.Severity

	decision := Allow
	if o.override != nil {
		decision = o.override.Evaluate(*directive)
	}

	switch {
	case decision == Suppress:
		rec.OverrideApplied = true
	case o.inCooldown(now, directive.Kind):
		rec.CooldownApplied = true
	case directive.Kind != dorsal.ReflexNone:
		dispatch := o.ventral.TriggerAction(now, directive.Kind)
		rec.MotorUnitsFired = dispatch.UnitsFired
		rec.Pool = dispatch.Pool
		rec.SuppressedPool = dispatch.SuppressedPool
		rec.PoolRegistered = dispatch.PoolRegistered
		rec.RenshawBlocked = dispatch.RenshawBlocked
		if dispatch.PoolRegistered && !dispatch.RenshawBlocked {
			o.lastDispatch[directive.Kind] = now
			o.dispatched[directive.Kind] = true
		}
	}

	// The ascending copy goes up whether or not motor units fired:
	// suppressed and cooled-down directives still inform higher centers.
	_, failures := o.forwarder.Forward(sample, *directive)
	rec.AscendTargets = o.forwarder.Targets()
	for _, f := range failures {
		rec.AscendErrors = append(rec.AscendErrors, f.Collaborator+": "+f.Err.Error())
	}

	o.record(rec)
	return rec
}

// inCooldown reports whether kind dispatched within the cooldown
// window ending at now.
func (o *Orchestrator) inCooldown(now int64, kind dorsal.ReflexKind) bool {
	if o.config.CooldownMS <= 0 || !o.dispatched[kind] {
		return false
	}
	return now-o.lastDispatch[kind] < o.config.CooldownMS
}

// #endregion

// #region record

// record stores rec in the ring and, when a sink is wired, persists it.
// Neither failure aborts the tick.
func (o *Orchestrator) record(rec audit.Record) {
	if err := o.log.Record(rec); err != nil {
		log.Printf("[ARC] audit ring wrapped at tick %s: %v (dropped=%d)", rec.TickID, err, o.log.Dropped())
	}
	if o.sink != nil {
		if err := o.sink.Append(rec); err != nil {
			log.Printf("[ARC] audit sink append failed for tick %s: %v", rec.TickID, err)
		}
	}
}

// #endregion
