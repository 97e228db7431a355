package audit

import (
	"errors"
	"time"

	"github.com/danielpatrickdp/reflex-sim/internal/dorsal"
	"github.com/danielpatrickdp/reflex-sim/internal/fiber"
)

// #region errors
// ErrLogFull signals that the ring buffer wrapped and an unread record
// was overwritten. The new record is still stored; callers count the
// error, they never treat it as fatal.
var ErrLogFull = errors.New("audit: ring buffer wrapped, oldest record overwritten")
// #endregion errors

// #region record
// Record is the complete audit trail of one tick. Every field is
// populated on every tick; there are no partial records.
type Record struct {
	TickID   string // uuid, unique per tick
	TickTime int64  // simulation time in ms

	Fiber    fiber.FiberClass
	Stimulus fiber.StimulusType
	Reflex   dorsal.ReflexKind
	Severity dorsal.Severity

	MotorUnitsFired []string
	Pool            string
	SuppressedPool  string
	PoolRegistered  bool
	RenshawBlocked  bool

	AscendTargets []string // collaborators notified, in broadcast order
	AscendErrors  []string // per-collaborator delivery failures

	OverrideApplied bool
	CooldownApplied bool
	NoOp            bool   // tick produced no directive
	RejectReason    string // malformed-input rejection, empty otherwise

	RecordedAt time.Time
}
// #endregion record
