// Package ascend packages a sensory sample and its resulting directive
// into an ascending packet and broadcasts it to registered downstream
// collaborators. Broadcast is fire-and-forget from the orchestrator's
// point of view: a failing collaborator is recorded and skipped, never
// allowed to abort the tick or block later collaborators.
package ascend

import (
	"log"

	"github.com/danielpatrickdp/reflex-sim/internal/dorsal"
	"github.com/danielpatrickdp/reflex-sim/internal/fiber"
)

// #region packet
// Packet is the bundle forwarded upward: the unmodified original sample
// plus the directive it produced.
type Packet struct {
	Sample    fiber.SensorySample
	Directive dorsal.ReflexDirective
	Fiber     fiber.FiberClass
}
// #endregion packet

// #region collaborator
// Collaborator is the single capability a downstream module exposes.
// Concrete collaborators (thalamic relay, autonomic regulation,
// cerebellar refinement, affect tagging, orienting cues) live outside
// this core and are injected at construction.
type Collaborator interface {
	Name() string
	Receive(p Packet) error
}

// Failure records one collaborator's delivery error.
type Failure struct {
	Collaborator string
	Err          error
}
// #endregion collaborator

// #region forwarder
// Forwarder broadcasts packets in registration order.
type Forwarder struct {
	collaborators []Collaborator
}

// NewForwarder creates a forwarder with the given collaborators, in
// broadcast order.
func NewForwarder(collaborators ...Collaborator) *Forwarder {
	return &Forwarder{collaborators: collaborators}
}

// Register appends a collaborator to the broadcast order.
func (f *Forwarder) Register(c Collaborator) {
	f.collaborators = append(f.collaborators, c)
}

// Targets returns the registered collaborator names in broadcast order.
func (f *Forwarder) Targets() []string {
	names := make([]string, len(f.collaborators))
	for i, c := range f.collaborators {
		names[i] = c.Name()
	}
	return names
}

// Forward builds the ascending packet and delivers it to every
// registered collaborator in registration order. Failures are collected
// and returned for the audit record; delivery continues past them.
func (f *Forwarder) Forward(sample fiber.SensorySample, directive dorsal.ReflexDirective) (Packet, []Failure) {
	packet := Packet{
		Sample:    sample,
		Directive: directive,
		Fiber:     sample.Class,
	}

	var failures []Failure
	for _, c := range f.collaborators {
		if err := c.Receive(packet); err != nil {
			log.Printf("[ASCEND] collaborator %s failed: %v", c.Name(), err)
			failures = append(failures, Failure{Collaborator: c.Name(), Err: err})
		}
	}
	return packet, failures
}
// #endregion forwarder
