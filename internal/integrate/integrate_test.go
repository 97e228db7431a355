package integrate

import (
	"math"
	"testing"
)

func TestFiresOnThresholdCrossing(t *testing.T) {
	n := New(Config{Threshold: 1.0, Gain: 1.0, RefractoryMS: 30})

	if n.Activate(0, 0.6) {
		t.Fatal("sub-threshold stimulus should not fire")
	}
	if !n.Activate(1, 0.5) {
		t.Fatal("accumulated stimulus should cross threshold and fire")
	}
	if n.Potential() != 0 {
		t.Fatalf("potential should reset to baseline after firing, got %g", n.Potential())
	}
	if n.StateAt(2) != Refractory {
		t.Fatal("integrator should be refractory after firing")
	}
}

func TestNoDoubleFireWithinRefractoryWindow(t *testing.T) {
	n := New(Config{Threshold: 1.0, Gain: 1.0, RefractoryMS: 50})

	if !n.Activate(0, 5.0) {
		t.Fatal("expected initial fire")
	}
	// Massive stimulus inside the window: no accumulation, no fire.
	for _, at := range []int64{1, 10, 49} {
		if n.Activate(at, 1000.0) {
			t.Fatalf("fired at t=%d inside refractory window", at)
		}
	}
	if n.Potential() != 0 {
		t.Fatalf("refractory stimuli must not accumulate, potential=%g", n.Potential())
	}
	if !n.Activate(50, 5.0) {
		t.Fatal("expected fire once refractory window elapsed")
	}
}

func TestGainScalesStimulus(t *testing.T) {
	n := New(Config{Threshold: 1.0, Gain: 2.0})
	if !n.Activate(0, 0.5) {
		t.Fatal("gain of 2 should double 0.5 to threshold")
	}
}

func TestIdleDecayTowardBaseline(t *testing.T) {
	n := New(Config{Threshold: 10.0, Gain: 1.0, DecayTauMS: 100})

	n.Activate(0, 1.0)
	// One time constant of idle: potential should drop to ~1/e.
	n.Activate(100, 0)
	want := math.Exp(-1)
	if math.Abs(n.Potential()-want) > 1e-9 {
		t.Fatalf("expected potential ~%.4f after one tau, got %.4f", want, n.Potential())
	}

	// Widely separated sub-threshold stimuli must not accumulate
	// indefinitely.
	m := New(Config{Threshold: 2.0, Gain: 1.0, DecayTauMS: 100})
	for i := int64(0); i < 50; i++ {
		if m.Activate(i*10000, 1.0) {
			t.Fatalf("distant sub-threshold stimuli should never fire (iteration %d)", i)
		}
	}
}

func TestZeroTauDisablesDecay(t *testing.T) {
	n := New(Config{Threshold: 2.0, Gain: 1.0, DecayTauMS: 0})
	n.Activate(0, 1.0)
	if !n.Activate(1_000_000, 1.0) {
		t.Fatal("with decay disabled, retained charge should fire on second stimulus")
	}
}

func TestReset(t *testing.T) {
	n := New(DefaultConfig())
	n.Activate(0, 5.0)
	n.Reset()
	if n.StateAt(1) != Resting || n.Potential() != 0 {
		t.Fatal("reset should clear refractory state and potential")
	}
}
