package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/reflex-sim/internal/fiber"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a
// recorded stimulus train plus the audit outcomes it must reproduce.
type Fixture struct {
	Description string               `json:"description"`
	Stimuli     []FixtureStimulus    `json:"stimuli"`
	Expected    []FixtureExpectation `json:"expected"`
}

// FixtureStimulus is one recorded afferent emission. AtMS is the
// emission time; conduction delay is recomputed on replay, so the same
// fixture replays correctly under a retuned conduction model.
type FixtureStimulus struct {
	AtMS       int64   `json:"at_ms"`
	Fiber      string  `json:"fiber"`
	Stimulus   string  `json:"stimulus"`
	Intensity  float64 `json:"intensity"`
	DistanceCM float64 `json:"distance_cm"`
}

// FixtureExpectation pins down one audit record, addressed by its
// position in arrival order.
type FixtureExpectation struct {
	Index      int    `json:"index"`
	Reflex     string `json:"reflex"`
	Severity   string `json:"severity"`
	Dispatched bool   `json:"dispatched"`
	NoOp       bool   `json:"no_op"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToSample converts a recorded stimulus to a domain sensory sample.
func (s *FixtureStimulus) ToSample() fiber.SensorySample {
	return fiber.SensorySample{
		Class:            fiber.FiberClass(s.Fiber),
		Stimulus:         fiber.StimulusType(s.Stimulus),
		Intensity:        s.Intensity,
		SourceDistanceCM: s.DistanceCM,
	}
}

// #endregion fixture-loader
