// Package config provides unified configuration loading for the reflex
// simulator. It supports loading from YAML files and environment
// variables, layered defaults -> file -> env, and converts the loaded
// document into the per-stage configs the engine packages consume.
package config

// #region imports
import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/reflex-sim/internal/arc"
	"github.com/danielpatrickdp/reflex-sim/internal/audit"
	"github.com/danielpatrickdp/reflex-sim/internal/dorsal"
	"github.com/danielpatrickdp/reflex-sim/internal/fiber"
	"github.com/danielpatrickdp/reflex-sim/internal/integrate"
	"github.com/danielpatrickdp/reflex-sim/internal/noci"
	"github.com/danielpatrickdp/reflex-sim/internal/sched"
	"github.com/danielpatrickdp/reflex-sim/internal/ventral"
)

// #endregion

// #region document

// Config is the full simulator configuration document.
type Config struct {
	Queue  QueueConfig  `yaml:"queue"`
	Fiber  FiberConfig  `yaml:"fiber"`
	Dorsal DorsalConfig `yaml:"dorsal"`
	Arc    ArcConfig    `yaml:"arc"`
	Audit  AuditConfig  `yaml:"audit"`
}

// QueueConfig sizes the event queue.
type QueueConfig struct {
	Capacity int `yaml:"capacity"`
}

// FiberConfig tunes the conduction model.
type FiberConfig struct {
	JitterMS float64 `yaml:"jitter_ms"`
	Seed     int64   `yaml:"seed"`
}

// ThresholdConfig is the YAML face of one integrator tuning.
type ThresholdConfig struct {
	Threshold    float64 `yaml:"threshold"`
	Gain         float64 `yaml:"gain"`
	Baseline     float64 `yaml:"baseline"`
	RefractoryMS int64   `yaml:"refractory_ms"`
	DecayTauMS   float64 `yaml:"decay_tau_ms"`
}

// DorsalConfig tunes the integration stage, pain channels included.
type DorsalConfig struct {
	Touch   ThresholdConfig `yaml:"touch"`
	Proprio ThresholdConfig `yaml:"proprio"`
	Tension ThresholdConfig `yaml:"tension"`

	PainFast ThresholdConfig `yaml:"pain_fast"`
	PainSlow ThresholdConfig `yaml:"pain_slow"`

	WindUpWindowMS  int64 `yaml:"windup_window_ms"`
	WindUpThreshold int   `yaml:"windup_threshold"`
	WindUpCapacity  int   `yaml:"windup_capacity"`

	AnalgesiaLevel        float64 `yaml:"analgesia_level"`
	HighSeverityIntensity float64 `yaml:"high_severity_intensity"`
}

// ArcConfig tunes the orchestrator.
type ArcConfig struct {
	CooldownMS int64 `yaml:"cooldown_ms"`
}

// AuditConfig sizes the audit ring and optionally wires the SQLite sink.
type AuditConfig struct {
	RingCapacity int    `yaml:"ring_capacity"`
	DBPath       string `yaml:"db_path"` // empty means in-memory only
}

// #endregion

// #region defaults

// Default returns a Config mirroring each stage's own defaults.
func Default() *Config {
	return &Config{
		Queue:  QueueConfig{Capacity: sched.DefaultQueueConfig().Capacity},
		Fiber:  FiberConfig{JitterMS: 0, Seed: 1},
		Dorsal: defaultDorsal(),
		Arc:    ArcConfig{CooldownMS: arc.DefaultConfig().CooldownMS},
		Audit:  AuditConfig{RingCapacity: audit.DefaultLogConfig().Capacity},
	}
}

func defaultDorsal() DorsalConfig {
	d := dorsal.DefaultConfig()
	return DorsalConfig{
		Touch:                 fromIntegrate(d.Touch),
		Proprio:               fromIntegrate(d.Proprio),
		Tension:               fromIntegrate(d.Tension),
		PainFast:              fromIntegrate(d.Noci.Fast),
		PainSlow:              fromIntegrate(d.Noci.Slow),
		WindUpWindowMS:        d.Noci.WindowMS,
		WindUpThreshold:       d.Noci.CountThreshold,
		WindUpCapacity:        d.Noci.Capacity,
		AnalgesiaLevel:        d.AnalgesiaLevel,
		HighSeverityIntensity: d.HighSeverityIntensity,
	}
}

// #endregion

// #region loading

// Load loads configuration from path (if non-empty) and applies
// REFLEX_* environment overrides on top.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Missing
// keys keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// applyEnvOverrides applies REFLEX_* environment overrides.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("REFLEX_QUEUE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Queue.Capacity = n
		}
	}
	if v := os.Getenv("REFLEX_JITTER_MS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Fiber.JitterMS = f
		}
	}
	if v := os.Getenv("REFLEX_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Fiber.Seed = n
		}
	}
	if v := os.Getenv("REFLEX_ANALGESIA_LEVEL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Dorsal.AnalgesiaLevel = f
		}
	}
	if v := os.Getenv("REFLEX_COOLDOWN_MS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Arc.CooldownMS = n
		}
	}
	if v := os.Getenv("REFLEX_AUDIT_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Audit.RingCapacity = n
		}
	}
	if v := os.Getenv("REFLEX_AUDIT_DB"); v != "" {
		config.Audit.DBPath = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Queue.Capacity <= 0 {
		return fmt.Errorf("queue capacity must be positive, got %d", c.Queue.Capacity)
	}
	if c.Audit.RingCapacity <= 0 {
		return fmt.Errorf("audit ring_capacity must be positive, got %d", c.Audit.RingCapacity)
	}
	if c.Fiber.JitterMS < 0 {
		return fmt.Errorf("fiber jitter_ms must be non-negative, got %f", c.Fiber.JitterMS)
	}
	if c.Dorsal.AnalgesiaLevel < 0 {
		return fmt.Errorf("analgesia_level must be non-negative, got %f", c.Dorsal.AnalgesiaLevel)
	}
	if c.Arc.CooldownMS < 0 {
		return fmt.Errorf("arc cooldown_ms must be non-negative, got %d", c.Arc.CooldownMS)
	}
	if c.Dorsal.WindUpThreshold <= 0 || c.Dorsal.WindUpCapacity <= 0 || c.Dorsal.WindUpWindowMS <= 0 {
		return fmt.Errorf("windup tuning must be positive: threshold=%d capacity=%d window_ms=%d",
			c.Dorsal.WindUpThreshold, c.Dorsal.WindUpCapacity, c.Dorsal.WindUpWindowMS)
	}
	return nil
}

// #endregion

// #region stage-configs

// QueueConfigValue converts to the scheduler's config type.
func (c *Config) QueueConfigValue() sched.QueueConfig {
	return sched.QueueConfig{Capacity: c.Queue.Capacity}
}

// FiberModelConfig converts to the conduction model's config type.
func (c *Config) FiberModelConfig() fiber.ModelConfig {
	return fiber.ModelConfig{JitterMS: c.Fiber.JitterMS, Seed: c.Fiber.Seed}
}

// DorsalHornConfig converts to the dorsal horn's config type.
func (c *Config) DorsalHornConfig() dorsal.Config {
	return dorsal.Config{
		Touch:   toIntegrate(c.Dorsal.Touch),
		Proprio: toIntegrate(c.Dorsal.Proprio),
		Tension: toIntegrate(c.Dorsal.Tension),
		Noci: noci.Config{
			Fast:           toIntegrate(c.Dorsal.PainFast),
			Slow:           toIntegrate(c.Dorsal.PainSlow),
			WindowMS:       c.Dorsal.WindUpWindowMS,
			CountThreshold: c.Dorsal.WindUpThreshold,
			Capacity:       c.Dorsal.WindUpCapacity,
		},
		AnalgesiaLevel:        c.Dorsal.AnalgesiaLevel,
		HighSeverityIntensity: c.Dorsal.HighSeverityIntensity,
	}
}

// VentralHornConfig returns the motor pool registry. Pools are not
// file-configurable; the registry stays the compiled-in wiring.
func (c *Config) VentralHornConfig() ventral.Config {
	return ventral.DefaultConfig()
}

// ArcOrchestratorConfig converts to the orchestrator's config type.
func (c *Config) ArcOrchestratorConfig() arc.Config {
	return arc.Config{CooldownMS: c.Arc.CooldownMS}
}

// AuditLogConfig converts to the audit ring's config type.
func (c *Config) AuditLogConfig() audit.LogConfig {
	return audit.LogConfig{Capacity: c.Audit.RingCapacity}
}

func toIntegrate(t ThresholdConfig) integrate.Config {
	return integrate.Config{
		Threshold:    t.Threshold,
		Gain:         t.Gain,
		Baseline:     t.Baseline,
		RefractoryMS: t.RefractoryMS,
		DecayTauMS:   t.DecayTauMS,
	}
}

func fromIntegrate(i integrate.Config) ThresholdConfig {
	return ThresholdConfig{
		Threshold:    i.Threshold,
		Gain:         i.Gain,
		Baseline:     i.Baseline,
		RefractoryMS: i.RefractoryMS,
		DecayTauMS:   i.DecayTauMS,
	}
}

// #endregion
