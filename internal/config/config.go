package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when present.
const DefaultFile = "orbitsim.yaml"

const (
	DefaultDt             = 1.0
	DefaultTotalTime      = 200.0 * physics.DaysPerYear
	DefaultSampleInterval = 0.1 * physics.DaysPerYear
	DefaultOutputDir      = "."
	DefaultLogLevel       = "info"
	DefaultEpochJD        = 2451545.0
)

type Config struct {
	Preset         string          `yaml:"preset,omitempty"`
	Name           string          `yaml:"name"`
	G              float64         `yaml:"g"`
	TotalTime      float64         `yaml:"total_time"`
	Dt             float64         `yaml:"dt"`
	SampleInterval float64         `yaml:"sample_interval"`
	OutputDir      string          `yaml:"output_dir"`
	LogLevel       string          `yaml:"log_level"`
	SVG            bool            `yaml:"svg"`
	Ephemeris      EphemerisConfig `yaml:"ephemeris"`
	Bodies         []BodyConfig    `yaml:"bodies"`
}

// EphemerisConfig points at an optional JPL DE file. When File is set, the
// positions and velocities of recognised bodies are taken from it at EpochJD.
type EphemerisConfig struct {
	File    string  `yaml:"file"`
	EpochJD float64 `yaml:"epoch_jd"`
}

type BodyConfig struct {
	Name     string    `yaml:"name"`
	Mass     float64   `yaml:"mass"`
	Position []float64 `yaml:"position"`
	Velocity []float64 `yaml:"velocity"`
}

func DefaultConfig() *Config {
	return GetPreset("solar_system")
}

// Load overlays the YAML file at path on the defaults. A top-level preset
// key selects which preset the file is overlaid on.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if head.Preset != "" {
		cfg = GetPreset(head.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", head.Preset, ListPresets())
		}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path if it exists and falls back to DefaultConfig.
// The boolean reports whether the file was read.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if len(c.Bodies) == 0 {
		return dynamo.ErrEmptySystem
	}
	if !positiveFinite(c.G) {
		return fmt.Errorf("g must be positive, got %g: %w", c.G, dynamo.ErrParameterBounds)
	}
	if err := c.RunConfig().Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Bodies))
	for i, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("body %d has no name: %w", i, dynamo.ErrParameterBounds)
		}
		if seen[b.Name] {
			return fmt.Errorf("duplicate body name %q: %w", b.Name, dynamo.ErrParameterBounds)
		}
		seen[b.Name] = true

		if !positiveFinite(b.Mass) {
			return fmt.Errorf("body %s: mass must be positive, got %g: %w", b.Name, b.Mass, dynamo.ErrParameterBounds)
		}
		if len(b.Position) != 3 || len(b.Velocity) != 3 {
			return fmt.Errorf("body %s: position and velocity need 3 components, got %d and %d: %w",
				b.Name, len(b.Position), len(b.Velocity), dynamo.ErrDimensionMismatch)
		}
	}
	return nil
}

func (c *Config) RunConfig() dynamo.Config {
	return dynamo.Config{
		Dt:             c.Dt,
		Duration:       c.TotalTime,
		SampleInterval: c.SampleInterval,
	}
}

// Arrays returns the index-aligned initial conditions.
func (c *Config) Arrays() (positions, velocities []mgl64.Vec3, masses []float64) {
	n := len(c.Bodies)
	positions = make([]mgl64.Vec3, n)
	velocities = make([]mgl64.Vec3, n)
	masses = make([]float64, n)
	for i, b := range c.Bodies {
		copy(positions[i][:], b.Position)
		copy(velocities[i][:], b.Velocity)
		masses[i] = b.Mass
	}
	return positions, velocities, masses
}

// NewSystem builds the physical system described by the config.
func (c *Config) NewSystem() (*physics.System, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	x, v, m := c.Arrays()
	return physics.New(x, v, m, c.G)
}

func (c *Config) BodyNames() []string {
	names := make([]string, len(c.Bodies))
	for i, b := range c.Bodies {
		names[i] = b.Name
	}
	return names
}

func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = make([]BodyConfig, len(c.Bodies))
	for i, b := range c.Bodies {
		out.Bodies[i] = BodyConfig{
			Name:     b.Name,
			Mass:     b.Mass,
			Position: append([]float64(nil), b.Position...),
			Velocity: append([]float64(nil), b.Velocity...),
		}
	}
	return &out
}

func positiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
