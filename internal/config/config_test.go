package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "solar_system" {
		t.Errorf("expected solar_system, got %s", cfg.Name)
	}
	if len(cfg.Bodies) != 10 {
		t.Errorf("expected 10 bodies, got %d", len(cfg.Bodies))
	}
	if cfg.G != physics.GaussianG {
		t.Errorf("expected G %g, got %g", physics.GaussianG, cfg.G)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	run := cfg.RunConfig()
	if run.TotalSteps() != 73048 {
		t.Errorf("expected 73048 steps, got %d", run.TotalSteps())
	}
	if run.SampleEvery() != 36 {
		t.Errorf("expected a sample every 36 steps, got %d", run.SampleEvery())
	}
	if run.Samples() != 73048/36+1 {
		t.Errorf("expected %d samples, got %d", 73048/36+1, run.Samples())
	}
}

func TestAllPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
		if _, err := cfg.NewSystem(); err != nil {
			t.Errorf("preset %s: new system failed: %v", name, err)
		}
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	a := GetPreset("two_body")
	a.Bodies[1].Position[0] = 42
	a.Dt = 9

	b := GetPreset("two_body")
	if b.Bodies[1].Position[0] != 1 || b.Dt != 1e-3 {
		t.Error("mutating a preset copy leaked into the preset table")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"no bodies", func(c *Config) { c.Bodies = nil }, dynamo.ErrEmptySystem},
		{"zero mass", func(c *Config) { c.Bodies[0].Mass = 0 }, dynamo.ErrParameterBounds},
		{"short position", func(c *Config) { c.Bodies[1].Position = []float64{1, 2} }, dynamo.ErrDimensionMismatch},
		{"duplicate name", func(c *Config) { c.Bodies[1].Name = c.Bodies[0].Name }, dynamo.ErrParameterBounds},
		{"empty name", func(c *Config) { c.Bodies[1].Name = "" }, dynamo.ErrParameterBounds},
		{"zero dt", func(c *Config) { c.Dt = 0 }, dynamo.ErrParameterBounds},
		{"sample below dt", func(c *Config) { c.SampleInterval = c.Dt / 2 }, dynamo.ErrParameterBounds},
		{"negative g", func(c *Config) { c.G = -1 }, dynamo.ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetPreset("two_body")
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestArrays(t *testing.T) {
	cfg := GetPreset("figure_eight")
	x, v, m := cfg.Arrays()

	if len(x) != 3 || len(v) != 3 || len(m) != 3 {
		t.Fatalf("expected 3 bodies, got %d/%d/%d", len(x), len(v), len(m))
	}
	if x[0][0] != 0.97000436 || v[2][1] != -0.86473146 {
		t.Errorf("arrays do not match preset: x0=%v v2=%v", x[0], v[2])
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbitsim.yaml")

	cfg := GetPreset("two_body")
	cfg.Dt = 0.002
	cfg.OutputDir = "out"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Name != "two_body" || loaded.Dt != 0.002 || loaded.OutputDir != "out" {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if len(loaded.Bodies) != 2 || loaded.Bodies[1].Velocity[1] != cfg.Bodies[1].Velocity[1] {
		t.Errorf("round trip lost bodies: %+v", loaded.Bodies)
	}
}

func TestLoadOverlaysPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbitsim.yaml")
	data := []byte("preset: outer_planets\ntotal_time: 3650\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Name != "outer_planets" || len(cfg.Bodies) != 5 {
		t.Errorf("expected outer_planets with 5 bodies, got %s with %d", cfg.Name, len(cfg.Bodies))
	}
	if cfg.TotalTime != 3650 || cfg.Dt != 10 {
		t.Errorf("expected total_time 3650 and preset dt 10, got %g and %g", cfg.TotalTime, cfg.Dt)
	}
}

func TestLoadUnknownPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbitsim.yaml")
	if err := os.WriteFile(path, []byte("preset: nope\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, found, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false for a missing file")
	}
	if cfg.Name != "solar_system" {
		t.Errorf("expected default config, got %s", cfg.Name)
	}
}
