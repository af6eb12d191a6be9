package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsInvalidFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero resolution", func(c *Config) { c.Grid.Resolution = 0 }},
		{"negative width", func(c *Config) { c.Grid.Width = -1 }},
		{"zero max elevation", func(c *Config) { c.Grid.MaxElevation = 0 }},
		{"zero octaves", func(c *Config) { c.Noise.Octaves = 0 }},
		{"zero persistence", func(c *Config) { c.Noise.Persistence = 0 }},
		{"zero lacunarity", func(c *Config) { c.Noise.Lacunarity = 0 }},
		{"zero noise scale", func(c *Config) { c.Noise.Scale = 0 }},
		{"density above one", func(c *Config) { c.Mountains.Density = 1.5 }},
		{"zero mountain scale", func(c *Config) { c.Mountains.Scale = 0 }},
		{"water above max elevation", func(c *Config) { c.Water.Level = 200 }},
		{"negative falloff", func(c *Config) { c.Water.FalloffDistance = -1 }},
		{"uncorrectable thresholds", func(c *Config) { c.Classification.Thresholds = [4]float64{0.9999, 0.9999, 0.9999, 0.9999} }},
		{"negative threshold", func(c *Config) { c.Classification.Thresholds[0] = -0.1 }},
		{"unknown slope mode", func(c *Config) { c.Classification.SlopeMode = "weird" }},
		{"zero slope radius", func(c *Config) { c.Classification.SlopeRadius = 0 }},
		{"inverted vegetation band", func(c *Config) { c.Vegetation.MinHeight = 0.9; c.Vegetation.MaxHeight = 0.1 }},
		{"negative vegetation density", func(c *Config) { c.Vegetation.Density = -1 }},
		{"vegetation resolution too small", func(c *Config) { c.Vegetation.Resolution = 1 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
	}

	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestAscendingThresholdsAutoCorrects(t *testing.T) {
	cc := ClassificationConfig{Thresholds: [4]float64{0.2, 0.2, 0.7, 0.7}}
	fixed, err := cc.AscendingThresholds()
	if err != nil {
		t.Fatalf("expected auto-correction to succeed: %v", err)
	}
	for i := 1; i < len(fixed); i++ {
		if fixed[i] <= fixed[i-1] {
			t.Fatalf("thresholds not strictly ascending after correction: %v", fixed)
		}
	}
	if fixed[3] >= 1 {
		t.Fatalf("corrected thresholds escaped [0,1): %v", fixed)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Grid.Resolution != Default().Grid.Resolution {
		t.Fatalf("expected defaults, got %+v", cfg.Grid)
	}
}

func TestLoadJSONAndYAMLAgree(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "terrain.json")
	jsonBody := `{
		"seed": 99,
		"grid": {"resolution": 64, "width": 256, "length": 256, "maxElevation": 80},
		"water": {"level": 20, "falloffDistance": 30}
	}`
	if err := os.WriteFile(jsonPath, []byte(jsonBody), 0o600); err != nil {
		t.Fatalf("write json config: %v", err)
	}

	yamlPath := filepath.Join(dir, "terrain.yaml")
	yamlBody := "seed: 99\ngrid:\n  resolution: 64\n  width: 256\n  length: 256\n  maxElevation: 80\nwater:\n  level: 20\n  falloffDistance: 30\n"
	if err := os.WriteFile(yamlPath, []byte(yamlBody), 0o600); err != nil {
		t.Fatalf("write yaml config: %v", err)
	}

	fromJSON, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	fromYAML, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}

	if fromJSON.Seed != 99 || fromYAML.Seed != 99 {
		t.Fatalf("expected seed override, got %d and %d", fromJSON.Seed, fromYAML.Seed)
	}
	if fromJSON.Grid != fromYAML.Grid {
		t.Fatalf("grid sections differ: %+v vs %+v", fromJSON.Grid, fromYAML.Grid)
	}
	if fromJSON.Water.Level != fromYAML.Water.Level {
		t.Fatalf("water sections differ")
	}
	// Unset sections keep defaults in both formats.
	if fromJSON.Noise.Octaves != Default().Noise.Octaves {
		t.Fatalf("expected default octaves, got %d", fromJSON.Noise.Octaves)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"grid": {"resolution": -5}}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation failure for negative resolution")
	}
}

func TestWaterLevelNormalized(t *testing.T) {
	cfg := Default()
	cfg.Water.Level = 32
	cfg.Grid.MaxElevation = 100
	if got := cfg.WaterLevelNormalized(); math.Abs(got-0.32) > 1e-12 {
		t.Fatalf("expected 0.32, got %v", got)
	}
}
