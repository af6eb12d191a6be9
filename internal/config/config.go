// Package config holds the tunable parameter surface for terrain synthesis
// and validates it before any grid is allocated.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gghh2/Kingdoms/internal/curve"
)

// Config captures everything a terrain generation run can tune.
type Config struct {
	Seed           int64                `json:"seed" yaml:"seed"`
	Grid           GridConfig           `json:"grid" yaml:"grid"`
	Noise          NoiseConfig          `json:"noise" yaml:"noise"`
	Mountains      MountainConfig       `json:"mountains" yaml:"mountains"`
	Water          WaterConfig          `json:"water" yaml:"water"`
	Classification ClassificationConfig `json:"classification" yaml:"classification"`
	Vegetation     VegetationConfig     `json:"vegetation" yaml:"vegetation"`
	Workers        int                  `json:"workers" yaml:"workers"` // 0 = one per CPU
}

// GridConfig sizes the tile. The heightmap has Resolution+1 samples per
// side; Width and Length are the tile extents in world units.
type GridConfig struct {
	Resolution   int     `json:"resolution" yaml:"resolution"`
	Width        float64 `json:"width" yaml:"width"`
	Length       float64 `json:"length" yaml:"length"`
	MaxElevation float64 `json:"maxElevation" yaml:"maxElevation"`
}

// NoiseConfig parameterizes the fractal elevation field. HeightCurve, when
// non-empty, remaps normalized heights after synthesis.
type NoiseConfig struct {
	Scale       float64          `json:"scale" yaml:"scale"`
	Octaves     int              `json:"octaves" yaml:"octaves"`
	Persistence float64          `json:"persistence" yaml:"persistence"`
	Lacunarity  float64          `json:"lacunarity" yaml:"lacunarity"`
	OffsetX     float64          `json:"offsetX" yaml:"offsetX"`
	OffsetY     float64          `json:"offsetY" yaml:"offsetY"`
	HeightCurve []curve.Keyframe `json:"heightCurve,omitempty" yaml:"heightCurve,omitempty"`
}

// MountainConfig drives the large-scale relief mask. Density 0 flattens the
// whole tile into lowland, density 1 keeps full fractal relief everywhere.
type MountainConfig struct {
	Density float64 `json:"density" yaml:"density"`
	Scale   float64 `json:"scale" yaml:"scale"`
}

// WaterConfig sets the water plane and the distance over which tile borders
// blend down to it. Level is in world units against Grid.MaxElevation.
type WaterConfig struct {
	Level           float64          `json:"level" yaml:"level"`
	FalloffDistance float64          `json:"falloffDistance" yaml:"falloffDistance"`
	FalloffCurve    []curve.Keyframe `json:"falloffCurve,omitempty" yaml:"falloffCurve,omitempty"`
}

// ClassificationConfig bands normalized height into four surface materials.
// Thresholds must be strictly ascending within [0,1).
type ClassificationConfig struct {
	Thresholds         [4]float64 `json:"thresholds" yaml:"thresholds,flow"`
	SlopeOverrideAngle float64    `json:"slopeOverrideAngle" yaml:"slopeOverrideAngle"`
	SlopeRadius        int        `json:"slopeRadius" yaml:"slopeRadius"` // cells
	SlopeMode          string     `json:"slopeMode" yaml:"slopeMode"`     // "max" or "average"
}

// VegetationConfig gates detail placement. Heights are normalized [0,1]
// against the finished heightmap.
type VegetationConfig struct {
	MinHeight     float64 `json:"minHeight" yaml:"minHeight"`
	MaxHeight     float64 `json:"maxHeight" yaml:"maxHeight"`
	MaxSlopeAngle float64 `json:"maxSlopeAngle" yaml:"maxSlopeAngle"`
	Density       int     `json:"density" yaml:"density"`
	Resolution    int     `json:"resolution" yaml:"resolution"`
}

// SlopeMode constants accepted by ClassificationConfig.
const (
	SlopeModeMax     = "max"
	SlopeModeAverage = "average"
)

// Load reads configuration from a JSON or YAML file. An empty path returns
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns a config that renders a 512-unit island tile.
func Default() *Config {
	return &Config{
		Seed: 1337,
		Grid: GridConfig{
			Resolution:   128,
			Width:        512,
			Length:       512,
			MaxElevation: 100,
		},
		Noise: NoiseConfig{
			Scale:       120,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2.0,
		},
		Mountains: MountainConfig{
			Density: 0.5,
			Scale:   300,
		},
		Water: WaterConfig{
			Level:           32,
			FalloffDistance: 50,
			FalloffCurve: []curve.Keyframe{
				{T: 0, V: 0},
				{T: 0.5, V: 0.4},
				{T: 1, V: 1},
			},
		},
		Classification: ClassificationConfig{
			Thresholds:         [4]float64{0.2, 0.4, 0.7, 0.85},
			SlopeOverrideAngle: 40,
			SlopeRadius:        1,
			SlopeMode:          SlopeModeMax,
		},
		Vegetation: VegetationConfig{
			MinHeight:     0.35,
			MaxHeight:     0.7,
			MaxSlopeAngle: 30,
			Density:       6,
			Resolution:    64,
		},
	}
}

func (c *Config) Validate() error {
	if c.Grid.Resolution <= 0 {
		return errors.New("grid.resolution must be positive")
	}
	if c.Grid.Width <= 0 || c.Grid.Length <= 0 {
		return errors.New("grid dimensions must be positive")
	}
	if c.Grid.MaxElevation <= 0 {
		return errors.New("grid.maxElevation must be positive")
	}
	if c.Noise.Octaves < 1 {
		return errors.New("noise.octaves must be at least 1")
	}
	if c.Noise.Persistence <= 0 {
		return errors.New("noise.persistence must be positive")
	}
	if c.Noise.Lacunarity <= 0 {
		return errors.New("noise.lacunarity must be positive")
	}
	if c.Noise.Scale <= 0 {
		return errors.New("noise.scale must be positive")
	}
	if c.Mountains.Density < 0 || c.Mountains.Density > 1 {
		return errors.New("mountains.density must be within [0,1]")
	}
	if c.Mountains.Scale <= 0 {
		return errors.New("mountains.scale must be positive")
	}
	if c.Water.Level < 0 || c.Water.Level > c.Grid.MaxElevation {
		return errors.New("water.level must be within [0, grid.maxElevation]")
	}
	if c.Water.FalloffDistance < 0 {
		return errors.New("water.falloffDistance cannot be negative")
	}
	if _, err := c.Classification.AscendingThresholds(); err != nil {
		return err
	}
	if c.Classification.SlopeOverrideAngle < 0 || c.Classification.SlopeOverrideAngle > 90 {
		return errors.New("classification.slopeOverrideAngle must be within [0,90]")
	}
	if c.Classification.SlopeRadius < 1 {
		return errors.New("classification.slopeRadius must be at least 1")
	}
	switch c.Classification.SlopeMode {
	case SlopeModeMax, SlopeModeAverage:
	default:
		return fmt.Errorf("classification.slopeMode must be %q or %q", SlopeModeMax, SlopeModeAverage)
	}
	if c.Vegetation.MinHeight > c.Vegetation.MaxHeight {
		return errors.New("vegetation.minHeight must not exceed maxHeight")
	}
	if c.Vegetation.MaxSlopeAngle < 0 {
		return errors.New("vegetation.maxSlopeAngle cannot be negative")
	}
	if c.Vegetation.Density < 0 {
		return errors.New("vegetation.density cannot be negative")
	}
	if c.Vegetation.Resolution < 2 {
		return errors.New("vegetation.resolution must be at least 2")
	}
	if c.Workers < 0 {
		return errors.New("workers cannot be negative")
	}
	return nil
}

// thresholdEpsilon is the minimal bump applied when auto-correcting
// breakpoints that are not strictly ascending.
const thresholdEpsilon = 1e-4

// AscendingThresholds returns the classification breakpoints, nudging any
// non-ascending pair upward by a small epsilon. Breakpoints that cannot be
// corrected inside [0,1) are rejected.
func (c *ClassificationConfig) AscendingThresholds() ([4]float64, error) {
	t := c.Thresholds
	if t[0] < 0 {
		return t, errors.New("classification.thresholds must start at or above 0")
	}
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			t[i] = t[i-1] + thresholdEpsilon
		}
	}
	if t[3] >= 1 {
		return t, errors.New("classification.thresholds must remain strictly ascending below 1")
	}
	return t, nil
}

// WaterLevelNormalized is the water plane expressed against MaxElevation.
func (c *Config) WaterLevelNormalized() float64 {
	return c.Water.Level / c.Grid.MaxElevation
}
