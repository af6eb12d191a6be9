// Package terrain synthesizes a bounded terrain tile from a seed: a
// normalized elevation grid, per-cell surface material weights and a
// vegetation density grid. Generation is deterministic, a seed and config
// fully determine every output cell.
package terrain

import (
	"context"
	"fmt"
	"sync"

	"github.com/gghh2/Kingdoms/internal/config"
)

// Result aggregates the grids produced by one generation run. It is
// immutable once returned; callers regenerate rather than mutate.
type Result struct {
	seed       int64
	cfg        config.Config
	heightmap  *Grid
	weights    *WeightGrid
	vegetation *DetailGrid
	slopes     *slopeEstimator
}

// Generate runs the full synthesis pipeline for a seed. The config is
// validated up front; an invalid config aborts before any grid is
// allocated. Concurrent calls with different seeds share no state.
func Generate(ctx context.Context, seed int64, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	thresholds, err := cfg.Classification.AscendingThresholds()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	hm, err := newSynthesizer(seed, cfg).synthesize(ctx)
	if err != nil {
		return nil, fmt.Errorf("synthesize heightmap: %w", err)
	}

	slopes := newSlopeEstimator(hm, cfg)

	// Classification and vegetation placement are pure functions over the
	// finished heightmap, so both run at once.
	var weights *WeightGrid
	var vegetation *DetailGrid
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		weights = classifyGrid(hm, slopes, thresholds, cfg.Classification.SlopeOverrideAngle)
	}()
	go func() {
		defer wg.Done()
		vegetation = placeVegetation(hm, slopes, cfg.Vegetation)
	}()
	wg.Wait()

	return &Result{
		seed:       seed,
		cfg:        *cfg,
		heightmap:  hm,
		weights:    weights,
		vegetation: vegetation,
		slopes:     slopes,
	}, nil
}

// Seed returns the seed this result was generated from.
func (r *Result) Seed() int64 {
	return r.seed
}

// Config returns a copy of the config snapshot used for generation.
func (r *Result) Config() config.Config {
	return r.cfg
}

// Heightmap returns the normalized elevation grid.
func (r *Result) Heightmap() *Grid {
	return r.heightmap
}

// MaterialWeights returns the per-cell surface material weight grid.
func (r *Result) MaterialWeights() *WeightGrid {
	return r.weights
}

// VegetationDensity returns the vegetation detail grid.
func (r *Result) VegetationDensity() *DetailGrid {
	return r.vegetation
}

// HeightAt returns the bilinear-sampled normalized height at fractional
// grid coordinates. Out-of-range coordinates clamp to the tile.
func (r *Result) HeightAt(u, v float64) float64 {
	return r.heightmap.Sample(u, v)
}

// SlopeAt returns the slope in degrees at fractional grid coordinates,
// using the same estimator as classification and vegetation placement.
func (r *Result) SlopeAt(u, v float64) float64 {
	return r.slopes.At(u, v)
}

// MaterialWeightsAt returns blended material weights at fractional grid
// coordinates, renormalized to sum to 1.
func (r *Result) MaterialWeightsAt(u, v float64) MaterialWeights {
	return r.weights.Sample(u, v)
}

// VegetationDensityAt returns the interpolated vegetation density at
// fractional heightmap coordinates, mapped onto the detail grid.
func (r *Result) VegetationDensityAt(u, v float64) float64 {
	scale := float64(r.vegetation.Size()-1) / float64(r.heightmap.Size()-1)
	return r.vegetation.Sample(u*scale, v*scale)
}
