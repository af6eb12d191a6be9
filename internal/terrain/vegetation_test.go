package terrain

import (
	"context"
	"testing"

	"github.com/gghh2/Kingdoms/internal/config"
)

func flatTestGrid(size int, height float64) *Grid {
	g := newGrid(size)
	for i := range g.values {
		g.values[i] = height
	}
	return g
}

func vegetationTestConfig(res int) *config.Config {
	cfg := config.Default()
	cfg.Grid.Resolution = res
	cfg.Grid.Width = float64(res)
	cfg.Grid.Length = float64(res)
	cfg.Grid.MaxElevation = 100
	cfg.Vegetation = config.VegetationConfig{
		MinHeight:     0.35,
		MaxHeight:     0.7,
		MaxSlopeAngle: 30,
		Density:       6,
		Resolution:    res + 1,
	}
	return cfg
}

func TestVegetationCoversFlatInBandTerrain(t *testing.T) {
	cfg := vegetationTestConfig(4)
	hm := flatTestGrid(5, 0.5)
	slopes := newSlopeEstimator(hm, cfg)

	detail := placeVegetation(hm, slopes, cfg.Vegetation)
	for y := 0; y < detail.Size(); y++ {
		for x := 0; x < detail.Size(); x++ {
			if got := detail.At(x, y); got != 6 {
				t.Fatalf("expected density 6 at (%d,%d), got %d", x, y, got)
			}
		}
	}
}

func TestVegetationExcludedOutsideHeightBand(t *testing.T) {
	cfg := vegetationTestConfig(4)

	for _, height := range []float64{0.1, 0.9} {
		hm := flatTestGrid(5, height)
		slopes := newSlopeEstimator(hm, cfg)
		detail := placeVegetation(hm, slopes, cfg.Vegetation)
		for y := 0; y < detail.Size(); y++ {
			for x := 0; x < detail.Size(); x++ {
				if got := detail.At(x, y); got != 0 {
					t.Fatalf("height %v: expected zero density at (%d,%d), got %d", height, x, y, got)
				}
			}
		}
	}
}

func TestVegetationExcludedOnSteepSlopes(t *testing.T) {
	cfg := vegetationTestConfig(4)

	// A cliff between two flat shelves: one cell of horizontal run against
	// 40 world units of rise is far beyond the 30 degree limit.
	hm := newGrid(5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			h := 0.4
			if x >= 3 {
				h = 0.6
			}
			hm.set(x, y, h)
		}
	}
	slopes := newSlopeEstimator(hm, cfg)

	detail := placeVegetation(hm, slopes, cfg.Vegetation)
	for y := 0; y < detail.Size(); y++ {
		// Columns 2 and 3 straddle the cliff.
		for _, x := range []int{2, 3} {
			if got := detail.At(x, y); got != 0 {
				t.Fatalf("expected zero density on cliff at (%d,%d), got %d", x, y, got)
			}
		}
		// Column 0 is flat and within the band.
		if got := detail.At(0, y); got != 6 {
			t.Fatalf("expected density 6 on flat shelf at (0,%d), got %d", y, got)
		}
	}
}

func TestVegetationSubGridMapsOntoHeightmap(t *testing.T) {
	cfg := testConfig()
	cfg.Vegetation.Resolution = 16

	res, err := Generate(context.Background(), 42, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	detail := res.VegetationDensity()
	if detail.Size() != 16 {
		t.Fatalf("expected 16-cell detail grid, got %d", detail.Size())
	}

	veg := cfg.Vegetation
	scale := float64(res.Heightmap().Size()-1) / float64(detail.Size()-1)
	for y := 0; y < detail.Size(); y++ {
		for x := 0; x < detail.Size(); x++ {
			u := float64(x) * scale
			v := float64(y) * scale
			h := res.HeightAt(u, v)
			steep := res.SlopeAt(u, v) > veg.MaxSlopeAngle
			inBand := h >= veg.MinHeight && h <= veg.MaxHeight

			got := detail.At(x, y)
			if inBand && !steep && got != veg.Density {
				t.Fatalf("eligible cell (%d,%d) has density %d", x, y, got)
			}
			if (!inBand || steep) && got != 0 {
				t.Fatalf("ineligible cell (%d,%d) has density %d", x, y, got)
			}
		}
	}
}
