package terrain

import (
	"github.com/gghh2/Kingdoms/internal/config"
)

// placeVegetation fills a detail grid at its own resolution, mapped
// proportionally onto the heightmap. Inclusion is a hard binary test:
// height inside the configured band and slope at or below the limit gets
// the configured density, everything else gets zero. No blending at the
// boundary keeps placement reproducible.
func placeVegetation(hm *Grid, slopes *slopeEstimator, cfg config.VegetationConfig) *DetailGrid {
	out := newDetailGrid(cfg.Resolution)
	scale := float64(hm.Size()-1) / float64(cfg.Resolution-1)

	for y := 0; y < cfg.Resolution; y++ {
		v := float64(y) * scale
		for x := 0; x < cfg.Resolution; x++ {
			u := float64(x) * scale

			h := hm.Sample(u, v)
			if h < cfg.MinHeight || h > cfg.MaxHeight {
				continue
			}
			if slopes.At(u, v) > cfg.MaxSlopeAngle {
				continue
			}
			out.set(x, y, cfg.Density)
		}
	}

	return out
}
