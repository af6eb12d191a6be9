package noisefield

import (
	perlin "github.com/aquilax/go-perlin"
)

// maskSeedOffset keeps the relief mask decorrelated from the elevation
// field while still deriving from the same world seed.
const maskSeedOffset = 0x51ab3

// Mask is a single large-scale noise layer in [0,1] used to select which
// regions of the tile keep full fractal relief. Immutable and safe for
// concurrent use.
type Mask struct {
	perlin *perlin.Perlin
	scale  float64
}

// NewMask builds the relief mask for the seed at the given world scale.
func NewMask(seed int64, scale float64) *Mask {
	if scale <= 0 {
		scale = 1e-4
	}
	return &Mask{
		perlin: perlin.NewPerlin(2, 2, 3, seed+maskSeedOffset),
		scale:  scale,
	}
}

// Evaluate returns the mask value at (x, y), clamped to [0,1].
func (m *Mask) Evaluate(x, y float64) float64 {
	v := (m.perlin.Noise2D(x/m.scale, y/m.scale) + 1) * 0.5
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
