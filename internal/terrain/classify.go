package terrain

import (
	"sync"
)

// Material bands, from lowest to highest terrain.
const (
	BandSand = iota
	BandGrass
	BandStone
	BandSnow
	bandCount
)

// MaterialWeights are per-cell blend weights across the four surface
// materials. Weights are non-negative and sum to 1.
type MaterialWeights [bandCount]float64

// normalized rescales the weights to sum to exactly 1, defending against
// floating-point drift in blends.
func (w MaterialWeights) normalized() MaterialWeights {
	var sum float64
	for _, v := range w {
		sum += v
	}
	if sum <= 0 {
		return MaterialWeights{1, 0, 0, 0}
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// WeightGrid stores material weights per heightmap cell.
type WeightGrid struct {
	size  int
	cells []MaterialWeights
}

func newWeightGrid(size int) *WeightGrid {
	return &WeightGrid{size: size, cells: make([]MaterialWeights, size*size)}
}

// Size returns the number of samples per side.
func (w *WeightGrid) Size() int {
	return w.size
}

// At returns the weights at a cell, clamping out-of-range indices.
func (w *WeightGrid) At(x, y int) MaterialWeights {
	x = clampInt(x, 0, w.size-1)
	y = clampInt(y, 0, w.size-1)
	return w.cells[y*w.size+x]
}

// Sample bilinearly blends the weights of the four surrounding cells and
// renormalizes the result.
func (w *WeightGrid) Sample(u, v float64) MaterialWeights {
	u = clampFloat(u, 0, float64(w.size-1))
	v = clampFloat(v, 0, float64(w.size-1))

	x0 := int(u)
	y0 := int(v)
	fx := u - float64(x0)
	fy := v - float64(y0)

	var out MaterialWeights
	a := w.At(x0, y0)
	b := w.At(x0+1, y0)
	c := w.At(x0, y0+1)
	d := w.At(x0+1, y0+1)
	for i := 0; i < bandCount; i++ {
		top := lerp(a[i], b[i], fx)
		bottom := lerp(c[i], d[i], fx)
		out[i] = lerp(top, bottom, fy)
	}
	return out.normalized()
}

// classifyCell maps a normalized height and slope to material weights.
// Steep cells become pure stone regardless of height; otherwise the height
// falls into one of four bands with linear transition zones between sand
// and grass and between stone and snow.
func classifyCell(h, slope float64, thresholds [4]float64, slopeOverride float64) MaterialWeights {
	if slope > slopeOverride {
		return MaterialWeights{0, 0, 1, 0}
	}

	switch {
	case h < thresholds[0]:
		return MaterialWeights{1, 0, 0, 0}
	case h < thresholds[1]:
		f := inverseLerp(thresholds[0], thresholds[1], h)
		return MaterialWeights{1 - f, f, 0, 0}.normalized()
	case h < thresholds[2]:
		return MaterialWeights{0, 1, 0, 0}
	case h < thresholds[3]:
		f := inverseLerp(thresholds[2], thresholds[3], h)
		return MaterialWeights{0, 0, 1 - f, f}.normalized()
	default:
		// The stone-to-snow ramp reaches pure snow at the last breakpoint
		// and clamps there for the remainder of the height range.
		return MaterialWeights{0, 0, 0, 1}
	}
}

// classifyGrid evaluates material weights for every heightmap cell. Cells
// are independent, so rows run in parallel.
func classifyGrid(hm *Grid, slopes *slopeEstimator, thresholds [4]float64, slopeOverride float64) *WeightGrid {
	size := hm.Size()
	out := newWeightGrid(size)

	var wg sync.WaitGroup
	for y := 0; y < size; y++ {
		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			for x := 0; x < size; x++ {
				slope := slopes.At(float64(x), float64(y))
				out.cells[y*size+x] = classifyCell(hm.At(x, y), slope, thresholds, slopeOverride)
			}
		}(y)
	}
	wg.Wait()

	return out
}
