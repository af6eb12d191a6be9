package terrain

import "math"

// Grid is a square heightmap of normalized float values. Cells are addressed
// as (x, y) with y-major backing storage. Grids are written only during
// synthesis and read-only afterwards.
type Grid struct {
	size   int
	values []float64
}

func newGrid(size int) *Grid {
	return &Grid{size: size, values: make([]float64, size*size)}
}

// Size returns the number of samples per side.
func (g *Grid) Size() int {
	return g.size
}

// At returns the cell value. Indices outside the grid clamp to the border,
// since boundary sampling is routine for neighbor lookups.
func (g *Grid) At(x, y int) float64 {
	x = clampInt(x, 0, g.size-1)
	y = clampInt(y, 0, g.size-1)
	return g.values[y*g.size+x]
}

func (g *Grid) set(x, y int, v float64) {
	g.values[y*g.size+x] = v
}

// Sample bilinearly interpolates the grid at fractional cell coordinates.
// Coordinates outside [0, size-1] clamp to the border.
func (g *Grid) Sample(u, v float64) float64 {
	u = clampFloat(u, 0, float64(g.size-1))
	v = clampFloat(v, 0, float64(g.size-1))

	x0 := int(math.Floor(u))
	y0 := int(math.Floor(v))
	fx := u - float64(x0)
	fy := v - float64(y0)

	top := lerp(g.At(x0, y0), g.At(x0+1, y0), fx)
	bottom := lerp(g.At(x0, y0+1), g.At(x0+1, y0+1), fx)
	return lerp(top, bottom, fy)
}

// DetailGrid carries per-cell vegetation density counts on its own
// resolution, independent of the heightmap grid.
type DetailGrid struct {
	size   int
	values []int
}

func newDetailGrid(size int) *DetailGrid {
	return &DetailGrid{size: size, values: make([]int, size*size)}
}

// Size returns the number of samples per side.
func (d *DetailGrid) Size() int {
	return d.size
}

// At returns the density count at a cell, clamping out-of-range indices.
func (d *DetailGrid) At(x, y int) int {
	x = clampInt(x, 0, d.size-1)
	y = clampInt(y, 0, d.size-1)
	return d.values[y*d.size+x]
}

func (d *DetailGrid) set(x, y, v int) {
	d.values[y*d.size+x] = v
}

// Sample bilinearly interpolates density at fractional detail-grid
// coordinates, clamped to the grid.
func (d *DetailGrid) Sample(u, v float64) float64 {
	u = clampFloat(u, 0, float64(d.size-1))
	v = clampFloat(v, 0, float64(d.size-1))

	x0 := int(math.Floor(u))
	y0 := int(math.Floor(v))
	fx := u - float64(x0)
	fy := v - float64(y0)

	top := lerp(float64(d.At(x0, y0)), float64(d.At(x0+1, y0)), fx)
	bottom := lerp(float64(d.At(x0, y0+1)), float64(d.At(x0+1, y0+1)), fx)
	return lerp(top, bottom, fy)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// inverseLerp maps v from [a,b] to [0,1]. Callers must guard a==b.
func inverseLerp(a, b, v float64) float64 {
	return (v - a) / (b - a)
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
