// Package curve provides small pure evaluators for keyframed value curves
// and color gradients. Both are standalone replacements for engine-side
// animation curves: a handful of keyframes, linear interpolation between
// them, clamped outside the keyed domain.
package curve

import (
	"image/color"
	"sort"
)

// Keyframe is a single (time, value) pair on a Curve.
type Keyframe struct {
	T float64 `json:"t" yaml:"t"`
	V float64 `json:"v" yaml:"v"`
}

// Curve is a piecewise-linear mapping built from keyframes. The zero value
// is an empty curve, which evaluates as identity.
type Curve struct {
	keys []Keyframe
}

// New builds a curve from keyframes. Keys are sorted by T; the input slice
// is not retained.
func New(keys []Keyframe) Curve {
	if len(keys) == 0 {
		return Curve{}
	}
	sorted := make([]Keyframe, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })
	return Curve{keys: sorted}
}

// Empty reports whether the curve has no keyframes.
func (c Curve) Empty() bool {
	return len(c.keys) == 0
}

// Evaluate returns the curve value at t. An empty curve is the identity
// mapping. Outside the keyed domain the boundary keyframe value is returned.
func (c Curve) Evaluate(t float64) float64 {
	if len(c.keys) == 0 {
		return t
	}
	if t <= c.keys[0].T {
		return c.keys[0].V
	}
	last := c.keys[len(c.keys)-1]
	if t >= last.T {
		return last.V
	}
	idx := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].T > t })
	lo, hi := c.keys[idx-1], c.keys[idx]
	span := hi.T - lo.T
	if span <= 0 {
		return hi.V
	}
	frac := (t - lo.T) / span
	return lo.V + frac*(hi.V-lo.V)
}

// Stop anchors a color at a position along a Gradient.
type Stop struct {
	T     float64
	Color color.NRGBA
}

// Gradient maps [0,1] to colors by linear channel interpolation between
// stops. Positions outside the stop range clamp to the boundary stop.
type Gradient struct {
	stops []Stop
}

// NewGradient builds a gradient from stops. Stops are sorted by position.
func NewGradient(stops ...Stop) Gradient {
	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })
	return Gradient{stops: sorted}
}

// At returns the gradient color at position t.
func (g Gradient) At(t float64) color.NRGBA {
	if len(g.stops) == 0 {
		return color.NRGBA{A: 255}
	}
	if t <= g.stops[0].T {
		return g.stops[0].Color
	}
	last := g.stops[len(g.stops)-1]
	if t >= last.T {
		return last.Color
	}
	idx := sort.Search(len(g.stops), func(i int) bool { return g.stops[i].T > t })
	lo, hi := g.stops[idx-1], g.stops[idx]
	span := hi.T - lo.T
	if span <= 0 {
		return hi.Color
	}
	frac := (t - lo.T) / span
	return color.NRGBA{
		R: lerpChannel(lo.Color.R, hi.Color.R, frac),
		G: lerpChannel(lo.Color.G, hi.Color.G, frac),
		B: lerpChannel(lo.Color.B, hi.Color.B, frac),
		A: lerpChannel(lo.Color.A, hi.Color.A, frac),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + t*(float64(b)-float64(a)) + 0.5)
}
