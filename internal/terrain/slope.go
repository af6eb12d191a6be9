package terrain

import (
	"math"

	"github.com/gghh2/Kingdoms/internal/config"
)

// slopeDirections are the eight compass directions sampled around a cell.
var slopeDirections = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// slopeEstimator derives local terrain angle from the finished heightmap by
// sampling heights around a point at a fixed radius. The same estimator
// backs classification, vegetation gating and the public accessor so all
// consumers agree on steepness.
type slopeEstimator struct {
	grid         *Grid
	radius       float64 // in cells
	average      bool
	cellWidth    float64
	cellLength   float64
	maxElevation float64
}

func newSlopeEstimator(grid *Grid, cfg *config.Config) *slopeEstimator {
	res := float64(grid.Size() - 1)
	return &slopeEstimator{
		grid:         grid,
		radius:       float64(cfg.Classification.SlopeRadius),
		average:      cfg.Classification.SlopeMode == config.SlopeModeAverage,
		cellWidth:    cfg.Grid.Width / res,
		cellLength:   cfg.Grid.Length / res,
		maxElevation: cfg.Grid.MaxElevation,
	}
}

// At returns the slope in degrees at fractional grid coordinates.
// Coordinates outside the grid clamp to the border first, so an
// out-of-range query reads the border cell's slope rather than a flat
// degenerate neighborhood.
func (e *slopeEstimator) At(u, v float64) float64 {
	u = clampFloat(u, 0, float64(e.grid.Size()-1))
	v = clampFloat(v, 0, float64(e.grid.Size()-1))
	base := e.grid.Sample(u, v)

	var total, steepest float64
	for _, dir := range slopeDirections {
		du := dir[0] * e.radius
		dv := dir[1] * e.radius
		neighbor := e.grid.Sample(u+du, v+dv)

		rise := math.Abs(neighbor-base) * e.maxElevation
		run := math.Hypot(du*e.cellWidth, dv*e.cellLength)
		if run <= 0 {
			continue
		}
		angle := math.Atan2(rise, run) * 180 / math.Pi
		total += angle
		if angle > steepest {
			steepest = angle
		}
	}

	if e.average {
		return total / float64(len(slopeDirections))
	}
	return steepest
}
