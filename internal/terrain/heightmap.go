package terrain

import (
	"context"
	"log"
	"math"
	"runtime"
	"sync"

	"github.com/gghh2/Kingdoms/internal/config"
	"github.com/gghh2/Kingdoms/internal/curve"
	"github.com/gghh2/Kingdoms/internal/noisefield"
)

// lowlandFloor is the attenuation applied where the relief mask fully
// excludes mountains; masked-out cells keep a tenth of their relief.
const lowlandFloor = 0.1

// synthesizer builds the elevation grid in two passes: raw fractal heights
// with relief masking and a running min/max, then normalization, optional
// remapping and edge falloff toward the water plane. The first pass must
// finish completely before the second starts.
type synthesizer struct {
	cfg     *config.Config
	field   *noisefield.Field
	mask    *noisefield.Mask
	remap   curve.Curve
	falloff curve.Curve
}

func newSynthesizer(seed int64, cfg *config.Config) *synthesizer {
	return &synthesizer{
		cfg: cfg,
		field: noisefield.New(seed, noisefield.Params{
			Scale:       cfg.Noise.Scale,
			Octaves:     cfg.Noise.Octaves,
			Persistence: cfg.Noise.Persistence,
			Lacunarity:  cfg.Noise.Lacunarity,
			OffsetX:     cfg.Noise.OffsetX,
			OffsetY:     cfg.Noise.OffsetY,
		}),
		mask:    noisefield.NewMask(seed, cfg.Mountains.Scale),
		remap:   curve.New(cfg.Noise.HeightCurve),
		falloff: curve.New(cfg.Water.FalloffCurve),
	}
}

func (s *synthesizer) synthesize(ctx context.Context) (*Grid, error) {
	size := s.cfg.Grid.Resolution + 1
	raw := newGrid(size)

	minH, maxH, err := s.rawPass(ctx, raw)
	if err != nil {
		return nil, err
	}

	return s.finalize(raw, minH, maxH), nil
}

type rowResult struct {
	y      int
	values []float64
	err    error
}

// rawPass fills the grid with masked fractal heights row by row across a
// worker pool and reduces the global min and max.
func (s *synthesizer) rawPass(ctx context.Context, raw *Grid) (float64, float64, error) {
	size := raw.Size()
	cellW := s.cfg.Grid.Width / float64(size-1)
	cellL := s.cfg.Grid.Length / float64(size-1)
	threshold := 1 - s.cfg.Mountains.Density

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := s.workerCount(size)
	tasks := make(chan int, workers)
	results := make(chan rowResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range tasks {
				if err := ctx.Err(); err != nil {
					select {
					case results <- rowResult{err: err}:
					default:
					}
					return
				}

				values := make([]float64, size)
				worldY := float64(y) * cellL
				for x := 0; x < size; x++ {
					worldX := float64(x) * cellW
					h := s.field.Evaluate(worldX, worldY)
					if mask := s.mask.Evaluate(worldX, worldY); mask < threshold {
						h *= lerp(lowlandFloor, 1.0, mask/threshold)
					}
					values[x] = h
				}

				select {
				case results <- rowResult{y: y, values: values}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(tasks)
		for y := 0; y < size; y++ {
			select {
			case <-ctx.Done():
				return
			case tasks <- y:
			}
		}
	}()

	minH := math.Inf(1)
	maxH := math.Inf(-1)
	completed := 0
	nextLogPercent := 0

	for result := range results {
		if result.err != nil {
			cancel()
			return 0, 0, result.err
		}

		for x, v := range result.values {
			raw.set(x, result.y, v)
			if v < minH {
				minH = v
			}
			if v > maxH {
				maxH = v
			}
		}

		completed++
		progress := completed * 100 / size
		if progress >= nextLogPercent {
			log.Printf("heightmap %dx%d synthesis progress: %d%%", size, size, progress)
			nextLogPercent = ((progress / 10) + 1) * 10
		}
	}

	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	return minH, maxH, nil
}

// finalize normalizes raw heights against the pass-one extremes, applies
// the remap curve and blends grid borders toward the water plane.
func (s *synthesizer) finalize(raw *Grid, minH, maxH float64) *Grid {
	size := raw.Size()
	out := newGrid(size)
	waterLevel := s.cfg.WaterLevelNormalized()

	if maxH-minH < 1e-12 {
		log.Printf("heightmap %dx%d is flat, substituting water plane at %.3f", size, size, waterLevel)
		for i := range out.values {
			out.values[i] = waterLevel
		}
		return out
	}

	var wg sync.WaitGroup
	for y := 0; y < size; y++ {
		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			for x := 0; x < size; x++ {
				h := clamp01(inverseLerp(minH, maxH, raw.At(x, y)))
				if !s.remap.Empty() {
					h = clamp01(s.remap.Evaluate(h))
				}
				factor := s.edgeFactor(x, y, size)
				out.set(x, y, lerp(waterLevel, h, factor))
			}
		}(y)
	}
	wg.Wait()

	return out
}

// edgeFactor is 0 exactly on the grid border and 1 beyond the falloff
// distance, with the configured curve shaping the transition in between.
func (s *synthesizer) edgeFactor(x, y, size int) float64 {
	cellW := s.cfg.Grid.Width / float64(size-1)
	cellL := s.cfg.Grid.Length / float64(size-1)

	dist := math.Min(
		math.Min(float64(x)*cellW, float64(size-1-x)*cellW),
		math.Min(float64(y)*cellL, float64(size-1-y)*cellL),
	)
	if dist <= 0 {
		return 0
	}
	if s.cfg.Water.FalloffDistance <= 0 {
		return 1
	}
	t := dist / s.cfg.Water.FalloffDistance
	if t >= 1 {
		return 1
	}
	return clamp01(s.falloff.Evaluate(t))
}

func (s *synthesizer) workerCount(rows int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
