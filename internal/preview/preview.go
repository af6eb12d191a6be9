// Package preview renders generated terrain grids to PNG images for quick
// visual inspection. The exporters are diagnostics only; nothing in the
// pipeline reads the images back.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gghh2/Kingdoms/internal/curve"
	"github.com/gghh2/Kingdoms/internal/terrain"
)

// heightGradient colors normalized elevation from deep water through sand,
// grass and rock up to snow.
var heightGradient = curve.NewGradient(
	curve.Stop{T: 0.0, Color: color.NRGBA{R: 16, G: 42, B: 94, A: 255}},
	curve.Stop{T: 0.3, Color: color.NRGBA{R: 42, G: 96, B: 156, A: 255}},
	curve.Stop{T: 0.34, Color: color.NRGBA{R: 214, G: 196, B: 138, A: 255}},
	curve.Stop{T: 0.5, Color: color.NRGBA{R: 64, G: 134, B: 62, A: 255}},
	curve.Stop{T: 0.75, Color: color.NRGBA{R: 112, G: 104, B: 96, A: 255}},
	curve.Stop{T: 1.0, Color: color.NRGBA{R: 244, G: 246, B: 250, A: 255}},
)

// bandColors index the four material bands for the weight preview.
var bandColors = [4]color.NRGBA{
	{R: 214, G: 196, B: 138, A: 255}, // sand
	{R: 64, G: 134, B: 62, A: 255},   // grass
	{R: 112, G: 104, B: 96, A: 255},  // stone
	{R: 244, G: 246, B: 250, A: 255}, // snow
}

// WriteHeightmapPNG renders the elevation grid through the height gradient.
func WriteHeightmapPNG(res *terrain.Result, path string) error {
	hm := res.Heightmap()
	size := hm.Size()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, heightGradient.At(hm.At(x, y)))
		}
	}

	return writePNG(img, path)
}

// WriteMaterialPNG blends the four band colors by their per-cell weights.
func WriteMaterialPNG(res *terrain.Result, path string) error {
	weights := res.MaterialWeights()
	size := weights.Size()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			w := weights.At(x, y)
			var r, g, b float64
			for i, c := range bandColors {
				r += w[i] * float64(c.R)
				g += w[i] * float64(c.G)
				b += w[i] * float64(c.B)
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(r + 0.5), G: uint8(g + 0.5), B: uint8(b + 0.5), A: 255})
		}
	}

	return writePNG(img, path)
}

// WriteVegetationPNG overlays vegetation density in green on a dimmed
// elevation render, at the detail grid's own resolution.
func WriteVegetationPNG(res *terrain.Result, path string) error {
	detail := res.VegetationDensity()
	size := detail.Size()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	maxDensity := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if d := detail.At(x, y); d > maxDensity {
				maxDensity = d
			}
		}
	}

	hmScale := float64(res.Heightmap().Size()-1) / float64(size-1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			base := heightGradient.At(res.HeightAt(float64(x)*hmScale, float64(y)*hmScale))
			out := color.NRGBA{R: base.R / 3, G: base.G / 3, B: base.B / 3, A: 255}
			if maxDensity > 0 {
				strength := float64(detail.At(x, y)) / float64(maxDensity)
				out.G = uint8(float64(out.G) + strength*float64(255-out.G) + 0.5)
			}
			img.SetNRGBA(x, y, out)
		}
	}

	return writePNG(img, path)
}

func writePNG(img image.Image, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preview directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close preview: %w", err)
	}
	return nil
}
