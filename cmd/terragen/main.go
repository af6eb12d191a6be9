package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	"github.com/gghh2/Kingdoms/internal/config"
	"github.com/gghh2/Kingdoms/internal/preview"
	"github.com/gghh2/Kingdoms/internal/terrain"
)

func main() {
	var (
		cfgPath string
		seed    int64
		outDir  string
	)
	flag.StringVar(&cfgPath, "config", "", "path to terrain configuration file (json or yaml)")
	flag.Int64Var(&seed, "seed", 0, "world seed; overrides the config seed when non-zero")
	flag.StringVar(&outDir, "out", "", "directory for PNG previews; previews are skipped when empty")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if seed == 0 {
		seed = cfg.Seed
	}

	res, err := terrain.Generate(context.Background(), seed, cfg)
	if err != nil {
		log.Fatalf("generate terrain: %v", err)
	}

	logSummary(res)

	if outDir == "" {
		return
	}
	previews := []struct {
		name  string
		write func(*terrain.Result, string) error
	}{
		{"heightmap.png", preview.WriteHeightmapPNG},
		{"materials.png", preview.WriteMaterialPNG},
		{"vegetation.png", preview.WriteVegetationPNG},
	}
	for _, p := range previews {
		path := filepath.Join(outDir, p.name)
		if err := p.write(res, path); err != nil {
			log.Fatalf("write %s: %v", p.name, err)
		}
		log.Printf("wrote %s", path)
	}
}

func logSummary(res *terrain.Result) {
	hm := res.Heightmap()
	size := hm.Size()
	cfg := res.Config()
	water := cfg.WaterLevelNormalized()

	submerged := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if hm.At(x, y) <= water {
				submerged++
			}
		}
	}

	detail := res.VegetationDensity()
	planted := 0
	for y := 0; y < detail.Size(); y++ {
		for x := 0; x < detail.Size(); x++ {
			if detail.At(x, y) > 0 {
				planted++
			}
		}
	}

	total := size * size
	log.Printf("seed %d: %dx%d tile, %.1f%% at or below water level, %d/%d vegetation cells planted",
		res.Seed(), size, size, float64(submerged)*100/float64(total), planted, detail.Size()*detail.Size())
}
