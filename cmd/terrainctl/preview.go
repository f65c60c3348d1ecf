package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/EternalMC/world-gen/internal/chunk"
	"github.com/EternalMC/world-gen/internal/engine/debug"
	"github.com/EternalMC/world-gen/internal/engine/lighting"
	"github.com/EternalMC/world-gen/internal/terrain"
)

// cmdPreview builds a square of chunks and writes them as one image.
func cmdPreview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	var opts common
	opts.register(fs)
	x0 := fs.Int("x", 0, "First chunk X")
	y0 := fs.Int("y", 0, "First chunk Y")
	n := fs.Int("n", 4, "Chunks per side")
	lod := fs.Int("lod", 2, "Level of detail")
	gray := fs.Bool("gray", false, "Write raw heights as grayscale instead of shaded colors")
	out := fs.String("o", "preview.png", "Output image (.png or .bmp)")
	fs.Parse(args)

	if *n < 1 {
		return fmt.Errorf("region must be at least one chunk, got %d", *n)
	}
	if chunk.GridSize(*lod) < 2 {
		return fmt.Errorf("lod %d leaves no samples to draw", *lod)
	}

	cfg, log, err := opts.setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	builder, err := cfg.NewBuilder(log)
	if err != nil {
		return err
	}

	tiles := make([][]*terrain.HeightMap, *n)
	for j := range tiles {
		tiles[j] = make([]*terrain.HeightMap, *n)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Pipeline.Workers, runtime.NumCPU()))

	var mu sync.Mutex
	built := 0
	total := *n * *n
	for j := range *n {
		for i := range *n {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				c, err := builder.Build(chunk.Pos{X: *x0 + i, Y: *y0 + j}, *lod)
				if err != nil {
					return err
				}
				tiles[j][i] = c.Heights

				mu.Lock()
				built++
				fmt.Printf("\rBuilt %d/%d chunks", built, total)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		fmt.Println()
		return err
	}
	fmt.Println()

	return writeHeights(*out, stitch(tiles), !*gray)
}

// stitch joins a square grid of equally sized tiles whose edges overlap by
// one sample into a single map. tiles[j][i] is the tile at column i, row j.
func stitch(tiles [][]*terrain.HeightMap) *terrain.HeightMap {
	first := tiles[0][0]
	step := first.Size() - 1

	size := len(tiles)*step + 1
	hm := terrain.NewHeightMap(size, first.Resolution())
	for j, row := range tiles {
		for i, t := range row {
			for y := range t.Size() {
				for x := range t.Size() {
					hm.Set(i*step+x, j*step+y, t.Get(x, y))
				}
			}
		}
	}
	return hm
}

func writeHeights(path string, hm *terrain.HeightMap, shaded bool) error {
	var img image.Image
	if shaded {
		img = terrain.Shaded(hm, lighting.DefaultSun().Direction())
	} else {
		img = terrain.Grayscale(hm)
	}
	if err := debug.Save(path, img); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
