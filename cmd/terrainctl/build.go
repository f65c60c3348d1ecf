package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/EternalMC/world-gen/internal/chunk"
	"github.com/EternalMC/world-gen/internal/erosion"
)

func cmdBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	var opts common
	opts.register(fs)
	x := fs.Int("x", 0, "Chunk X")
	y := fs.Int("y", 0, "Chunk Y")
	lod := fs.Int("lod", 0, "Level of detail")
	out := fs.String("o", "", "Write the eroded height map to an image (.png or .bmp)")
	fs.Parse(args)

	cfg, log, err := opts.setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	builder, err := cfg.NewBuilder(log)
	if err != nil {
		return err
	}

	pos := chunk.Pos{X: *x, Y: *y}
	c, err := builder.Build(pos, *lod)
	if err != nil {
		return err
	}

	lo, hi := c.Heights.MinMax()
	fmt.Printf("Chunk:      %s (lod %d)\n", c.Pos, c.LOD)
	fmt.Printf("Grid:       %dx%d, %d units apart\n", c.Heights.Size(), c.Heights.Size(), c.Heights.Resolution())
	fmt.Printf("Heights:    %.2f .. %.2f\n", lo, hi)
	fmt.Printf("Ticks:      %d\n", c.Ticks)
	fmt.Printf("Warnings:   %d\n", c.Warnings)
	fmt.Printf("Triangles:  %d\n", c.Mesh.TriangleCount())
	fmt.Printf("Build time: %s\n", c.BuildTime.Round(time.Microsecond))

	if *out != "" {
		if err := writeHeights(*out, c.Heights, false); err != nil {
			return err
		}
		fmt.Printf("Image:      %s\n", *out)
	}
	return nil
}

// cmdErode runs the erosion of one chunk step by step and reports the
// water and sediment budget, which is handy when tuning constants.
func cmdErode(args []string) error {
	fs := flag.NewFlagSet("erode", flag.ExitOnError)
	var opts common
	opts.register(fs)
	x := fs.Int("x", 0, "Chunk X")
	y := fs.Int("y", 0, "Chunk Y")
	lod := fs.Int("lod", 0, "Level of detail")
	drops := fs.Int("drops", 0, "Rain drops (0 uses the configured amount)")
	ticks := fs.Int("ticks", 0, "Tick budget (0 uses the configured budget)")
	every := fs.Int("every", 25, "Report every N ticks")
	fs.Parse(args)

	if *lod < 0 || *lod > chunk.MaxLOD {
		return fmt.Errorf("%w: %d", chunk.ErrInvalidLOD, *lod)
	}
	if *every < 1 {
		*every = 1
	}

	cfg, log, err := opts.setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	params := cfg.ErosionParams()
	if err := params.Validate(); err != nil {
		return err
	}
	if *drops <= 0 {
		*drops = cfg.Erosion.RainDrops
	}
	if *ticks <= 0 {
		*ticks = cfg.Erosion.MaxTicks
	}

	architect, err := cfg.NewArchitect()
	if err != nil {
		return err
	}
	pos := chunk.Pos{X: *x, Y: *y}
	raw := architect.Build(pos, *lod)

	sim := erosion.New(raw, rand.New(rand.NewSource(cfg.Generator.Seed)), params)
	sim.Rain(*drops, cfg.Erosion.DropSize)

	fmt.Printf("%6s  %12s  %12s  %8s\n", "tick", "water", "sediment", "warnings")
	report := func(tick int) {
		fmt.Printf("%6d  %12.6f  %12.6f  %8d\n", tick, sim.TotalWater(), sim.TotalSediment(), sim.Warnings())
	}
	report(0)

	done := 0
	for done < *ticks && sim.HasWater() {
		n := min(*every, *ticks-done)
		done += sim.Simulate(n)
		report(done)
		if !sim.HasWater() {
			break
		}
	}

	eroded := sim.Export()
	var moved float64
	for j := range raw.Size() {
		for i := range raw.Size() {
			d := float64(eroded.Get(i, j) - raw.Get(i, j))
			if d < 0 {
				d = -d
			}
			moved += d
		}
	}
	fmt.Printf("\nTicks run:      %d\n", done)
	fmt.Printf("Terrain moved:  %.6f\n", moved)
	return nil
}
