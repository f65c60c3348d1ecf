package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/EternalMC/world-gen/internal/world"
)

// cmdStream loads the view around a point with the configured pipeline and
// reports the build statistics, as the viewer would on its first frames.
func cmdStream(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stream", flag.ExitOnError)
	var opts common
	opts.register(fs)
	x := fs.Float64("x", 0, "Focus world X")
	y := fs.Float64("y", 0, "Focus world Y")
	radius := fs.Int("radius", -1, "View radius in chunks (-1 uses the config)")
	workers := fs.Int("workers", 0, "Build workers (0 uses the config)")
	timeout := fs.Duration("timeout", 5*time.Minute, "Give up after this long")
	fs.Parse(args)

	cfg, log, err := opts.setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if *radius >= 0 {
		cfg.Pipeline.ViewRadius = *radius
	}
	if *workers > 0 {
		cfg.Pipeline.Workers = *workers
	}

	builder, err := cfg.NewBuilder(log.Named("builder"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	w := world.New(ctx, builder, cfg.WorldOptions(), log.Named("world"))
	start := time.Now()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	failed := 0
	for {
		u := w.Update(*x, *y)
		for _, c := range u.Completed {
			if c.Err != nil {
				failed++
				fmt.Printf("failed  %-8s lod %d: %v\n", c.Pos, c.LOD, c.Err)
				continue
			}
			fmt.Printf("built   %-8s lod %d  %8s  %6d ticks\n",
				c.Pos, c.LOD, c.Chunk.BuildTime.Round(time.Millisecond), c.Chunk.Ticks)
		}
		if w.Pending() == 0 {
			break
		}

		select {
		case <-ctx.Done():
			_ = w.Close()
			return fmt.Errorf("streaming stopped with %d chunks pending: %w", w.Pending(), ctx.Err())
		case <-ticker.C:
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	stats := w.Stats()
	log.Debug("Build stats", zap.Object("stats", stats))

	fmt.Println()
	fmt.Printf("Elapsed:    %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("Completed:  %d\n", stats.Completed)
	fmt.Printf("Failed:     %d\n", failed)
	fmt.Printf("Submitted:  %d (rejected %d)\n", stats.Submitted, stats.Rejected)
	fmt.Printf("Build time: avg %s, min %s, max %s\n",
		stats.AverageBuildTime().Round(time.Millisecond),
		stats.MinBuildTime.Round(time.Millisecond),
		stats.MaxBuildTime.Round(time.Millisecond))
	return nil
}
