package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/EternalMC/world-gen/internal/chunk"
	"github.com/EternalMC/world-gen/internal/noise"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	add := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf(format, args...))
	}

	if c.Generator.HeightScale < 0 {
		add("generator.height_scale must not be negative, got %g", c.Generator.HeightScale)
	}

	if len(c.Noise.Layers) == 0 {
		add("noise.layers must not be empty")
	}
	for i, l := range c.Noise.Layers {
		switch noise.Kind(l.Kind) {
		case noise.KindPerlin, noise.KindSimplex, noise.KindFractal:
		default:
			add("noise.layers[%d].kind %q is not one of perlin, simplex, fractal", i, l.Kind)
		}
		if l.Weight < 0 {
			add("noise.layers[%d].weight must not be negative, got %g", i, l.Weight)
		}
		if l.Frequency <= 0 {
			add("noise.layers[%d].frequency must be positive, got %g", i, l.Frequency)
		}
	}

	if perr := c.ErosionParams().Validate(); perr != nil {
		for _, e := range multierr.Errors(perr) {
			add("erosion: %w", e)
		}
	}
	if c.Erosion.RainDrops < 0 {
		add("erosion.rain_drops must not be negative, got %d", c.Erosion.RainDrops)
	}
	if c.Erosion.DropSize < 0 {
		add("erosion.drop_size must not be negative, got %g", c.Erosion.DropSize)
	}
	if c.Erosion.MaxTicks < 0 {
		add("erosion.max_ticks must not be negative, got %d", c.Erosion.MaxTicks)
	}
	if c.Erosion.RainCycles < 0 {
		add("erosion.rain_cycles must not be negative, got %d", c.Erosion.RainCycles)
	}

	if c.Pipeline.Workers < 1 {
		add("pipeline.workers must be at least 1, got %d", c.Pipeline.Workers)
	}
	if c.Pipeline.QueueSize < 1 {
		add("pipeline.queue_size must be at least 1, got %d", c.Pipeline.QueueSize)
	}
	if c.Pipeline.ViewRadius < 0 {
		add("pipeline.view_radius must not be negative, got %d", c.Pipeline.ViewRadius)
	}
	if n := len(c.Pipeline.LODDistances); n > chunk.MaxLOD+1 {
		add("pipeline.lod_distances has %d entries, at most %d allowed", n, chunk.MaxLOD+1)
	}
	for i, d := range c.Pipeline.LODDistances {
		if d < 0 || (i > 0 && d < c.Pipeline.LODDistances[i-1]) {
			add("pipeline.lod_distances must be ascending and non-negative, got %v", c.Pipeline.LODDistances)
			break
		}
	}

	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		add("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		add("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	return err
}
