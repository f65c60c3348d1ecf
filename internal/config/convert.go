package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/EternalMC/world-gen/internal/chunk"
	"github.com/EternalMC/world-gen/internal/erosion"
	"github.com/EternalMC/world-gen/internal/noise"
	"github.com/EternalMC/world-gen/internal/world"
)

// ErosionParams returns the simulation constants.
func (c *Config) ErosionParams() erosion.Params {
	e := c.Erosion
	return erosion.Params{
		Gravity:          e.Gravity,
		PipeArea:         e.PipeArea,
		PipeLength:       e.PipeLength,
		GridDistance:     [2]float64{e.GridDistanceX, e.GridDistanceY},
		TimeDelta:        e.TimeDelta,
		SedimentCapacity: e.SedimentCapacity,
		Dissolving:       e.Dissolving,
		Deposition:       e.Deposition,
		Evaporation:      e.Evaporation,
		MinWater:         e.MinWater,
		VelocityEpsilon:  e.VelocityEpsilon,
	}
}

// BuildParams returns the per-chunk erosion schedule.
func (c *Config) BuildParams() chunk.BuildParams {
	return chunk.BuildParams{
		Erosion:    c.ErosionParams(),
		RainDrops:  c.Erosion.RainDrops,
		DropSize:   c.Erosion.DropSize,
		MaxTicks:   c.Erosion.MaxTicks,
		RainCycles: c.Erosion.RainCycles,
	}
}

// ArchitectConfig returns the height scaling of raw terrain.
func (c *Config) ArchitectConfig() chunk.ArchitectConfig {
	return chunk.ArchitectConfig{
		HeightScale: c.Generator.HeightScale,
		BaseHeight:  c.Generator.BaseHeight,
	}
}

// NoiseLayers builds the configured layers. Each layer gets its own seed
// derived from the world seed so identical layers do not correlate.
func (c *Config) NoiseLayers() ([]noise.Layer, error) {
	layers := make([]noise.Layer, 0, len(c.Noise.Layers))
	for i, l := range c.Noise.Layers {
		layer, err := noise.NewLayer(noise.Spec{
			Kind:        noise.Kind(l.Kind),
			Weight:      l.Weight,
			Frequency:   l.Frequency,
			Octaves:     l.Octaves,
			Persistence: l.Persistence,
			Alpha:       l.Alpha,
			Beta:        l.Beta,
		}, c.Generator.Seed+int64(i))
		if err != nil {
			return nil, fmt.Errorf("noise layer %d: %w", i, err)
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

// NewArchitect builds the raw terrain sampler.
func (c *Config) NewArchitect() (*chunk.Architect, error) {
	layers, err := c.NoiseLayers()
	if err != nil {
		return nil, err
	}
	return chunk.NewArchitect(c.ArchitectConfig(), layers...), nil
}

// NewBuilder wires the architect and the erosion schedule into a chunk
// builder.
func (c *Config) NewBuilder(log *zap.Logger) (*chunk.Builder, error) {
	architect, err := c.NewArchitect()
	if err != nil {
		return nil, err
	}
	return chunk.NewBuilder(architect, c.BuildParams(), c.Generator.Seed, log), nil
}

// WorldOptions returns the pool and streaming settings.
func (c *Config) WorldOptions() world.Options {
	p := c.Pipeline
	return world.Options{
		Workers:      p.Workers,
		QueueSize:    p.QueueSize,
		ViewRadius:   p.ViewRadius,
		LODDistances: p.LODDistances,
	}
}
