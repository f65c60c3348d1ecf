// Package config handles generator configuration loading and management.
package config

import (
	"runtime"
)

// Config holds all generator and viewer settings.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Noise     NoiseConfig     `yaml:"noise"`
	Erosion   ErosionConfig   `yaml:"erosion"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GeneratorConfig holds the world seed and height scaling.
type GeneratorConfig struct {
	Seed        int64   `yaml:"seed"`
	HeightScale float64 `yaml:"height_scale"`
	BaseHeight  float64 `yaml:"base_height"`
}

// NoiseConfig lists the noise layers summed into raw terrain.
type NoiseConfig struct {
	Layers []NoiseLayerConfig `yaml:"layers"`
}

// NoiseLayerConfig describes one noise layer.
type NoiseLayerConfig struct {
	Kind        string  `yaml:"kind"` // perlin, simplex or fractal
	Weight      float64 `yaml:"weight"`
	Frequency   float64 `yaml:"frequency"`
	Octaves     int     `yaml:"octaves,omitempty"`
	Persistence float64 `yaml:"persistence,omitempty"`
	Alpha       float64 `yaml:"alpha,omitempty"`
	Beta        float64 `yaml:"beta,omitempty"`
}

// ErosionConfig holds the pipe model constants and the rain schedule.
type ErosionConfig struct {
	Gravity          float64 `yaml:"gravity"`
	PipeArea         float64 `yaml:"pipe_area"`
	PipeLength       float64 `yaml:"pipe_length"`
	GridDistanceX    float64 `yaml:"grid_distance_x"`
	GridDistanceY    float64 `yaml:"grid_distance_y"`
	TimeDelta        float64 `yaml:"time_delta"`
	SedimentCapacity float64 `yaml:"sediment_capacity"`
	Dissolving       float64 `yaml:"dissolving"`
	Deposition       float64 `yaml:"deposition"`
	Evaporation      float64 `yaml:"evaporation"`
	MinWater         float64 `yaml:"min_water"`
	VelocityEpsilon  float64 `yaml:"velocity_epsilon"`

	RainDrops  int     `yaml:"rain_drops"`
	DropSize   float64 `yaml:"drop_size"`
	MaxTicks   int     `yaml:"max_ticks"`
	RainCycles int     `yaml:"rain_cycles"`
}

// PipelineConfig holds worker pool and streaming settings.
type PipelineConfig struct {
	Workers    int `yaml:"workers"`
	QueueSize  int `yaml:"queue_size"`
	ViewRadius int `yaml:"view_radius"` // in chunks
	// LODDistances[i] is the farthest ring, in chunks, built at lod i.
	LODDistances []int `yaml:"lod_distances"`
}

// ViewerConfig holds display settings of terrainview.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	Wireframe  bool `yaml:"wireframe"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Seed:        1337,
			HeightScale: 40,
			BaseHeight:  0,
		},
		Noise: NoiseConfig{
			Layers: []NoiseLayerConfig{
				{Kind: "fractal", Weight: 1, Frequency: 0.004, Octaves: 5, Persistence: 0.5},
				{Kind: "perlin", Weight: 0.3, Frequency: 0.02, Alpha: 2, Beta: 2, Octaves: 3},
				{Kind: "simplex", Weight: 0.1, Frequency: 0.08},
			},
		},
		Erosion: ErosionConfig{
			Gravity:          1,
			PipeArea:         0.001,
			PipeLength:       1,
			GridDistanceX:    1,
			GridDistanceY:    1,
			TimeDelta:        0.005,
			SedimentCapacity: 35,
			Dissolving:       0.0012,
			Deposition:       0.0012,
			Evaporation:      0.001,
			MinWater:         1e-6,
			VelocityEpsilon:  1e-9,
			RainDrops:        400,
			DropSize:         0.5,
			MaxTicks:         200,
			RainCycles:       4,
		},
		Pipeline: PipelineConfig{
			Workers:      max(runtime.NumCPU()-1, 1),
			QueueSize:    64,
			ViewRadius:   6,
			LODDistances: []int{2, 4, 6},
		},
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
