package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/EternalMC/world-gen/internal/chunk"
	"github.com/EternalMC/world-gen/internal/noise"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test generator defaults
	if cfg.Generator.Seed != 1337 {
		t.Errorf("expected seed 1337, got %d", cfg.Generator.Seed)
	}
	if cfg.Generator.HeightScale != 40 {
		t.Errorf("expected height scale 40, got %f", cfg.Generator.HeightScale)
	}

	// Test noise defaults
	if len(cfg.Noise.Layers) != 3 {
		t.Fatalf("expected 3 noise layers, got %d", len(cfg.Noise.Layers))
	}
	if cfg.Noise.Layers[0].Kind != "fractal" {
		t.Errorf("expected first layer fractal, got %s", cfg.Noise.Layers[0].Kind)
	}

	// Test erosion defaults
	if cfg.Erosion.TimeDelta != 0.005 {
		t.Errorf("expected time delta 0.005, got %f", cfg.Erosion.TimeDelta)
	}
	if cfg.Erosion.SedimentCapacity != 35 {
		t.Errorf("expected sediment capacity 35, got %f", cfg.Erosion.SedimentCapacity)
	}

	// Test pipeline defaults
	if cfg.Pipeline.Workers < 1 {
		t.Errorf("expected at least one worker, got %d", cfg.Pipeline.Workers)
	}
	if cfg.Pipeline.ViewRadius != 6 {
		t.Errorf("expected view radius 6, got %d", cfg.Pipeline.ViewRadius)
	}

	// Test viewer defaults
	if cfg.Viewer.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Viewer.Height)
	}
	if cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Viewer.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
generator:
  seed: 42
  height_scale: 80

noise:
  layers:
    - kind: perlin
      weight: 2
      frequency: 0.01
      octaves: 4

erosion:
  rain_drops: 1000
  time_delta: 0.01

pipeline:
  workers: 3
  queue_size: 8
  lod_distances: [1, 3]

viewer:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

logging:
  level: "debug"
  log_file: "terrain.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Generator.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Generator.Seed)
	}
	if cfg.Generator.HeightScale != 80 {
		t.Errorf("expected height scale 80, got %f", cfg.Generator.HeightScale)
	}

	if len(cfg.Noise.Layers) != 1 {
		t.Fatalf("file layers should replace defaults, got %d layers", len(cfg.Noise.Layers))
	}
	if cfg.Noise.Layers[0].Kind != "perlin" || cfg.Noise.Layers[0].Octaves != 4 {
		t.Errorf("unexpected layer %+v", cfg.Noise.Layers[0])
	}

	if cfg.Erosion.RainDrops != 1000 {
		t.Errorf("expected 1000 rain drops, got %d", cfg.Erosion.RainDrops)
	}
	if cfg.Erosion.TimeDelta != 0.01 {
		t.Errorf("expected time delta 0.01, got %f", cfg.Erosion.TimeDelta)
	}
	// Untouched keys keep their defaults
	if cfg.Erosion.SedimentCapacity != 35 {
		t.Errorf("expected default sediment capacity, got %f", cfg.Erosion.SedimentCapacity)
	}

	if cfg.Pipeline.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Pipeline.Workers)
	}
	if len(cfg.Pipeline.LODDistances) != 2 || cfg.Pipeline.LODDistances[1] != 3 {
		t.Errorf("expected lod distances [1 3], got %v", cfg.Pipeline.LODDistances)
	}

	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Viewer.Width)
	}
	if !cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Viewer.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "terrain.log" {
		t.Errorf("expected log file 'terrain.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
viewer:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFileValidates(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("pipeline:\n  workers: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "pipeline.workers") {
		t.Errorf("expected workers error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Noise.Layers = append(cfg.Noise.Layers, NoiseLayerConfig{Kind: "worley", Frequency: 0})
	cfg.Erosion.TimeDelta = 0
	cfg.Pipeline.QueueSize = 0
	cfg.Pipeline.LODDistances = []int{4, 2}
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}

	msg := err.Error()
	for _, want := range []string{
		`noise.layers[3].kind "worley"`,
		"noise.layers[3].frequency",
		"erosion: time delta",
		"pipeline.queue_size",
		"pipeline.lod_distances",
		`logging.level "loud"`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Erosion.GridDistanceY = 2
	cfg.Erosion.MaxTicks = 77

	params := cfg.ErosionParams()
	if params.GridDistance != [2]float64{1, 2} {
		t.Errorf("expected grid distance [1 2], got %v", params.GridDistance)
	}

	build := cfg.BuildParams()
	if build.MaxTicks != 77 || build.Erosion != params {
		t.Errorf("unexpected build params %+v", build)
	}

	layers, err := cfg.NoiseLayers()
	if err != nil {
		t.Fatalf("failed to build layers: %v", err)
	}
	if len(layers) != len(cfg.Noise.Layers) {
		t.Errorf("expected %d layers, got %d", len(cfg.Noise.Layers), len(layers))
	}

	cfg.Noise.Layers[1].Kind = "cellular"
	if _, err := cfg.NoiseLayers(); !errors.Is(err, noise.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestNewBuilder(t *testing.T) {
	cfg := Default()
	cfg.Erosion.RainCycles = 1
	cfg.Erosion.MaxTicks = 20

	b, err := cfg.NewBuilder(nil)
	if err != nil {
		t.Fatalf("failed to create builder: %v", err)
	}
	c, err := b.Build(chunk.Pos{X: 1, Y: -1}, 4)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if c.Heights.Size() != chunk.GridSize(4) {
		t.Errorf("expected grid size %d, got %d", chunk.GridSize(4), c.Heights.Size())
	}

	cfg.Noise.Layers[0].Kind = "voronoi"
	if _, err := cfg.NewBuilder(nil); !errors.Is(err, noise.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestWorldOptions(t *testing.T) {
	cfg := Default()
	cfg.Pipeline.Workers = 3
	cfg.Pipeline.LODDistances = []int{1, 2}

	opts := cfg.WorldOptions()
	if opts.Workers != 3 || opts.QueueSize != cfg.Pipeline.QueueSize || opts.ViewRadius != cfg.Pipeline.ViewRadius {
		t.Errorf("unexpected options %+v", opts)
	}
	if len(opts.LODDistances) != 2 || opts.LODDistances[1] != 2 {
		t.Errorf("expected lod distances [1 2], got %v", opts.LODDistances)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Point the user config dir somewhere empty
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("viewer:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "seed flag",
			setup: func() {
				*flagSeed = 99
			},
			verify: func(cfg *Config) {
				if cfg.Generator.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Generator.Seed)
				}
			},
			teardown: func() {
				*flagSeed = 0
			},
		},
		{
			name: "workers and radius flags",
			setup: func() {
				*flagWorkers = 5
				*flagRadius = 0
			},
			verify: func(cfg *Config) {
				if cfg.Pipeline.Workers != 5 {
					t.Errorf("expected 5 workers, got %d", cfg.Pipeline.Workers)
				}
				if cfg.Pipeline.ViewRadius != 0 {
					t.Errorf("expected radius 0, got %d", cfg.Pipeline.ViewRadius)
				}
			},
			teardown: func() {
				*flagWorkers = 0
				*flagRadius = -1
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Viewer.Width)
				}
				if cfg.Viewer.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Viewer.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
viewer:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Viewer.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Viewer.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Viewer.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Generator.Seed = 2024
	cfg.Noise.Layers = cfg.Noise.Layers[:1]
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Generator.Seed != 2024 {
		t.Errorf("expected seed 2024, got %d", loaded.Generator.Seed)
	}
	if len(loaded.Noise.Layers) != 1 {
		t.Errorf("expected 1 layer, got %d", len(loaded.Noise.Layers))
	}
}

func TestSaveToRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Erosion.TimeDelta = 0
	if err := cfg.SaveTo(path); err == nil {
		t.Fatal("expected error for invalid config")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("invalid config must not be written, stat: %v", err)
	}
}

func TestSaveToReplacesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("generator:\n  seed: 1\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	cfg := Default()
	cfg.Generator.Seed = 77
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Generator.Seed != 77 {
		t.Errorf("expected seed 77, got %d", loaded.Generator.Seed)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only config.yaml in %s, got %d entries", dir, len(entries))
	}
}

func TestSaveUsesUserConfigDir(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Generator.Seed = 9
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if path != UserConfigPath() {
		t.Errorf("expected %s, got %s", UserConfigPath(), path)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Generator.Seed != 9 {
		t.Errorf("expected seed 9, got %d", loaded.Generator.Seed)
	}
}

func TestMarshalIndent(t *testing.T) {
	data, err := Default().Marshal()
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), "generator:\n  seed:") {
		t.Errorf("expected two space indented generator section, got:\n%s", data)
	}
}
