// terrainctl is a CLI utility for generating and inspecting terrain chunks
// without a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/EternalMC/world-gen/internal/config"
	"github.com/EternalMC/world-gen/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch command {
	case "config":
		err = cmdConfig(args)
	case "build", "b":
		err = cmdBuild(args)
	case "erode":
		err = cmdErode(args)
	case "stream":
		err = cmdStream(ctx, args)
	case "preview", "p":
		err = cmdPreview(ctx, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terrainctl - procedural terrain utility

Usage:
  terrainctl <command> [options]

Commands:
  config  [-o file | -save]   Print or write the effective configuration
  build   -x X -y Y -lod L    Build one chunk and print its statistics
  erode   -x X -y Y -lod L    Run erosion on one chunk and trace the water
  stream  -x X -y Y           Stream the view around a point headless
  preview -o map.png          Render a region of chunks to an image

Common options:
  -config <file>  Config file (default: search standard locations)
  -seed <n>       Override the world seed
  -v              Debug logging

Examples:
  terrainctl config -seed 7 -save
  terrainctl build -x 3 -y -2 -lod 1
  terrainctl erode -ticks 500 -every 50
  terrainctl stream -radius 4 -workers 8
  terrainctl preview -n 8 -lod 2 -o region.bmp`)
}

// common holds the options every command accepts.
type common struct {
	configPath string
	seed       int64
	verbose    bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Path to config file")
	fs.Int64Var(&c.seed, "seed", 0, "World seed (0 keeps the configured seed)")
	fs.BoolVar(&c.verbose, "v", false, "Enable debug logging")
}

// setup loads the configuration and builds a logger writing to stderr so
// command output stays clean on stdout.
func (c *common) setup() (*config.Config, *zap.Logger, error) {
	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(c.configPath); err != nil {
			return nil, nil, err
		}
	}
	if c.seed != 0 {
		cfg.Generator.Seed = c.seed
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		Console:       true,
		ConsoleOutput: zapcore.Lock(os.Stderr),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	var opts common
	opts.register(fs)
	output := fs.String("o", "", "Write the config to this file instead of stdout")
	save := fs.Bool("save", false, "Write the config to the user config directory")
	fs.Parse(args)

	cfg, _, err := opts.setup()
	if err != nil {
		return err
	}

	switch {
	case *save:
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", path)
	case *output != "":
		if err := cfg.SaveTo(*output); err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", *output)
	default:
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	return nil
}
