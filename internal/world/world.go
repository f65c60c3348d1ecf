package world

import (
	"context"

	"go.uber.org/zap"

	"github.com/EternalMC/world-gen/internal/chunk"
)

// Options sizes the worker pool and the streamed area.
type Options struct {
	Workers      int
	QueueSize    int
	ViewRadius   int
	LODDistances []int
}

// World owns a build pipeline, from worker pool to streamer.
type World struct {
	*Streamer
	loader *chunk.Loader
}

// New starts opts.Workers workers building with builder. The workers stop
// when ctx is cancelled or the world is closed.
func New(ctx context.Context, builder chunk.ChunkBuilder, opts Options, log *zap.Logger) *World {
	pool := chunk.NewPool(ctx, builder, opts.Workers, opts.QueueSize, log)
	loader := chunk.NewLoader(pool, log)
	return &World{
		Streamer: NewStreamer(loader, opts.ViewRadius, opts.LODDistances, log),
		loader:   loader,
	}
}

// Chunk returns the loaded chunk at pos, if any.
func (w *World) Chunk(pos chunk.Pos) *chunk.Chunk {
	return w.loader.Chunk(pos)
}

// Stats returns the build counters.
func (w *World) Stats() chunk.BuildStats {
	return w.loader.Stats()
}

// Close stops the workers and waits for them to exit.
func (w *World) Close() error {
	return w.loader.Close()
}
