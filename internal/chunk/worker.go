package chunk

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/EternalMC/world-gen/internal/logger"
)

// ChunkBuilder produces a chunk. *Builder is the production implementation.
type ChunkBuilder interface {
	Build(pos Pos, lod int) (*Chunk, error)
}

// Job asks a worker to build one chunk. ID lets the loader match the
// result with the request that caused it.
type Job struct {
	Pos Pos
	LOD int
	ID  uint64
}

// EventKind tells what happened to a job.
type EventKind int

const (
	EventStarted EventKind = iota
	EventDone
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventDone:
		return "done"
	}
	return "unknown"
}

// Event reports progress of a job from a worker. Done events carry either
// Chunk or Err.
type Event struct {
	Kind     EventKind
	Job      Job
	Chunk    *Chunk
	Err      error
	Duration time.Duration
}

// Worker runs builds pulled from a job channel. It never retries and
// never touches loader state.
type Worker struct {
	id      int
	builder ChunkBuilder
	log     *zap.Logger
}

func NewWorker(id int, builder ChunkBuilder, log *zap.Logger) *Worker {
	return &Worker{
		id:      id,
		builder: builder,
		log:     logger.OrNop(log).With(zap.Int("worker", id)),
	}
}

// Run processes jobs until the channel is closed or ctx is done.
func (w *Worker) Run(ctx context.Context, jobs <-chan Job, events chan<- Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case job, ok := <-jobs:
			if !ok {
				return nil
			}
			if !w.emit(ctx, events, Event{Kind: EventStarted, Job: job}) {
				return nil
			}

			start := time.Now()
			c, err := w.build(job)
			done := Event{Kind: EventDone, Job: job, Chunk: c, Err: err, Duration: time.Since(start)}
			if !w.emit(ctx, events, done) {
				return nil
			}
		}
	}
}

func (w *Worker) emit(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// build turns a panic inside the builder into an ErrSimulation error so a
// broken job does not take the process down.
func (w *Worker) build(job Job) (c *Chunk, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.ForChunk(w.log, job.Pos.X, job.Pos.Y, job.LOD).Error("Chunk build panicked",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			c = nil
			err = fmt.Errorf("%w: chunk %s: %v", ErrSimulation, job.Pos, r)
		}
	}()
	return w.builder.Build(job.Pos, job.LOD)
}
