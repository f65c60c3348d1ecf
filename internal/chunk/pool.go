package chunk

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/EternalMC/world-gen/internal/logger"
)

// Pool runs a fixed number of workers over one buffered job queue.
type Pool struct {
	jobs   chan Job
	events chan Event
	cancel context.CancelFunc
	group  *errgroup.Group
	log    *zap.Logger

	mu     sync.Mutex
	closed bool
}

// NewPool starts workers goroutines building chunks with builder.
// queueSize bounds the number of jobs waiting for a worker.
func NewPool(ctx context.Context, builder ChunkBuilder, workers, queueSize int, log *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	log = logger.OrNop(log)

	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)

	p := &Pool{
		jobs:   make(chan Job, queueSize),
		events: make(chan Event, 2*(queueSize+workers)),
		cancel: cancel,
		group:  group,
		log:    log,
	}

	for i := range workers {
		w := NewWorker(i, builder, log)
		group.Go(func() error {
			return w.Run(ctx, p.jobs, p.events)
		})
	}

	log.Info("Build pool started", zap.Int("workers", workers), zap.Int("queue", queueSize))
	return p
}

// Submit enqueues job without blocking. It returns false when the queue
// is full or the pool is closed.
func (p *Pool) Submit(job Job) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false
	}
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Events returns the channel workers report on.
func (p *Pool) Events() <-chan Event {
	return p.events
}

// Close stops the workers and waits for them. Builds already running
// finish but their results are dropped.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.cancel()
	err := p.group.Wait()
	p.log.Info("Build pool stopped")
	return err
}
