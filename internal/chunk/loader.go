package chunk

import (
	"slices"

	"go.uber.org/zap"

	"github.com/EternalMC/world-gen/internal/logger"
)

// State is the lifecycle stage of a chunk position in the loader.
type State int

const (
	StateUnloaded State = iota
	StateQueued
	StateBuilding
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateQueued:
		return "queued"
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// JobQueue is where the loader sends jobs and reads their events.
// *Pool is the production implementation.
type JobQueue interface {
	Submit(job Job) bool
	Events() <-chan Event
	Close() error
}

// Completed is a build result handed to the world layer.
type Completed struct {
	Pos   Pos
	LOD   int
	Chunk *Chunk
	Err   error
}

type entry struct {
	state State
	want  int // level of detail the caller asked for

	job      Job
	inFlight bool
	started  bool

	// released marks an entry kept only to track its in-flight job
	// after the caller let go of the position.
	released bool

	chunk *Chunk // last ready chunk, kept while a finer one builds
	err   error
}

// Loader decides which chunks to build and integrates finished builds.
// All methods must be called from the same goroutine; workers only talk to
// it through the job queue's event channel.
type Loader struct {
	queue   JobQueue
	entries map[Pos]*entry
	nextID  uint64
	stats   BuildStats
	log     *zap.Logger
}

func NewLoader(queue JobQueue, log *zap.Logger) *Loader {
	return &Loader{
		queue:   queue,
		entries: make(map[Pos]*entry),
		log:     logger.OrNop(log),
	}
}

// Request asks for the chunk at pos with at least the detail of lod.
// It returns false when the job queue is full; the caller should retry on
// a later tick.
func (l *Loader) Request(pos Pos, lod int) bool {
	l.stats.Requested++

	e, ok := l.entries[pos]
	if !ok {
		e = &entry{want: lod}
		if !l.submit(pos, e) {
			return false
		}
		l.entries[pos] = e
		return true
	}

	if e.released {
		// The old job is still running; reuse it if detailed enough.
		e.released = false
		e.chunk = nil
		e.err = nil
		e.want = lod
		e.state = StateQueued
		if e.started {
			e.state = StateBuilding
		}
		return true
	}

	switch e.state {
	case StateFailed:
		prev := e.want
		e.want = lod
		if !l.submit(pos, e) {
			e.want = prev
			return false
		}
		e.err = nil
		return true

	case StateQueued, StateBuilding:
		if lod >= e.want {
			l.stats.Deduplicated++
			return true
		}
		// Finer detail wins, but the fine job is only submitted once the
		// coarse one arrives, even if no worker has picked it up yet: a
		// position never has two jobs in flight, so the fine chunk waits
		// for one full coarse build first.
		e.want = lod
		l.stats.Superseded++
		return true

	case StateReady:
		if lod >= e.chunk.LOD {
			l.stats.Deduplicated++
			return true
		}
		e.want = lod
		if !l.submit(pos, e) {
			e.want = e.chunk.LOD
			return false
		}
		return true
	}
	return false
}

// submit sends a job for e at its wanted lod and marks it queued.
func (l *Loader) submit(pos Pos, e *entry) bool {
	l.nextID++
	job := Job{Pos: pos, LOD: e.want, ID: l.nextID}

	if !l.queue.Submit(job) {
		l.stats.Rejected++
		l.log.Debug("Build queue full", zap.Stringer("pos", pos), zap.Int("lod", job.LOD))
		return false
	}

	l.stats.Submitted++
	l.stats.InFlight++
	e.job = job
	e.inFlight = true
	e.started = false
	e.state = StateQueued
	return true
}

// PollCompleted drains the events available right now without blocking
// and returns the builds that became available for live positions.
func (l *Loader) PollCompleted() []Completed {
	var out []Completed
	for {
		select {
		case ev := <-l.queue.Events():
			if c, ok := l.handle(ev); ok {
				out = append(out, c)
			}
		default:
			return out
		}
	}
}

func (l *Loader) handle(ev Event) (Completed, bool) {
	e, ok := l.entries[ev.Job.Pos]
	current := ok && e.inFlight && e.job.ID == ev.Job.ID

	if ev.Kind == EventStarted {
		l.stats.Started++
		if current {
			e.started = true
			if !e.released && e.state == StateQueued {
				e.state = StateBuilding
			}
		}
		return Completed{}, false
	}

	l.stats.InFlight--
	if ev.Duration > 0 {
		l.stats.recordBuild(ev.Duration)
	}

	if !current {
		l.stats.Discarded++
		return Completed{}, false
	}
	e.inFlight = false
	e.started = false
	pos := ev.Job.Pos

	if e.released {
		delete(l.entries, pos)
		l.stats.Discarded++
		l.log.Debug("Dropped build of released chunk", zap.Stringer("pos", pos))
		return Completed{}, false
	}

	if e.want < ev.Job.LOD {
		l.stats.Discarded++
		if !l.submit(pos, e) {
			// Keep the previous chunk if there is one, else forget the
			// position so the next request starts over.
			if e.chunk != nil {
				e.want = e.chunk.LOD
				e.state = StateReady
			} else {
				delete(l.entries, pos)
			}
		}
		return Completed{}, false
	}

	if ev.Err != nil {
		l.stats.Failed++
		e.state = StateFailed
		e.chunk = nil
		e.err = ev.Err
		logger.ForChunk(l.log, pos.X, pos.Y, ev.Job.LOD).Error("Chunk build failed", zap.Error(ev.Err))
		return Completed{Pos: pos, LOD: ev.Job.LOD, Err: ev.Err}, true
	}

	l.stats.Completed++
	e.state = StateReady
	e.chunk = ev.Chunk
	e.want = ev.Job.LOD
	e.err = nil
	return Completed{Pos: pos, LOD: ev.Job.LOD, Chunk: ev.Chunk}, true
}

// Release forgets pos. A build still running for it is not cancelled;
// its result is dropped when it arrives.
func (l *Loader) Release(pos Pos) {
	e, ok := l.entries[pos]
	if !ok {
		return
	}
	if e.inFlight {
		e.released = true
		e.state = StateUnloaded
		e.chunk = nil
		e.err = nil
		return
	}
	delete(l.entries, pos)
}

// State returns the state of pos and the level of detail it refers to:
// the built lod when ready, the requested lod otherwise.
func (l *Loader) State(pos Pos) (State, int) {
	e, ok := l.entries[pos]
	if !ok || e.released {
		return StateUnloaded, 0
	}
	if e.state == StateReady {
		return e.state, e.chunk.LOD
	}
	return e.state, e.want
}

// Chunk returns the latest built chunk at pos, including one that is
// being replaced by a finer build.
func (l *Loader) Chunk(pos Pos) *Chunk {
	e, ok := l.entries[pos]
	if !ok || e.released {
		return nil
	}
	return e.chunk
}

// Err returns the error of a failed position.
func (l *Loader) Err(pos Pos) error {
	e, ok := l.entries[pos]
	if !ok || e.released {
		return nil
	}
	return e.err
}

// Positions returns the tracked positions in a stable order.
func (l *Loader) Positions() []Pos {
	out := make([]Pos, 0, len(l.entries))
	for pos, e := range l.entries {
		if !e.released {
			out = append(out, pos)
		}
	}
	slices.SortFunc(out, func(a, b Pos) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return out
}

// Stats returns a snapshot of the counters.
func (l *Loader) Stats() BuildStats {
	return l.stats
}

// Close shuts down the job queue.
func (l *Loader) Close() error {
	return l.queue.Close()
}
