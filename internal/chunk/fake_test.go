package chunk

import (
	"sync"
	"time"

	"github.com/EternalMC/world-gen/internal/terrain"
)

// fakeQueue records submitted jobs and lets tests play the worker side.
type fakeQueue struct {
	capacity int
	pending  []Job
	all      []Job
	events   chan Event
	closed   bool
}

func newFakeQueue(capacity int) *fakeQueue {
	return &fakeQueue{
		capacity: capacity,
		events:   make(chan Event, 64),
	}
}

func (q *fakeQueue) Submit(job Job) bool {
	if q.closed || len(q.pending) >= q.capacity {
		return false
	}
	q.pending = append(q.pending, job)
	q.all = append(q.all, job)
	return true
}

func (q *fakeQueue) Events() <-chan Event {
	return q.events
}

func (q *fakeQueue) Close() error {
	q.closed = true
	return nil
}

// take removes the oldest pending job, as a worker would.
func (q *fakeQueue) take() Job {
	job := q.pending[0]
	q.pending = q.pending[1:]
	return job
}

func (q *fakeQueue) start(job Job) {
	q.events <- Event{Kind: EventStarted, Job: job}
}

func (q *fakeQueue) finish(job Job, err error) {
	ev := Event{Kind: EventDone, Job: job, Err: err, Duration: time.Millisecond}
	if err == nil {
		ev.Chunk = testChunk(job.Pos, job.LOD)
	}
	q.events <- ev
}

func testChunk(pos Pos, lod int) *Chunk {
	return &Chunk{
		Pos:     pos,
		LOD:     lod,
		Heights: terrain.NewHeightMap(GridSize(lod), Resolution(lod)),
		Mesh:    &terrain.Mesh{Indices: []uint32{0, 1, 2}},
	}
}

// fakeBuilder counts builds and returns a test chunk, or panics or fails
// on demand.
type fakeBuilder struct {
	mu     sync.Mutex
	builds map[Pos]int
	fail   map[Pos]error
	panics map[Pos]bool
	delay  time.Duration
}

func newFakeBuilder() *fakeBuilder {
	return &fakeBuilder{
		builds: make(map[Pos]int),
		fail:   make(map[Pos]error),
		panics: make(map[Pos]bool),
	}
}

func (b *fakeBuilder) Build(pos Pos, lod int) (*Chunk, error) {
	b.mu.Lock()
	b.builds[pos]++
	err := b.fail[pos]
	panics := b.panics[pos]
	b.mu.Unlock()

	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	if panics {
		panic("non-finite state")
	}
	if err != nil {
		return nil, err
	}
	return testChunk(pos, lod), nil
}

func (b *fakeBuilder) count(pos Pos) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.builds[pos]
}

// constNoise returns the same value everywhere.
type constNoise float64

func (n constNoise) Noise([2]float64) float64 { return float64(n) }
func (n constNoise) Range() [2]float64      { return [2]float64{0, 1} }

// rampNoise rises along X so coarse and fine samples can be compared.
type rampNoise struct{}

func (rampNoise) Noise(p [2]float64) float64 { return p[0]*0.001 + p[1]*0.0003 }
func (rampNoise) Range() [2]float64          { return [2]float64{-10, 10} }
