// Package world streams terrain chunks around a moving focus point.
package world

import (
	"slices"

	"go.uber.org/zap"

	"github.com/EternalMC/world-gen/internal/chunk"
	"github.com/EternalMC/world-gen/internal/logger"
)

// Update is what changed during one Streamer tick.
type Update struct {
	Completed []chunk.Completed
	Released  []chunk.Pos
	Requested int // positions newly accepted by the loader
	Deferred  int // positions left for a later tick because the queue was full
}

// Streamer keeps the chunks within a view radius of the focus loaded,
// choosing finer detail for closer chunks.
type Streamer struct {
	loader       *chunk.Loader
	radius       int
	lodDistances []int
	log          *zap.Logger

	wanted map[chunk.Pos]int
}

// NewStreamer drives loader. lodDistances[i] is the farthest ring, in
// chunks, built at lod i; rings beyond the last entry use the next lod.
func NewStreamer(loader *chunk.Loader, radius int, lodDistances []int, log *zap.Logger) *Streamer {
	return &Streamer{
		loader:       loader,
		radius:       radius,
		lodDistances: lodDistances,
		log:          logger.OrNop(log),
		wanted:       make(map[chunk.Pos]int),
	}
}

// LODFor returns the level of detail for a chunk ring distance.
func (s *Streamer) LODFor(distance int) int {
	for i, d := range s.lodDistances {
		if distance <= d {
			return i
		}
	}
	return min(len(s.lodDistances), chunk.MaxLOD)
}

// Want is one wanted chunk.
type Want struct {
	Pos      chunk.Pos
	LOD      int
	Distance int
}

// Wanted returns every position within the view radius of center with
// its level of detail, nearest first.
func (s *Streamer) Wanted(center chunk.Pos) []Want {
	var out []Want
	for dy := -s.radius; dy <= s.radius; dy++ {
		for dx := -s.radius; dx <= s.radius; dx++ {
			d := max(abs(dx), abs(dy))
			out = append(out, Want{
				Pos:      chunk.Pos{X: center.X + dx, Y: center.Y + dy},
				LOD:      s.LODFor(d),
				Distance: d,
			})
		}
	}
	slices.SortFunc(out, func(a, b Want) int {
		if a.Distance != b.Distance {
			return a.Distance - b.Distance
		}
		switch {
		case a.Pos.Less(b.Pos):
			return -1
		case b.Pos.Less(a.Pos):
			return 1
		}
		return 0
	})
	return out
}

// Update moves the focus to a world position, releases chunks that left
// the view, requests the ones that entered it and collects finished builds.
// Failed positions are not retried until they leave and re-enter the view.
func (s *Streamer) Update(worldX, worldY float64) Update {
	var u Update
	center := chunk.ChunkPosOf(worldX, worldY)
	wants := s.Wanted(center)

	next := make(map[chunk.Pos]int, len(wants))
	for _, w := range wants {
		next[w.Pos] = w.LOD
	}
	for _, pos := range s.loader.Positions() {
		if _, ok := next[pos]; !ok {
			s.loader.Release(pos)
			u.Released = append(u.Released, pos)
		}
	}
	s.wanted = next

	queueFull := false
	for _, w := range wants {
		state, lod := s.loader.State(w.Pos)
		switch {
		case state == chunk.StateFailed:
			continue
		case state != chunk.StateUnloaded && lod <= w.LOD:
			continue
		case queueFull:
			u.Deferred++
			continue
		}

		if !s.loader.Request(w.Pos, w.LOD) {
			queueFull = true
			u.Deferred++
			continue
		}
		u.Requested++
	}

	u.Completed = s.loader.PollCompleted()
	if len(u.Released) > 0 || u.Requested > 0 {
		s.log.Debug("Streaming update",
			zap.Stringer("center", center),
			zap.Int("requested", u.Requested),
			zap.Int("released", len(u.Released)),
			zap.Int("deferred", u.Deferred))
	}
	return u
}

// HeightAt returns the terrain height at a world position from the loaded
// chunk covering it.
func (s *Streamer) HeightAt(worldX, worldY float64) (float32, bool) {
	c := s.loader.Chunk(chunk.ChunkPosOf(worldX, worldY))
	if c == nil {
		return 0, false
	}
	return c.HeightAt(worldX, worldY)
}

// Pending returns how many wanted positions still wait for a build.
func (s *Streamer) Pending() int {
	n := 0
	for pos, lod := range s.wanted {
		state, have := s.loader.State(pos)
		switch {
		case state == chunk.StateFailed:
		case state != chunk.StateReady || have > lod:
			n++
		}
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
