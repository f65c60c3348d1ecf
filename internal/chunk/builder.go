package chunk

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/EternalMC/world-gen/internal/erosion"
	"github.com/EternalMC/world-gen/internal/logger"
	"github.com/EternalMC/world-gen/internal/terrain"
)

// BuildParams controls the erosion pass of every chunk build.
type BuildParams struct {
	Erosion    erosion.Params
	RainDrops  int // drops per cycle at lod 0
	DropSize   float64
	MaxTicks   int // tick budget per cycle
	RainCycles int
}

// DefaultBuildParams returns the settings used when nothing is configured.
func DefaultBuildParams() BuildParams {
	return BuildParams{
		Erosion:    erosion.DefaultParams(),
		RainDrops:  400,
		DropSize:   0.5,
		MaxTicks:   200,
		RainCycles: 4,
	}
}

// Builder runs the full pipeline for one chunk: noise, erosion and mesh.
// It holds no mutable state and may be shared by several workers.
type Builder struct {
	architect *Architect
	params    BuildParams
	seed      int64
	log       *zap.Logger
}

func NewBuilder(architect *Architect, params BuildParams, seed int64, log *zap.Logger) *Builder {
	return &Builder{
		architect: architect,
		params:    params,
		seed:      seed,
		log:       logger.OrNop(log),
	}
}

// Build produces the chunk at pos with the given level of detail.
func (b *Builder) Build(pos Pos, lod int) (*Chunk, error) {
	if lod < 0 || lod > MaxLOD {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLOD, lod)
	}

	start := time.Now()
	log := logger.ForChunk(b.log, pos.X, pos.Y, lod)

	raw := b.architect.Build(pos, lod)

	sim := erosion.New(raw, rand.New(rand.NewSource(positionSeed(b.seed, pos))), b.params.Erosion)
	drops := rainDrops(b.params.RainDrops, lod)
	ticks := 0
	for range b.params.RainCycles {
		sim.Rain(drops, b.params.DropSize)
		ticks += sim.Simulate(b.params.MaxTicks)
	}
	if w := sim.Warnings(); w > 0 {
		log.Warn("Velocity clamped during erosion", zap.Int("count", w))
	}

	hm := sim.Export()
	origin := WorldPos(pos, [2]int{}, 1)
	mesh, err := terrain.BuildMesh(hm, [2]float32{float32(origin[0]), float32(origin[1])})
	if err != nil {
		return nil, &ChunkError{Kind: ErrKindMesh, Pos: pos, Err: err}
	}
	if mesh.Empty() {
		return nil, &ChunkError{Kind: ErrKindNoBufferBuilt, Pos: pos}
	}

	elapsed := time.Since(start)
	log.Debug("Chunk built",
		zap.Int("ticks", ticks),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Duration("elapsed", elapsed))

	return &Chunk{
		Pos:       pos,
		LOD:       lod,
		Heights:   hm,
		Mesh:      mesh,
		BuildTime: elapsed,
		Ticks:     ticks,
		Warnings:  sim.Warnings(),
	}, nil
}

// rainDrops keeps the rain per cell constant across levels of detail.
func rainDrops(drops, lod int) int {
	n := drops >> (2 * lod)
	if n < 1 && drops > 0 {
		return 1
	}
	return n
}

// positionSeed mixes the world seed with a chunk position so every chunk
// gets its own reproducible rain.
func positionSeed(seed int64, pos Pos) int64 {
	h := uint64(seed)
	h ^= uint64(int64(pos.X)) * 0x9E3779B97F4A7C15
	h ^= uint64(int64(pos.Y)) * 0xC2B2AE3D27D4EB4F
	h ^= h >> 31
	return int64(h)
}
