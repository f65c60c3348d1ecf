package chunk

import (
	"github.com/EternalMC/world-gen/internal/noise"
	"github.com/EternalMC/world-gen/internal/terrain"
)

// ArchitectConfig scales the summed noise into world heights.
type ArchitectConfig struct {
	HeightScale float64
	BaseHeight  float64
}

// Architect samples noise layers into the raw height map of a chunk.
type Architect struct {
	cfg    ArchitectConfig
	layers []noise.Layer
}

func NewArchitect(cfg ArchitectConfig, layers ...noise.Layer) *Architect {
	return &Architect{cfg: cfg, layers: layers}
}

// Build samples the chunk at pos. Every lod reads the same field at world
// coordinates, only the spacing between samples changes.
// lod must be in [0, MaxLOD].
func (a *Architect) Build(pos Pos, lod int) *terrain.HeightMap {
	res := Resolution(lod)
	size := GridSize(lod)
	hm := terrain.NewHeightMap(size, res)

	for y := range size {
		for x := range size {
			hm.Set(x, y, float32(a.HeightAt(WorldPos(pos, [2]int{x, y}, res))))
		}
	}
	return hm
}

// HeightAt returns the raw height at a world position.
func (a *Architect) HeightAt(p [2]float64) float64 {
	sum := 0.0
	for _, l := range a.layers {
		sum += l.Sample(p)
	}
	return a.cfg.BaseHeight + sum*a.cfg.HeightScale
}
