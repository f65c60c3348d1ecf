package chunk

import (
	"time"

	"github.com/EternalMC/world-gen/internal/terrain"
)

// Chunk is a built terrain tile. It must not be modified once published.
type Chunk struct {
	Pos     Pos
	LOD     int
	Heights *terrain.HeightMap
	Mesh    *terrain.Mesh

	BuildTime time.Duration
	Ticks     int
	Warnings  int
}

// Origin returns the world position of the chunk's first sample.
func (c *Chunk) Origin() [2]float64 {
	return WorldPos(c.Pos, [2]int{}, 1)
}

// HeightAt returns the terrain height at a world position inside the chunk.
// ok is false when the position lies outside it.
func (c *Chunk) HeightAt(worldX, worldY float64) (h float32, ok bool) {
	origin := c.Origin()
	lx := worldX - origin[0]
	ly := worldY - origin[1]
	if lx < 0 || ly < 0 || lx > ChunkSize || ly > ChunkSize {
		return 0, false
	}

	res := float64(c.Heights.Resolution())
	return c.Heights.Sample(lx/res, ly/res), true
}
