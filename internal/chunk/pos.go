// Package chunk builds eroded terrain chunks and schedules their
// construction on a pool of background workers.
package chunk

import (
	"fmt"
	"math"
)

// ChunkSize is the edge length of a chunk in world units.
const ChunkSize = 64

// MaxLOD is the coarsest level of detail accepted by the builder.
const MaxLOD = 8

// Pos identifies a chunk on the integer chunk grid.
type Pos struct {
	X, Y int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d/%d", p.X, p.Y)
}

// Less orders positions by Y, then X.
func (p Pos) Less(o Pos) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// Resolution returns the world units between two samples at lod.
func Resolution(lod int) int {
	return 1 << lod
}

// GridSize returns the number of samples along a chunk edge at lod.
// The extra sample is shared with the neighbouring chunk.
func GridSize(lod int) int {
	return ChunkSize/Resolution(lod) + 1
}

// ChunkPosOf returns the chunk containing a world position.
func ChunkPosOf(worldX, worldY float64) Pos {
	return Pos{
		X: int(math.Floor(worldX / ChunkSize)),
		Y: int(math.Floor(worldY / ChunkSize)),
	}
}

// WorldPos returns the world position of sample offset in chunk pos.
func WorldPos(pos Pos, offset [2]int, resolution int) [2]float64 {
	return [2]float64{
		float64(pos.X*ChunkSize + offset[0]*resolution),
		float64(pos.Y*ChunkSize + offset[1]*resolution),
	}
}

// RelativePos returns the sample of chunk pos nearest to a world position.
// The result may fall outside the chunk.
func RelativePos(pos Pos, worldX, worldY float64, resolution int) [2]int {
	origin := WorldPos(pos, [2]int{}, resolution)
	return [2]int{
		int(math.Round((worldX - origin[0]) / float64(resolution))),
		int(math.Round((worldY - origin[1]) / float64(resolution))),
	}
}
