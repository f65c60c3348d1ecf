package terrain

import (
	"fmt"
	"math"
)

// HeightMap is a square grid of heights stored row-major.
// Resolution is the number of world units between two adjacent cells.
type HeightMap struct {
	size       int
	resolution int
	heights    []float32
}

// NewHeightMap creates a zeroed size x size height map.
// It panics if size or resolution is not positive.
func NewHeightMap(size, resolution int) *HeightMap {
	if size <= 0 {
		panic(fmt.Sprintf("terrain: invalid height map size %d", size))
	}
	if resolution <= 0 {
		panic(fmt.Sprintf("terrain: invalid height map resolution %d", resolution))
	}
	return &HeightMap{
		size:       size,
		resolution: resolution,
		heights:    make([]float32, size*size),
	}
}

// Size returns the number of cells along one edge.
func (h *HeightMap) Size() int {
	return h.size
}

// Resolution returns the world units per cell.
func (h *HeightMap) Resolution() int {
	return h.resolution
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (h *HeightMap) InBounds(x, y int) bool {
	return x >= 0 && x < h.size && y >= 0 && y < h.size
}

// index is the single place where grid positions are validated.
func (h *HeightMap) index(x, y int) int {
	if !h.InBounds(x, y) {
		panic(fmt.Sprintf("terrain: position (%d, %d) outside %dx%d height map", x, y, h.size, h.size))
	}
	return y*h.size + x
}

// Get returns the height at (x, y).
func (h *HeightMap) Get(x, y int) float32 {
	return h.heights[h.index(x, y)]
}

// Set stores the height at (x, y).
func (h *HeightMap) Set(x, y int, height float32) {
	h.heights[h.index(x, y)] = height
}

// MinMax returns the lowest and highest height in the map.
func (h *HeightMap) MinMax() (float32, float32) {
	lo, hi := h.heights[0], h.heights[0]
	for _, v := range h.heights[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Clone returns a deep copy of the map.
func (h *HeightMap) Clone() *HeightMap {
	c := &HeightMap{
		size:       h.size,
		resolution: h.resolution,
		heights:    make([]float32, len(h.heights)),
	}
	copy(c.heights, h.heights)
	return c
}

// Sample returns the bilinearly interpolated height at a fractional grid
// position. Positions outside the grid are clamped to the border.
func (h *HeightMap) Sample(fx, fy float64) float32 {
	if h.size == 1 {
		return h.heights[0]
	}

	maxCell := float64(h.size - 1)
	fx = clamp(fx, 0, maxCell)
	fy = clamp(fy, 0, maxCell)

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	if x0 >= h.size-1 {
		x0 = h.size - 2
	}
	if y0 >= h.size-1 {
		y0 = h.size - 2
	}
	tx := float32(fx - float64(x0))
	ty := float32(fy - float64(y0))

	// South edge (lower y) then north edge, then blend along y
	south := h.Get(x0, y0)*(1-tx) + h.Get(x0+1, y0)*tx
	north := h.Get(x0, y0+1)*(1-tx) + h.Get(x0+1, y0+1)*tx
	return south*(1-ty) + north*ty
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
