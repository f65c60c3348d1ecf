package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNonFiniteHeight is returned when a height map contains NaN or Inf.
var ErrNonFiniteHeight = errors.New("non-finite height")

// Color ramp used for vertex colors, from low ground to peaks.
var (
	colorSand  = mgl32.Vec4{0.76, 0.70, 0.50, 1}
	colorGrass = mgl32.Vec4{0.32, 0.52, 0.24, 1}
	colorRock  = mgl32.Vec4{0.45, 0.42, 0.40, 1}
	colorSnow  = mgl32.Vec4{0.95, 0.95, 0.97, 1}
)

var up = mgl32.Vec3{0, 1, 0}

// BuildMesh triangulates a height map into a grid mesh.
// Adjacent cells are Resolution() world units apart; origin is the world
// position (X, Z) of cell (0, 0). Heights become the Y axis.
// A map with a single cell produces an empty mesh, not an error.
func BuildMesh(hm *HeightMap, origin [2]float32) (*Mesh, error) {
	size := hm.Size()
	spacing := float32(hm.Resolution())

	for y := range size {
		for x := range size {
			h := float64(hm.Get(x, y))
			if math.IsNaN(h) || math.IsInf(h, 0) {
				return nil, fmt.Errorf("%w at (%d, %d)", ErrNonFiniteHeight, x, y)
			}
		}
	}

	minH, maxH := hm.MinMax()
	span := maxH - minH
	if span < 0.0001 {
		span = 1
	}

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	vertices := make([]Vertex, 0, size*size)
	for y := range size {
		for x := range size {
			pos := [3]float32{
				origin[0] + float32(x)*spacing,
				hm.Get(x, y),
				origin[1] + float32(y)*spacing,
			}
			updateBounds(&bounds, pos)

			normal := gridNormal(hm, x, y, spacing)
			vertices = append(vertices, Vertex{
				Position: pos,
				Normal:   normal,
				Color:    shade((pos[1]-minH)/span, normal),
			})
		}
	}

	if size < 2 {
		return &Mesh{Vertices: vertices, Bounds: bounds}, nil
	}

	cells := size - 1
	indices := make([]uint32, 0, cells*cells*6)
	for y := range cells {
		for x := range cells {
			a := uint32(y*size + x)
			b := a + 1
			c := a + uint32(size)
			d := c + 1

			// Counter-clockwise seen from above (+Y)
			indices = append(indices,
				a, c, b,
				b, c, d,
			)
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Bounds:   bounds,
	}, nil
}

// gridNormal computes the surface normal at a grid point from its
// neighbours, using one-sided differences at the border.
func gridNormal(hm *HeightMap, x, y int, spacing float32) mgl32.Vec3 {
	size := hm.Size()
	if size < 2 {
		return up
	}

	x0, x1 := x-1, x+1
	if x0 < 0 {
		x0 = 0
	}
	if x1 >= size {
		x1 = size - 1
	}
	y0, y1 := y-1, y+1
	if y0 < 0 {
		y0 = 0
	}
	if y1 >= size {
		y1 = size - 1
	}

	dx := (hm.Get(x1, y) - hm.Get(x0, y)) / (float32(x1-x0) * spacing)
	dz := (hm.Get(x, y1) - hm.Get(x, y0)) / (float32(y1-y0) * spacing)
	return mgl32.Vec3{-dx, 1, -dz}.Normalize()
}

// shade picks a vertex color from normalized height t and slope.
func shade(t float32, normal mgl32.Vec3) mgl32.Vec4 {
	steep := 1 - normal.Dot(up)

	var c mgl32.Vec4
	switch {
	case t < 0.15:
		c = colorSand
	case t < 0.6:
		c = lerpColor(colorGrass, colorRock, (t-0.15)/0.45*0.5)
	case t < 0.85:
		c = lerpColor(colorGrass, colorRock, 0.5+(t-0.6)/0.25*0.5)
	default:
		c = colorSnow
	}

	if steep > 0.3 {
		c = lerpColor(c, colorRock, min((steep-0.3)*2, 1))
	}
	return c
}

func lerpColor(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

// Helper functions

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
