package terrain

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Grayscale maps heights linearly onto 16 bit gray, lowest black and
// highest white. Image rows follow map rows.
func Grayscale(hm *HeightMap) *image.Gray16 {
	size := hm.Size()
	lo, hi := hm.MinMax()
	span := hi - lo
	if span < 0.0001 {
		span = 1
	}

	img := image.NewGray16(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			t := (hm.Get(x, y) - lo) / span
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(float64(t) * 0xffff))})
		}
	}
	return img
}

// Shaded colors each cell with the mesh color ramp and a simple light
// from lightDir (X, up, Z), giving a map like view of the terrain.
func Shaded(hm *HeightMap, lightDir [3]float32) *image.RGBA {
	size := hm.Size()
	spacing := float32(hm.Resolution())
	lo, hi := hm.MinMax()
	span := hi - lo
	if span < 0.0001 {
		span = 1
	}
	light := up
	if v := mgl32.Vec3(lightDir); v.Len() > 0 {
		light = v.Normalize()
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			n := gridNormal(hm, x, y, spacing)
			c := shade((hm.Get(x, y)-lo)/span, n)

			k := 0.4 + 0.6*max(n.Dot(light), 0)
			img.SetRGBA(x, y, color.RGBA{
				R: channel(c[0] * k),
				G: channel(c[1] * k),
				B: channel(c[2] * k),
				A: 255,
			})
		}
	}
	return img
}

func channel(v float32) uint8 {
	return uint8(math.Round(float64(min(max(v, 0), 1)) * 255))
}
