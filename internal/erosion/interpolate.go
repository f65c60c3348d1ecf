package erosion

import "math"

// Interpolate bilinearly blends the values of the four grid points
// enclosing p. ref holds the corners in the order
// (x0, y0), (x1, y0), (x0, y1), (x1, y1) where (x0, y0) = floor(p).
func Interpolate(p [2]float64, ref [4]float64) float64 {
	x0 := math.Floor(p[0])
	y0 := math.Floor(p[1])

	a := x0 + 1 - p[0]
	b := p[0] - x0
	south := a*ref[0] + b*ref[1]
	north := a*ref[2] + b*ref[3]

	c := y0 + 1 - p[1]
	d := p[1] - y0
	return c*south + d*north
}
