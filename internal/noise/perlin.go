package noise

import (
	"github.com/aquilax/go-perlin"
)

// Perlin is classic Perlin noise backed by go-perlin.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin creates Perlin noise. Zero alpha, beta or octaves fall back to
// 2, 2 and 3, which give terrain-like output.
func NewPerlin(seed int64, alpha, beta float64, octaves int) *Perlin {
	if alpha == 0 {
		alpha = 2
	}
	if beta == 0 {
		beta = 2
	}
	if octaves <= 0 {
		octaves = 3
	}
	return &Perlin{p: perlin.NewPerlin(alpha, beta, int32(octaves), seed)}
}

func (n *Perlin) Noise(p [2]float64) float64 {
	return n.p.Noise2D(p[0], p[1])
}

func (n *Perlin) Range() [2]float64 {
	return [2]float64{-1, 1}
}
