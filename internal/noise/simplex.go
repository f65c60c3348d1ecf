package noise

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Simplex is OpenSimplex noise normalized to [0, 1].
type Simplex struct {
	n opensimplex.Noise
}

func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.NewNormalized(seed)}
}

func (n *Simplex) Noise(p [2]float64) float64 {
	return n.n.Eval2(p[0], p[1])
}

func (n *Simplex) Range() [2]float64 {
	return [2]float64{0, 1}
}

// Fractal sums octaves of OpenSimplex noise, doubling frequency and
// scaling amplitude by persistence each octave.
type Fractal struct {
	n           opensimplex.Noise
	octaves     int
	persistence float64
}

// NewFractal creates fractal noise. Octaves below 1 become 1 and a
// non-positive persistence becomes 0.5.
func NewFractal(seed int64, octaves int, persistence float64) *Fractal {
	if octaves < 1 {
		octaves = 1
	}
	if persistence <= 0 {
		persistence = 0.5
	}
	return &Fractal{
		n:           opensimplex.New(seed),
		octaves:     octaves,
		persistence: persistence,
	}
}

func (f *Fractal) Noise(p [2]float64) float64 {
	total := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxVal := 0.0

	for i := 0; i < f.octaves; i++ {
		total += f.n.Eval2(p[0]*frequency, p[1]*frequency) * amplitude
		maxVal += amplitude
		amplitude *= f.persistence
		frequency *= 2
	}

	return total / maxVal
}

func (f *Fractal) Range() [2]float64 {
	return [2]float64{-1, 1}
}
