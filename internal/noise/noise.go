// Package noise provides the scalar fields used to seed raw terrain.
package noise

import (
	"errors"
	"fmt"
)

// Noise is a deterministic 2D scalar field.
// Range reports the [min, max] interval Noise is expected to return.
type Noise interface {
	Noise(p [2]float64) float64
	Range() [2]float64
}

// Kind names a Noise implementation in configuration.
type Kind string

const (
	KindPerlin  Kind = "perlin"
	KindSimplex Kind = "simplex"
	KindFractal Kind = "fractal"
)

// ErrUnknownKind is returned by NewLayer for an unsupported Kind.
var ErrUnknownKind = errors.New("unknown noise kind")

// Spec describes one noise layer as it appears in configuration.
type Spec struct {
	Kind        Kind
	Weight      float64
	Frequency   float64
	Octaves     int
	Persistence float64
	Alpha       float64
	Beta        float64
}

// Layer scales a Noise source by frequency and weight.
type Layer struct {
	Noise     Noise
	Weight    float64
	Frequency float64
}

// Sample evaluates the layer at world position p.
// The result lies in [0, Weight].
func (l Layer) Sample(p [2]float64) float64 {
	v := l.Noise.Noise([2]float64{p[0] * l.Frequency, p[1] * l.Frequency})
	return Remap(v, l.Noise.Range()) * l.Weight
}

// Remap maps v from the interval r to [0, 1], clamping values outside r.
func Remap(v float64, r [2]float64) float64 {
	span := r[1] - r[0]
	if span <= 0 {
		return 0
	}
	t := (v - r[0]) / span
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// NewLayer builds a Layer from spec. Layers built from the same spec and
// seed produce identical values.
func NewLayer(spec Spec, seed int64) (Layer, error) {
	var n Noise
	switch spec.Kind {
	case KindPerlin:
		n = NewPerlin(seed, spec.Alpha, spec.Beta, spec.Octaves)
	case KindSimplex:
		n = NewSimplex(seed)
	case KindFractal:
		n = NewFractal(seed, spec.Octaves, spec.Persistence)
	default:
		return Layer{}, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
	return Layer{
		Noise:     n,
		Weight:    spec.Weight,
		Frequency: spec.Frequency,
	}, nil
}
