package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemap(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		r    [2]float64
		want float64
	}{
		{"lower bound", -1, [2]float64{-1, 1}, 0},
		{"upper bound", 1, [2]float64{-1, 1}, 1},
		{"midpoint", 0, [2]float64{-1, 1}, 0.5},
		{"below range clamps", -3, [2]float64{-1, 1}, 0},
		{"above range clamps", 2, [2]float64{0, 1}, 1},
		{"empty range", 5, [2]float64{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Remap(tt.v, tt.r), 1e-12)
		})
	}
}

func TestNoiseDeterministic(t *testing.T) {
	specs := []Spec{
		{Kind: KindPerlin, Weight: 1, Frequency: 0.01},
		{Kind: KindSimplex, Weight: 1, Frequency: 0.02},
		{Kind: KindFractal, Weight: 1, Frequency: 0.005, Octaves: 4, Persistence: 0.5},
	}

	for _, spec := range specs {
		t.Run(string(spec.Kind), func(t *testing.T) {
			a, err := NewLayer(spec, 42)
			require.NoError(t, err)
			b, err := NewLayer(spec, 42)
			require.NoError(t, err)

			for i := range 50 {
				p := [2]float64{float64(i) * 13.7, float64(-i) * 5.3}
				assert.Equal(t, a.Sample(p), b.Sample(p), "point %v", p)
			}
		})
	}
}

func TestLayerSampleWithinWeight(t *testing.T) {
	for _, kind := range []Kind{KindPerlin, KindSimplex, KindFractal} {
		t.Run(string(kind), func(t *testing.T) {
			layer, err := NewLayer(Spec{Kind: kind, Weight: 3, Frequency: 0.037, Octaves: 3}, 7)
			require.NoError(t, err)

			for y := -20; y < 20; y++ {
				for x := -20; x < 20; x++ {
					v := layer.Sample([2]float64{float64(x) * 11, float64(y) * 7})
					assert.GreaterOrEqual(t, v, 0.0)
					assert.LessOrEqual(t, v, 3.0)
				}
			}
		})
	}
}

func TestSimplexRange(t *testing.T) {
	n := NewSimplex(99)
	r := n.Range()

	for i := range 200 {
		v := n.Noise([2]float64{float64(i) * 0.37, float64(i) * 0.11})
		assert.GreaterOrEqual(t, v, r[0])
		assert.LessOrEqual(t, v, r[1])
	}
}

func TestFractalDefaults(t *testing.T) {
	f := NewFractal(1, 0, -1)
	assert.Equal(t, 1, f.octaves)
	assert.Equal(t, 0.5, f.persistence)
}

func TestNewLayerUnknownKind(t *testing.T) {
	_, err := NewLayer(Spec{Kind: "worley"}, 1)
	assert.ErrorIs(t, err, ErrUnknownKind)
}
