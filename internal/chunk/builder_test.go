package chunk

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EternalMC/world-gen/internal/noise"
	"github.com/EternalMC/world-gen/internal/terrain"
)

type nanNoise struct{}

func (nanNoise) Noise([2]float64) float64 { return math.NaN() }
func (nanNoise) Range() [2]float64      { return [2]float64{0, 1} }

func fastParams() BuildParams {
	p := DefaultBuildParams()
	p.RainDrops = 60
	p.MaxTicks = 20
	p.RainCycles = 2
	return p
}

func simplexArchitect(t *testing.T) *Architect {
	t.Helper()
	layer, err := noise.NewLayer(noise.Spec{Kind: noise.KindSimplex, Weight: 1, Frequency: 0.02}, 1234)
	require.NoError(t, err)
	return NewArchitect(ArchitectConfig{HeightScale: 20}, layer)
}

func TestBuilderBuild(t *testing.T) {
	b := NewBuilder(simplexArchitect(t), fastParams(), 42, nil)

	c, err := b.Build(Pos{X: 1, Y: -2}, 2)
	require.NoError(t, err)

	assert.Equal(t, Pos{X: 1, Y: -2}, c.Pos)
	assert.Equal(t, 2, c.LOD)
	assert.Equal(t, GridSize(2), c.Heights.Size())
	assert.Equal(t, 4, c.Heights.Resolution())
	assert.Equal(t, 2*(GridSize(2)-1)*(GridSize(2)-1), c.Mesh.TriangleCount())
	assert.Positive(t, c.Ticks)

	// Mesh spans exactly one chunk in world space
	assert.Equal(t, float32(64), c.Mesh.Bounds.Min[0])
	assert.Equal(t, float32(128), c.Mesh.Bounds.Max[0])
	assert.Equal(t, float32(-128), c.Mesh.Bounds.Min[2])
	assert.Equal(t, float32(-64), c.Mesh.Bounds.Max[2])
}

func TestBuilderDeterministic(t *testing.T) {
	arch := simplexArchitect(t)
	a, err := NewBuilder(arch, fastParams(), 7, nil).Build(Pos{X: 3, Y: 3}, 1)
	require.NoError(t, err)
	b, err := NewBuilder(arch, fastParams(), 7, nil).Build(Pos{X: 3, Y: 3}, 1)
	require.NoError(t, err)

	size := a.Heights.Size()
	for y := range size {
		for x := range size {
			assert.Equal(t, a.Heights.Get(x, y), b.Heights.Get(x, y), "cell (%d, %d)", x, y)
		}
	}
}

func TestBuilderNoBufferBuilt(t *testing.T) {
	b := NewBuilder(simplexArchitect(t), fastParams(), 1, nil)

	_, err := b.Build(Pos{X: 5, Y: 5}, 7)
	require.Error(t, err)

	var chunkErr *ChunkError
	require.True(t, errors.As(err, &chunkErr))
	assert.Equal(t, ErrKindNoBufferBuilt, chunkErr.Kind)
	assert.Equal(t, Pos{X: 5, Y: 5}, chunkErr.Pos)
	assert.Equal(t, "no buffer built: chunk pos = 5/5", err.Error())
}

func TestBuilderMeshError(t *testing.T) {
	arch := NewArchitect(ArchitectConfig{HeightScale: 1}, noise.Layer{Noise: nanNoise{}, Weight: 1, Frequency: 1})
	params := fastParams()
	params.RainCycles = 0

	_, err := NewBuilder(arch, params, 1, nil).Build(Pos{}, 3)
	require.Error(t, err)

	var chunkErr *ChunkError
	require.True(t, errors.As(err, &chunkErr))
	assert.Equal(t, ErrKindMesh, chunkErr.Kind)
	assert.True(t, errors.Is(err, terrain.ErrNonFiniteHeight))
	assert.Contains(t, err.Error(), "mesh/")
}

func TestBuilderSimulationPanicRecoveredByWorker(t *testing.T) {
	arch := NewArchitect(ArchitectConfig{HeightScale: 1}, noise.Layer{Noise: nanNoise{}, Weight: 1, Frequency: 1})
	b := NewBuilder(arch, fastParams(), 1, nil)

	assert.Panics(t, func() { _, _ = b.Build(Pos{}, 3) })

	w := NewWorker(0, b, nil)
	c, err := w.build(Job{Pos: Pos{}, LOD: 3})
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrSimulation)
}

func TestBuilderInvalidLOD(t *testing.T) {
	b := NewBuilder(simplexArchitect(t), fastParams(), 1, nil)

	_, err := b.Build(Pos{}, -1)
	assert.ErrorIs(t, err, ErrInvalidLOD)
	_, err = b.Build(Pos{}, MaxLOD+1)
	assert.ErrorIs(t, err, ErrInvalidLOD)
}

func TestRainDrops(t *testing.T) {
	assert.Equal(t, 400, rainDrops(400, 0))
	assert.Equal(t, 100, rainDrops(400, 1))
	assert.Equal(t, 1, rainDrops(400, 6))
	assert.Equal(t, 0, rainDrops(0, 2))
}

func TestPositionSeed(t *testing.T) {
	assert.Equal(t, positionSeed(9, Pos{X: 1, Y: 2}), positionSeed(9, Pos{X: 1, Y: 2}))
	assert.NotEqual(t, positionSeed(9, Pos{X: 1, Y: 2}), positionSeed(9, Pos{X: 2, Y: 1}))
	assert.NotEqual(t, positionSeed(9, Pos{X: 1, Y: 2}), positionSeed(10, Pos{X: 1, Y: 2}))
}
