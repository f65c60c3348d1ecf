package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func down(x, z float32) Ray {
	return Ray{Origin: mgl32.Vec3{x, 100, z}, Direction: mgl32.Vec3{0, -1, 0}}
}

func TestIntersectPlaneY(t *testing.T) {
	x, z, ok := down(3, 4).IntersectPlaneY(10)
	require.True(t, ok)
	assert.Equal(t, float32(3), x)
	assert.Equal(t, float32(4), z)

	_, _, ok = down(0, 0).IntersectPlaneY(200)
	assert.False(t, ok, "plane behind the origin")

	flat := Ray{Direction: mgl32.Vec3{1, 0, 0}}
	_, _, ok = flat.IntersectPlaneY(5)
	assert.False(t, ok)
}

func TestIntersectAABB(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{-5, 0.5, 0.5}, Direction: mgl32.Vec3{1, 0, 0}}

	d, hit := r.IntersectAABB([3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	require.True(t, hit)
	assert.InDelta(t, 5, d, 1e-5)

	_, hit = r.IntersectAABB([3]float32{0, 2, 0}, [3]float32{1, 3, 1})
	assert.False(t, hit)

	inside := Ray{Origin: mgl32.Vec3{0.5, 0.5, 0.5}, Direction: mgl32.Vec3{0, 1, 0}}
	d, hit = inside.IntersectAABB([3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	require.True(t, hit)
	assert.InDelta(t, 0.5, d, 1e-5)
}

func TestMarchTerrain(t *testing.T) {
	slope := func(x, z float32) (float32, bool) {
		if x < 0 {
			return 0, false
		}
		return x, true
	}

	p, ok := down(20, 7).MarchTerrain(slope, 500, 3)
	require.True(t, ok)
	assert.InDelta(t, 20, p[1], 1e-3)
	assert.Equal(t, float32(7), p[2])

	_, ok = down(-1, 0).MarchTerrain(slope, 500, 3)
	assert.False(t, ok, "no terrain loaded under the ray")

	_, ok = down(20, 0).MarchTerrain(slope, 50, 3)
	assert.False(t, ok, "terrain beyond max distance")
}

func TestScreenToRayCenter(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 50, 0}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 1, 1000)

	r := ScreenToRay(400, 400, 800, 800, proj.Mul4(view))
	assert.InDelta(t, -1, r.Direction[1], 1e-4)
	x, z, ok := r.IntersectPlaneY(0)
	require.True(t, ok)
	assert.InDelta(t, 0, x, 1e-3)
	assert.InDelta(t, 0, z, 1e-3)
}
