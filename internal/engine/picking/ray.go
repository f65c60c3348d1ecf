// Package picking provides ray casting against streamed terrain.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, viewProj mgl32.Mat4) Ray {
	inv := viewProj.Inv()

	// Normalized device coords (-1 to 1), Y flipped
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	near := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})

	// Perspective divide
	if near[3] != 0 {
		near = near.Mul(1 / near[3])
	}
	if far[3] != 0 {
		far = far.Mul(1 / far[3])
	}

	origin := near.Vec3()
	dir := far.Vec3().Sub(origin)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: origin, Direction: dir}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if math.Abs(float64(r.Direction[1])) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin[1]) / r.Direction[1]
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	p := r.At(t)
	return p[0], p[2], true
}

// IntersectAABB tests ray intersection with an axis-aligned box.
// Returns the distance to intersection and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(min, max [3]float32) (t float32, hit bool) {
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for axis := range 3 {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < min[axis] || o > max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (min[axis] - o) / d
		t2 := (max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max32(tmin, t1)
		tmax = min32(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// HeightFunc returns the terrain height under world (x, z), or false where
// no terrain is loaded.
type HeightFunc func(x, z float32) (float32, bool)

// MarchTerrain steps along the ray until it passes below the terrain and
// refines the crossing by bisection. Steps over unloaded terrain are
// skipped.
func (r Ray) MarchTerrain(height HeightFunc, maxDist, step float32) (mgl32.Vec3, bool) {
	if step <= 0 {
		return mgl32.Vec3{}, false
	}

	prev := float32(0)
	for t := step; t <= maxDist; t += step {
		p := r.At(t)
		h, ok := height(p[0], p[2])
		if !ok || p[1] > h {
			prev = t
			continue
		}

		// Bisect between the last point above and this one
		lo, hi := prev, t
		for range 16 {
			mid := (lo + hi) / 2
			q := r.At(mid)
			if hm, ok := height(q[0], q[2]); ok && q[1] <= hm {
				hi = mid
			} else {
				lo = mid
			}
		}
		return r.At(hi), true
	}
	return mgl32.Vec3{}, false
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
