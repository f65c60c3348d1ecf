// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sun is a directional light with a flat ambient term.
type Sun struct {
	Azimuth   float32 // rotation around Y, degrees
	Elevation float32 // angle above the horizon, degrees
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
}

// DefaultSun is a late morning sun from the south east.
func DefaultSun() Sun {
	return Sun{
		Azimuth:   135,
		Elevation: 45,
		Ambient:   mgl32.Vec3{0.35, 0.35, 0.4},
		Diffuse:   mgl32.Vec3{0.9, 0.85, 0.75},
	}
}

// Direction returns the normalized vector pointing towards the sun.
func (s Sun) Direction() mgl32.Vec3 {
	return SunDirection(s.Azimuth, s.Elevation)
}

// SunDirection converts azimuth/elevation angles in degrees to a light
// direction vector pointing towards the sun.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	az := float64(mgl32.DegToRad(azimuth))
	el := float64(mgl32.DegToRad(elevation))

	// Spherical to Cartesian conversion
	return mgl32.Vec3{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
}
