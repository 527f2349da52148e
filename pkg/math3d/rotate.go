package math3d

import "math"

// RotateY rotates p about the vertical (y) axis by angle radians.
//
//	x' = x·cos(a) - z·sin(a)
//	y' = y
//	z' = x·sin(a) + z·cos(a)
//
// RotateY(p, 0) == p, and lengths in the x-z plane are preserved for every angle.
func RotateY(p Vec3, angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{
		X: p.X*c - p.Z*s,
		Y: p.Y,
		Z: p.X*s + p.Z*c,
	}
}
