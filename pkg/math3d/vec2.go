package math3d

import "math"

// Vec2 is a point on the projection plane: normalized device coordinates
// before viewport mapping, pixels after it.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// ApproxEqual reports whether both components of a and b differ by at most eps.
func (a Vec2) ApproxEqual(b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}
