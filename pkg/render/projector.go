package render

import (
	"github.com/taigrr/spincube/pkg/math3d"
)

// Screen size of the logical viewport in pixels.
const (
	ScreenWidth  = 800
	ScreenHeight = 800
)

// ProjectToPlane perspective-divides p onto the z = 1 plane.
// p.Z must be non-zero; callers keep geometry in front of the camera.
func ProjectToPlane(p math3d.Vec3) math3d.Vec2 {
	return math3d.Vec2{
		X: p.X / p.Z,
		Y: p.Y / p.Z,
	}
}

// WorldToScreen maps normalized device coordinates to pixels.
// (-1,-1) lands on (0,0) and (1,1) on (width,height); points outside [-1,1]
// are passed through unclamped.
func WorldToScreen(p math3d.Vec2, screenWidth, screenHeight int) math3d.Vec2 {
	return math3d.Vec2{
		X: (p.X + 1) * float64(screenWidth/2),
		Y: (p.Y + 1) * float64(screenHeight/2),
	}
}

// Viewport projects camera-space points to pixel coordinates of a fixed
// size surface.
type Viewport struct {
	Width  int
	Height int
}

// NewViewport returns the default 800×800 viewport.
func NewViewport() Viewport {
	return Viewport{Width: ScreenWidth, Height: ScreenHeight}
}

// Project perspective-divides p and maps the result to viewport pixels.
func (v Viewport) Project(p math3d.Vec3) math3d.Vec2 {
	return WorldToScreen(ProjectToPlane(p), v.Width, v.Height)
}
