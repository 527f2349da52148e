package render

import (
	"image/color"
)

// Canvas is a drawing surface the animation loop renders each frame onto.
// Coordinates are viewport pixels; lines leaving the surface are clipped by
// the implementation.
type Canvas interface {
	// Clear fills the whole surface.
	Clear(c Color)
	// DrawLine draws a one pixel line between two points.
	DrawLine(x0, y0, x1, y1 float64, c Color)
	// Present makes the frame visible.
	Present() error
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Frame colours.
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
)
