package render

import (
	"github.com/taigrr/spincube/pkg/math3d"
	"github.com/taigrr/spincube/pkg/models"
)

// Wireframe draws projected cube edges onto a canvas.
type Wireframe struct {
	canvas Canvas
	color  Color
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(canvas Canvas, color Color) *Wireframe {
	return &Wireframe{
		canvas: canvas,
		color:  color,
	}
}

// DrawCube issues one line per cube edge between the projected corners.
// It returns the number of lines drawn.
func (w *Wireframe) DrawCube(pts *[models.VertexCount]math3d.Vec2) int {
	n := 0
	for _, edge := range models.Edges() {
		a, b := pts[edge[0]], pts[edge[1]]
		w.canvas.DrawLine(a.X, a.Y, b.X, b.Y, w.color)
		n++
	}
	return n
}
