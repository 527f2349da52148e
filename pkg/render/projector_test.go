package render

import (
	"math"
	"testing"

	"github.com/taigrr/spincube/pkg/math3d"
)

const eps = 1e-9

func TestProjectToPlane(t *testing.T) {
	tests := []struct {
		name string
		p    math3d.Vec3
		want math3d.Vec2
	}{
		{"depth three", math3d.V3(1, 2, 3), math3d.V2(1.0/3, 2.0/3)},
		{"unit depth", math3d.V3(-0.5, 0.25, 1), math3d.V2(-0.5, 0.25)},
		{"on axis", math3d.V3(0, 0, 7), math3d.V2(0, 0)},
		{"near corner", math3d.V3(-1, -1, 2), math3d.V2(-0.5, -0.5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ProjectToPlane(tc.p)
			if !got.ApproxEqual(tc.want, eps) {
				t.Errorf("ProjectToPlane(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestProjectToPlaneZeroDepth(t *testing.T) {
	// No guard at z = 0: the result is simply not finite.
	got := ProjectToPlane(math3d.V3(1, 0, 0))
	if !math.IsInf(got.X, 1) {
		t.Errorf("ProjectToPlane at z=0: x = %v, want +Inf", got.X)
	}
}

func TestWorldToScreen(t *testing.T) {
	tests := []struct {
		name string
		p    math3d.Vec2
		w, h int
		want math3d.Vec2
	}{
		{"center", math3d.V2(0, 0), 800, 800, math3d.V2(400, 400)},
		{"min corner", math3d.V2(-1, -1), 800, 800, math3d.V2(0, 0)},
		{"max corner", math3d.V2(1, 1), 800, 800, math3d.V2(800, 800)},
		{"non-square", math3d.V2(0.5, -0.5), 640, 480, math3d.V2(480, 120)},
		{"outside is not clamped", math3d.V2(-2, 3), 800, 800, math3d.V2(-400, 1600)},
		{"odd size truncates half", math3d.V2(1, 1), 801, 799, math3d.V2(800, 798)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WorldToScreen(tc.p, tc.w, tc.h)
			if !got.ApproxEqual(tc.want, eps) {
				t.Errorf("WorldToScreen(%v, %d, %d) = %v, want %v", tc.p, tc.w, tc.h, got, tc.want)
			}
		})
	}
}

func TestViewport(t *testing.T) {
	v := NewViewport()
	if v.Width != ScreenWidth || v.Height != ScreenHeight {
		t.Fatalf("NewViewport() = %+v", v)
	}

	if got := v.Project(math3d.V3(0, 0, 3)); !got.ApproxEqual(math3d.V2(400, 400), eps) {
		t.Errorf("Project(0,0,3) = %v, want centre (400, 400)", got)
	}

	got := v.Project(math3d.V3(-1, -1, 2))
	if !got.ApproxEqual(math3d.V2(200, 200), eps) {
		t.Errorf("Project(-1,-1,2) = %v, want (200, 200)", got)
	}
}

func BenchmarkViewportProject(b *testing.B) {
	v := NewViewport()
	p := math3d.V3(0.3, -0.7, 2.5)

	for b.Loop() {
		_ = v.Project(p)
	}
}
