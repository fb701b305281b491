package scene

import (
	"math"

	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/render"
)

// Wireframe draws debug lines over a rendered frame.
type Wireframe struct {
	viewProj math3d.Mat4
	fb       *render.Framebuffer
}

// NewWireframe draws into fb through the given view-projection matrix.
func NewWireframe(viewProj math3d.Mat4, fb *render.Framebuffer) *Wireframe {
	return &Wireframe{viewProj: viewProj, fb: fb}
}

// project maps a world point to pixel coordinates, origin bottom-left.
func (w *Wireframe) project(p math3d.Vec3) (x, y int, ok bool) {
	clip := w.viewProj.MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	sx := (ndc.X + 1) * 0.5 * float64(w.fb.Width)
	sy := (ndc.Y + 1) * 0.5 * float64(w.fb.Height)
	// Keep Bresenham bounded for points far outside the screen.
	const limit = 1 << 16
	if math.Abs(sx) > limit || math.Abs(sy) > limit {
		return 0, 0, false
	}
	return int(math.Floor(sx)), int(math.Floor(sy)), true
}

// DrawLine3D draws a segment between two world points. Segments with an
// endpoint behind the eye are skipped.
func (w *Wireframe) DrawLine3D(a, b math3d.Vec3, c render.Color) {
	x0, y0, ok0 := w.project(a)
	x1, y1, ok1 := w.project(b)
	if !ok0 || !ok1 {
		return
	}
	w.fb.DrawLine(x0, y0, x1, y1, c)
}

var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along Z
}

// DrawBox outlines an axis-aligned box.
func (w *Wireframe) DrawBox(box AABB, c render.Color) {
	var corners [8]math3d.Vec3
	for i := range corners {
		corners[i] = math3d.V3(
			pick(i&1 != 0, box.Max.X, box.Min.X),
			pick(i&2 != 0, box.Max.Y, box.Min.Y),
			pick(i&4 != 0, box.Max.Z, box.Min.Z),
		)
	}
	for _, e := range boxEdges {
		w.DrawLine3D(corners[e[0]], corners[e[1]], c)
	}
}

// DrawAxes draws the world axes at the origin in red, green and blue.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Vec3{}
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), render.RGB(1, 0, 0))
	w.DrawLine3D(origin, math3d.V3(0, length, 0), render.RGB(0, 1, 0))
	w.DrawLine3D(origin, math3d.V3(0, 0, length), render.RGB(0, 0, 1))
}

// DrawBounds outlines the world bounds of every object in s.
func (w *Wireframe) DrawBounds(s *Scene, c render.Color) {
	for _, o := range s.Objects() {
		w.DrawBox(o.Bounds(), c)
	}
}
