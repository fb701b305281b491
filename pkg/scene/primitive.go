package scene

import (
	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/models"
	"github.com/taigrr/raster3d/pkg/render"
)

// NewPlane creates a quad in the xy plane spanning [-sx, sx] x [-sy, sy],
// facing +Z. UV (0, 0) is at the (-sx, -sy) corner.
func NewPlane(sx, sy float64, color render.Color) *models.Mesh {
	n := math3d.V3(0, 0, 1)
	t := math3d.V3(1, 0, 0)
	corners := [4]struct{ x, y, u, v float64 }{
		{-sx, -sy, 0, 0},
		{+sx, -sy, 1, 0},
		{+sx, +sy, 1, 1},
		{-sx, +sy, 0, 1},
	}

	m := models.NewMesh("plane")
	for _, c := range corners {
		m.Vertices = append(m.Vertices, render.Vertex{
			Position: math3d.V3(c.x, c.y, 0),
			Normal:   n,
			Tangent:  t,
			Color:    color,
			UV:       math3d.V2(c.u, c.v),
		})
	}
	m.Indices = []int{0, 1, 2, 0, 2, 3}
	m.CalculateBounds()
	return m
}

type cubeFace struct {
	normal, tangent math3d.Vec3
	color           render.Color
}

var cubeFaces = [6]cubeFace{
	{math3d.V3(0, 0, -1), math3d.V3(-1, 0, 0), render.RGB(0, 0, 1)},
	{math3d.V3(1, 0, 0), math3d.V3(0, 0, -1), render.RGB(0, 1, 0)},
	{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), render.RGB(1, 0, 0)},
	{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), render.RGB(1, 1, 0)},
	{math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), render.RGB(1, 0, 1)},
	{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), render.RGB(0, 1, 1)},
}

// NewCube creates a box spanning [-sx, sx] x [-sy, sy] x [-sz, sz] with
// four vertices per face so every face carries its own normal, tangent,
// color and UVs. Triangles wind counter-clockwise seen from outside.
func NewCube(sx, sy, sz float64) *models.Mesh {
	scale := math3d.V3(sx, sy, sz)
	m := models.NewMesh("cube")
	for _, f := range cubeFaces {
		b := f.normal.Cross(f.tangent)
		base := len(m.Vertices)
		for _, uv := range [4]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}} {
			p := f.normal.
				Add(f.tangent.Scale(uv.X*2 - 1)).
				Add(b.Scale(uv.Y*2 - 1))
			m.Vertices = append(m.Vertices, render.Vertex{
				Position: p.Mul(scale),
				Normal:   f.normal,
				Tangent:  f.tangent,
				Color:    f.color,
				UV:       uv,
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.CalculateBounds()
	return m
}
