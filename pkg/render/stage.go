package render

import "github.com/taigrr/raster3d/pkg/math3d"

// MaxRealDepth scales view-space depth into the range stored in the depth
// buffer: a fragment d units in front of the eye has depth d/MaxRealDepth.
const MaxRealDepth = 50.0

// MaxRelativeDepth is the depth buffer clear value.
const MaxRelativeDepth = 1.0

// Vertex is an object-space mesh vertex.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	Tangent  math3d.Vec3
	Color    Color
	UV       math3d.Vec2
}

// Varyings is the output of a vertex stage.
//
// Clip is the homogeneous clip-space position. View must be produced with
// ViewPosition; the rasterizer relies on its positive, scaled Z for both
// culling and perspective-correct interpolation. The remaining fields are
// interpolated across the triangle and handed to the fragment stage.
type Varyings struct {
	Clip   math3d.Vec4
	View   math3d.Vec3
	Normal math3d.Vec3
	Color  Color
	Shadow math3d.Vec4 // light clip-space position
	UV     math3d.Vec2

	TangentLight math3d.Vec3
	TangentView  math3d.Vec3
	TangentFrag  math3d.Vec3
}

// FragmentInput carries the perspective-correct interpolated Varyings of one
// fragment. X and Y are the pixel coordinates, origin bottom-left.
type FragmentInput struct {
	X, Y int

	View   math3d.Vec3
	Normal math3d.Vec3
	Color  Color
	Shadow math3d.Vec4
	UV     math3d.Vec2

	TangentLight math3d.Vec3
	TangentView  math3d.Vec3
	TangentFrag  math3d.Vec3
}

// VertexShader transforms one vertex. Implementations are called
// concurrently and must not mutate shared state.
type VertexShader interface {
	Vertex(v Vertex) Varyings
}

// FragmentShader computes the color of one fragment. Implementations are
// called concurrently and must not mutate shared state.
type FragmentShader interface {
	Fragment(in FragmentInput) Color
}

// VertexFunc adapts an ordinary function to VertexShader.
type VertexFunc func(Vertex) Varyings

// Vertex calls f(v).
func (f VertexFunc) Vertex(v Vertex) Varyings { return f(v) }

// FragmentFunc adapts an ordinary function to FragmentShader.
type FragmentFunc func(FragmentInput) Color

// Fragment calls f(in).
func (f FragmentFunc) Fragment(in FragmentInput) Color { return f(in) }

// ViewPosition converts a right-handed view-space position (camera looking
// down -Z) into the form the rasterizer expects in Varyings.View.
func ViewPosition(p math3d.Vec3) math3d.Vec3 {
	return math3d.V3(p.X, p.Y, -p.Z/MaxRealDepth)
}
