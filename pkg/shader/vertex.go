// Package shader provides the vertex and fragment stages used by the demo
// renderer: plain transforms, shadow-map passes, PCSS soft shadows and
// tangent-space normal mapping.
//
// Every stage is a small value type configured per draw call. Stages never
// mutate themselves, so one value may be shared by all rasterizer workers.
package shader

import (
	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/render"
)

// MVP transforms vertices by model, view and projection matrices.
type MVP struct {
	Model      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
}

// Vertex implements render.VertexShader.
func (s MVP) Vertex(v render.Vertex) render.Varyings {
	return transform(s.View.Mul(s.Model), s.Projection, v)
}

func transform(modelView, proj math3d.Mat4, v render.Vertex) render.Varyings {
	viewPos := modelView.MulVec4(math3d.V4FromV3(v.Position, 1))
	return render.Varyings{
		Clip:   proj.MulVec4(viewPos),
		View:   render.ViewPosition(viewPos.Vec3()),
		Normal: modelView.NormalMatrix().MulVec3Dir(v.Normal),
		Color:  v.Color,
		UV:     v.UV,
	}
}

// MVPLight is MVP plus the light-space position needed by shadow lookups.
type MVPLight struct {
	Model           math3d.Mat4
	View            math3d.Mat4
	Projection      math3d.Mat4
	LightView       math3d.Mat4
	LightProjection math3d.Mat4
}

// Vertex implements render.VertexShader.
func (s MVPLight) Vertex(v render.Vertex) render.Varyings {
	out := transform(s.View.Mul(s.Model), s.Projection, v)
	out.Shadow = s.LightProjection.Mul(s.LightView).Mul(s.Model).MulVec4(math3d.V4FromV3(v.Position, 1))
	return out
}

// LightDepth renders geometry from the light for a depth-only shadow pass.
type LightDepth struct {
	Model           math3d.Mat4
	LightView       math3d.Mat4
	LightProjection math3d.Mat4
}

// Vertex implements render.VertexShader.
func (s LightDepth) Vertex(v render.Vertex) render.Varyings {
	viewPos := s.LightView.Mul(s.Model).MulVec4(math3d.V4FromV3(v.Position, 1))
	return render.Varyings{
		Clip: s.LightProjection.MulVec4(viewPos),
		View: render.ViewPosition(viewPos.Vec3()),
	}
}

// NormalMapping prepares tangent-space light, eye and fragment positions for
// NormalMapped. LightPos and EyePos are in world space.
type NormalMapping struct {
	Model      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
	LightPos   math3d.Vec3
	EyePos     math3d.Vec3
}

// Vertex implements render.VertexShader.
func (s NormalMapping) Vertex(v render.Vertex) render.Varyings {
	out := transform(s.View.Mul(s.Model), s.Projection, v)

	nm := s.Model.NormalMatrix()
	n := nm.MulVec3Dir(v.Normal).Normalize()
	t := nm.MulVec3Dir(v.Tangent).Normalize()
	b := n.Cross(t).Normalize()

	// Rows of the TBN basis project world positions into tangent space.
	toTangent := func(p math3d.Vec3) math3d.Vec3 {
		return math3d.V3(t.Dot(p), b.Dot(p), n.Dot(p))
	}
	out.TangentLight = toTangent(s.LightPos)
	out.TangentView = toTangent(s.EyePos)
	out.TangentFrag = toTangent(s.Model.MulVec3(v.Position))
	return out
}
