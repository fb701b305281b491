package shader

import (
	"math"

	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/render"
)

// Flat returns the interpolated vertex color.
type Flat struct{}

// Fragment implements render.FragmentShader.
func (Flat) Fragment(in render.FragmentInput) render.Color {
	return in.Color
}

// Depth is the fragment stage of a depth-only pass. The rasterizer writes
// depth itself, so the color is a constant.
type Depth struct{}

// Fragment implements render.FragmentShader.
func (Depth) Fragment(render.FragmentInput) render.Color {
	return render.Black
}

// ShadowDebug shows a shadow map as a grayscale texture mapped through the
// mesh UVs.
type ShadowDebug struct {
	Map render.ShadowMap
}

// Fragment implements render.FragmentShader.
func (s ShadowDebug) Fragment(in render.FragmentInput) render.Color {
	return render.Gray(float64(s.Map.Sample(in.UV.X, in.UV.Y)))
}

// HardShadowBias is the depth bias of HardShadow.
const HardShadowBias = 0.05

// HardShadow is a single-tap shadow test: white where lit, black where the
// shadow map holds a nearer occluder.
type HardShadow struct {
	Map render.ShadowMap
}

// Fragment implements render.FragmentShader.
func (s HardShadow) Fragment(in render.FragmentInput) render.Color {
	p := shadowCoords(in.Shadow)
	if p.Z > float64(s.Map.Sample(p.X, p.Y))+HardShadowBias {
		return render.Black
	}
	return render.White
}

// shadowCoords maps a light clip-space position to shadow-map texture space,
// [0,1] on every axis.
func shadowCoords(clip math3d.Vec4) math3d.Vec3 {
	p := clip.PerspectiveDivide()
	return math3d.V3(p.X*0.5+0.5, p.Y*0.5+0.5, p.Z*0.5+0.5)
}

// Textured samples a texture at a fixed mip level.
type Textured struct {
	Texture *render.Texture
	Level   int
}

// Fragment implements render.FragmentShader.
func (s Textured) Fragment(in render.FragmentInput) render.Color {
	return s.Texture.Sample(in.UV.X, in.UV.Y, s.Level)
}

// NormalMapped shades with a diffuse texture and a tangent-space normal map
// using ambient, diffuse and Blinn-Phong specular terms. It expects the
// tangent-space positions produced by NormalMapping.
type NormalMapped struct {
	Diffuse *render.Texture
	Normal  *render.Texture
	Level   int

	Ambient   float64
	Specular  float64
	Shininess float64
}

// NewNormalMapped returns a NormalMapped stage with the default lighting
// terms: 0.1 ambient and a 0.2 specular highlight with exponent 32.
func NewNormalMapped(diffuse, normal *render.Texture) NormalMapped {
	return NormalMapped{
		Diffuse:   diffuse,
		Normal:    normal,
		Level:     1,
		Ambient:   0.1,
		Specular:  0.2,
		Shininess: 32,
	}
}

// Fragment implements render.FragmentShader.
func (s NormalMapped) Fragment(in render.FragmentInput) render.Color {
	albedo := s.Diffuse.Sample(in.UV.X, in.UV.Y, s.Level).Vec3()
	n := s.Normal.Sample(in.UV.X, in.UV.Y, s.Level).Vec3().Scale(2).Sub(math3d.V3(1, 1, 1)).Normalize()

	l := in.TangentLight.Sub(in.TangentFrag).Normalize()
	v := in.TangentView.Sub(in.TangentFrag).Normalize()
	h := l.Add(v).Normalize()

	ambient := albedo.Scale(s.Ambient)
	diffuse := albedo.Scale(math.Max(l.Dot(n), 0))
	spec := s.Specular * math.Pow(math.Max(n.Dot(h), 0), s.Shininess)

	return render.ColorFromVec3(ambient.Add(diffuse).Add(math3d.V3(spec, spec, spec)))
}
