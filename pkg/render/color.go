package render

import (
	"image/color"

	"github.com/taigrr/raster3d/pkg/math3d"
)

// Color is a straight-alpha RGBA color with float components, nominally in
// [0, 1]. Out-of-range values survive blending and are clamped on output.
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Black = Color{0, 0, 0, 1}
	White = Color{1, 1, 1, 1}
)

// RGB creates an opaque color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b, 1}
}

// Gray creates an opaque gray of intensity v.
func Gray(v float64) Color {
	return Color{v, v, v, 1}
}

// ColorFromVec3 creates an opaque color from an RGB triple.
func ColorFromVec3(v math3d.Vec3) Color {
	return Color{v.X, v.Y, v.Z, 1}
}

// Vec3 returns the RGB channels.
func (c Color) Vec3() math3d.Vec3 {
	return math3d.V3(c.R, c.G, c.B)
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Scale multiplies every channel, alpha included, by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Mul modulates c by o channel-wise.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Lerp blends from c to o by t.
func (c Color) Lerp(o Color, t float64) Color {
	return c.Add(o.Add(c.Scale(-1)).Scale(t))
}

// NRGBA converts to 8-bit straight alpha, clamping each channel.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// ColorFromRGBA converts an arbitrary color to a float Color,
// un-premultiplying alpha.
func ColorFromRGBA(c color.Color) Color {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Color{
		R: float64(n.R) / 0xffff,
		G: float64(n.G) / 0xffff,
		B: float64(n.B) / 0xffff,
		A: float64(n.A) / 0xffff,
	}
}

func to8(v float64) uint8 {
	return uint8(math3d.Clamp(v, 0, 1)*255 + 0.5)
}
