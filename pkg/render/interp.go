package render

import "github.com/taigrr/raster3d/pkg/math3d"

// edge returns twice the signed area of the triangle (a, b, p).
func edge(a, b math3d.Vec2, px, py float64) float64 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// barycentric returns the weights of (px, py) with respect to p0 p1 p2 as
// ratios of edge functions. The weights do not depend on winding, so a point
// is inside either orientation iff all three are non-negative. ok is false
// for a zero-area triangle.
func barycentric(p0, p1, p2 math3d.Vec2, px, py float64) (w math3d.Vec3, ok bool) {
	area := edge(p0, p1, p2.X, p2.Y)
	if area == 0 {
		return math3d.Vec3{}, false
	}
	inv := 1 / area
	return math3d.V3(
		edge(p1, p2, px, py)*inv,
		edge(p2, p0, px, py)*inv,
		edge(p0, p1, px, py)*inv,
	), true
}

// inside reports whether barycentric weights describe a covered sample.
func inside(w math3d.Vec3) bool {
	return w.X >= 0 && w.Y >= 0 && w.Z >= 0
}

// blendable is satisfied by every attribute type carried in Varyings.
type blendable[T any] interface {
	Add(T) T
	Scale(float64) T
}

// interpolate blends three vertex attributes with perspective-correct
// weights z0..z2 (barycentric weight over view depth) and their reciprocal
// sum zt.
func interpolate[T blendable[T]](v0, v1, v2 T, z0, z1, z2, zt float64) T {
	return v0.Scale(z0).Add(v1.Scale(z1)).Add(v2.Scale(z2)).Scale(zt)
}
