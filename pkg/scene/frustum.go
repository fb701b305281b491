package scene

import "github.com/taigrr/raster3d/pkg/math3d"

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// Distance returns the signed distance from the plane to point; positive on
// the side the normal points to.
func (p Plane) Distance(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is a view volume bounded by six inward facing planes, ordered
// left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum extracts the planes of a view-projection matrix (Gribb and
// Hartmann). The planes are in the space the matrix maps from.
func NewFrustum(m math3d.Mat4) Frustum {
	row := func(i int) (math3d.Vec3, float64) {
		return math3d.V3(m[i], m[i+4], m[i+8]), m[i+12]
	}
	wn, wd := row(3)

	var f Frustum
	for axis := range 3 {
		n, d := row(axis)
		f.Planes[axis*2] = Plane{Normal: wn.Add(n), D: wd + d}
		f.Planes[axis*2+1] = Plane{Normal: wn.Sub(n), D: wd - d}
	}
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// ContainsPoint reports whether p lies inside every plane.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectAABB reports whether any part of box may be inside the frustum.
// For each plane only the corner furthest along its normal is tested.
func (f Frustum) IntersectAABB(box AABB) bool {
	for i := range f.Planes {
		n := f.Planes[i].Normal
		p := math3d.V3(
			pick(n.X >= 0, box.Max.X, box.Min.X),
			pick(n.Y >= 0, box.Max.Y, box.Min.Y),
			pick(n.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if f.Planes[i].Distance(p) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// Center returns the middle of the box.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents along each axis.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the box bounding all eight corners of b under m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	var out AABB
	for i := range 8 {
		c := math3d.V3(
			pick(i&1 != 0, b.Max.X, b.Min.X),
			pick(i&2 != 0, b.Max.Y, b.Min.Y),
			pick(i&4 != 0, b.Max.Z, b.Min.Z),
		)
		p := m.MulVec3(c)
		if i == 0 {
			out = AABB{Min: p, Max: p}
			continue
		}
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}
