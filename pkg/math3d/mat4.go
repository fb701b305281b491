package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order, element (row, col) at
// index row+col*4:
//
//	| 0  4  8  12 |
//	| 1  5  9  13 |
//	| 2  6  10 14 |
//	| 3  7  11 15 |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// ScaleUniform scales all three axes by s.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX rotates around the X axis by angle radians.
func RotateX(angle float64) Mat4 {
	return Rotate(V3(1, 0, 0), angle)
}

// RotateY rotates around the Y axis by angle radians.
func RotateY(angle float64) Mat4 {
	return Rotate(V3(0, 1, 0), angle)
}

// Rotate creates a rotation of angle radians around an arbitrary axis.
// The axis does not need to be normalized.
func Rotate(axis Vec3, angle float64) Mat4 {
	axis = axis.Normalize()
	s, c := math.Sincos(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// LookAt builds a right-handed view matrix placing eye at the origin and
// looking towards center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Perspective creates an OpenGL style projection mapping view depth
// [-near, -far] to NDC [-1, 1]. fovy is in radians.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovy/2)
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Orthographic creates an orthographic projection for the given view volume.
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	rl := 1.0 / (right - left)
	tb := 1.0 / (top - bottom)
	fn := 1.0 / (far - near)

	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}

// Mul returns a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec3 transforms v as a point (w=1) and divides by the resulting w.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 1)).PerspectiveDivide()
}

// MulVec3Dir transforms v as a direction (w=0).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 0)).Vec3()
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t[col+row*4] = m[row+col*4]
		}
	}
	return t
}

// Inverse returns the inverse of m using 2x2 sub-determinants.
// A singular matrix yields the identity.
func (m Mat4) Inverse() Mat4 {
	a := func(row, col int) float64 { return m[row+col*4] }

	s0 := a(0, 0)*a(1, 1) - a(1, 0)*a(0, 1)
	s1 := a(0, 0)*a(1, 2) - a(1, 0)*a(0, 2)
	s2 := a(0, 0)*a(1, 3) - a(1, 0)*a(0, 3)
	s3 := a(0, 1)*a(1, 2) - a(1, 1)*a(0, 2)
	s4 := a(0, 1)*a(1, 3) - a(1, 1)*a(0, 3)
	s5 := a(0, 2)*a(1, 3) - a(1, 2)*a(0, 3)

	c5 := a(2, 2)*a(3, 3) - a(3, 2)*a(2, 3)
	c4 := a(2, 1)*a(3, 3) - a(3, 1)*a(2, 3)
	c3 := a(2, 1)*a(3, 2) - a(3, 1)*a(2, 2)
	c2 := a(2, 0)*a(3, 3) - a(3, 0)*a(2, 3)
	c1 := a(2, 0)*a(3, 2) - a(3, 0)*a(2, 2)
	c0 := a(2, 0)*a(3, 1) - a(3, 0)*a(2, 1)

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity()
	}
	d := 1 / det

	var inv Mat4
	inv.Set(0, 0, (a(1, 1)*c5-a(1, 2)*c4+a(1, 3)*c3)*d)
	inv.Set(0, 1, (-a(0, 1)*c5+a(0, 2)*c4-a(0, 3)*c3)*d)
	inv.Set(0, 2, (a(3, 1)*s5-a(3, 2)*s4+a(3, 3)*s3)*d)
	inv.Set(0, 3, (-a(2, 1)*s5+a(2, 2)*s4-a(2, 3)*s3)*d)

	inv.Set(1, 0, (-a(1, 0)*c5+a(1, 2)*c2-a(1, 3)*c1)*d)
	inv.Set(1, 1, (a(0, 0)*c5-a(0, 2)*c2+a(0, 3)*c1)*d)
	inv.Set(1, 2, (-a(3, 0)*s5+a(3, 2)*s2-a(3, 3)*s1)*d)
	inv.Set(1, 3, (a(2, 0)*s5-a(2, 2)*s2+a(2, 3)*s1)*d)

	inv.Set(2, 0, (a(1, 0)*c4-a(1, 1)*c2+a(1, 3)*c0)*d)
	inv.Set(2, 1, (-a(0, 0)*c4+a(0, 1)*c2-a(0, 3)*c0)*d)
	inv.Set(2, 2, (a(3, 0)*s4-a(3, 1)*s2+a(3, 3)*s0)*d)
	inv.Set(2, 3, (-a(2, 0)*s4+a(2, 1)*s2-a(2, 3)*s0)*d)

	inv.Set(3, 0, (-a(1, 0)*c3+a(1, 1)*c1-a(1, 2)*c0)*d)
	inv.Set(3, 1, (a(0, 0)*c3-a(0, 1)*c1+a(0, 2)*c0)*d)
	inv.Set(3, 2, (-a(3, 0)*s3+a(3, 1)*s1-a(3, 2)*s0)*d)
	inv.Set(3, 3, (a(2, 0)*s3-a(2, 1)*s1+a(2, 2)*s0)*d)

	return inv
}

// NormalMatrix returns the inverse transpose of m, for transforming normals
// with MulVec3Dir. Only the upper 3x3 block is meaningful.
func (m Mat4) NormalMatrix() Mat4 {
	upper := m
	upper[3], upper[7], upper[11] = 0, 0, 0
	upper[12], upper[13], upper[14] = 0, 0, 0
	upper[15] = 1
	return upper.Inverse().Transpose()
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row+col*4]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row+col*4] = val
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}
