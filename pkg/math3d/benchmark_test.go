package math3d

import "testing"

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 2, 2)))

	for b.Loop() {
		_ = m.Inverse()
	}
}

func BenchmarkNormalMatrix(b *testing.B) {
	m := LookAt(V3(0, 1, 10), V3(0, 1, 9), Up()).Mul(Rotate(V3(1, 5, 6), 0.3))

	for b.Loop() {
		_ = m.NormalMatrix()
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkViewProjection(b *testing.B) {
	view := LookAt(V3(0, 0, 10), V3(0, 0, 0), Up())
	proj := Perspective(Radians(45), 16.0/9.0, 1, 1000)

	for b.Loop() {
		_ = proj.Mul(view)
	}
}
