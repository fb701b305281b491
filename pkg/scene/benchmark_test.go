package scene

import (
	"fmt"
	"testing"

	"github.com/taigrr/raster3d/pkg/math3d"
)

func BenchmarkFrustumExtract(b *testing.B) {
	cam := DefaultCamera(16.0 / 9.0)
	vp := cam.Projection().Mul(cam.View())
	for b.Loop() {
		_ = NewFrustum(vp)
	}
}

func BenchmarkSceneVisible(b *testing.B) {
	s := New()
	for i := range 100 {
		o := NewObject(fmt.Sprintf("cube%d", i), NewCube(1, 1, 1))
		o.Model = math3d.Translate(math3d.V3(float64(i%10)*3-15, 0, float64(i/10)*-3))
		if _, err := s.Add(o); err != nil {
			b.Fatal(err)
		}
	}
	f := DefaultCamera(1).Frustum()

	for b.Loop() {
		_ = s.Visible(f)
	}
}
