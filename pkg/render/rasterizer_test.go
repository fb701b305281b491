package render

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/taigrr/raster3d/pkg/math3d"
)

// ndcShader treats Position.XY as normalized device coordinates and
// Position.Z as the already scaled view depth.
var ndcShader = VertexFunc(func(v Vertex) Varyings {
	return Varyings{
		Clip:   math3d.V4(v.Position.X, v.Position.Y, 0, 1),
		View:   v.Position,
		Normal: v.Normal,
		Color:  v.Color,
		UV:     v.UV,
	}
})

func solid(c Color) FragmentShader {
	return FragmentFunc(func(FragmentInput) Color { return c })
}

func passColor() FragmentShader {
	return FragmentFunc(func(in FragmentInput) Color { return in.Color })
}

// counting wraps fs and counts its invocations.
func counting(fs FragmentShader, n *atomic.Int64) FragmentShader {
	return FragmentFunc(func(in FragmentInput) Color {
		n.Add(1)
		return fs.Fragment(in)
	})
}

func tri(depth float64, pts ...math3d.Vec2) []Vertex {
	colors := []Color{RGB(1, 0, 0), RGB(0, 1, 0), RGB(0, 0, 1)}
	vs := make([]Vertex, len(pts))
	for i, p := range pts {
		vs[i] = Vertex{
			Position: math3d.V3(p.X, p.Y, depth),
			Normal:   math3d.V3(0, 0, 1),
			Color:    colors[i%3],
		}
	}
	return vs
}

// fullscreen covers the whole viewport with a single triangle.
func fullscreen(depth float64) []Vertex {
	return tri(depth, math3d.V2(-1, -1), math3d.V2(3, -1), math3d.V2(-1, 3))
}

func newTestRasterizer(t testing.TB, cfg Config) *Rasterizer {
	t.Helper()
	r, err := NewRasterizer(cfg)
	if err != nil {
		t.Fatalf("NewRasterizer: %v", err)
	}
	return r
}

func colorNear(a, b Color, eps float64) bool {
	return math.Abs(a.R-b.R) <= eps && math.Abs(a.G-b.G) <= eps &&
		math.Abs(a.B-b.B) <= eps && math.Abs(a.A-b.A) <= eps
}

func covered(fb *Framebuffer) int {
	n := 0
	for _, c := range fb.Pix {
		if c != Black {
			n++
		}
	}
	return n
}

func TestNewRasterizerInvalidSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -4, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRasterizer(Config{Width: tc.width, Height: tc.height})
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("err = %v, want ErrInvalidSize", err)
			}
			if r != nil {
				t.Error("expected nil rasterizer")
			}
		})
	}
}

func TestNewRasterizerClears(t *testing.T) {
	r := newTestRasterizer(t, Config{Width: 3, Height: 2, DrawColor: true, DrawDepth: true})

	if got := len(r.Depth()); got != 3*2*Samples {
		t.Errorf("depth buffer len = %d, want %d", got, 3*2*Samples)
	}
	for i, d := range r.Depth() {
		if d != MaxRelativeDepth {
			t.Fatalf("depth[%d] = %v, want %v", i, d, MaxRelativeDepth)
		}
	}
	for i, c := range r.Result().Pix {
		if c != Black {
			t.Fatalf("result[%d] = %v, want opaque black", i, c)
		}
	}
}

func TestRenderRejectsMalformedIndices(t *testing.T) {
	verts := fullscreen(0.5)
	tests := []struct {
		name    string
		indices []int
		want    error
	}{
		{"partial triangle", []int{0, 1, 2, 0}, ErrIndexCount},
		{"index past end", []int{0, 1, 3}, ErrIndexRange},
		{"negative index", []int{0, -1, 2}, ErrIndexRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRasterizer(t, Config{Width: 8, Height: 8, DrawColor: true, DrawDepth: true})
			var calls atomic.Int64

			err := r.Render(verts, tc.indices, ndcShader, counting(solid(White), &calls))
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
			if calls.Load() != 0 {
				t.Errorf("fragment stage ran %d times on invalid input", calls.Load())
			}
			if covered(r.Result()) != 0 {
				t.Error("result modified on invalid input")
			}
		})
	}
}

func TestBarycentric(t *testing.T) {
	p0, p1, p2 := math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1)
	tests := []struct {
		name   string
		px, py float64
		want   math3d.Vec3
		inside bool
	}{
		{"vertex 0", 0, 0, math3d.V3(1, 0, 0), true},
		{"vertex 1", 1, 0, math3d.V3(0, 1, 0), true},
		{"vertex 2", 0, 1, math3d.V3(0, 0, 1), true},
		{"centroid", 1.0 / 3, 1.0 / 3, math3d.V3(1.0/3, 1.0/3, 1.0/3), true},
		{"outside", -1, -1, math3d.V3(3, -1, -1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, order := range []string{"ccw", "cw"} {
				var w math3d.Vec3
				var ok bool
				if order == "ccw" {
					w, ok = barycentric(p0, p1, p2, tc.px, tc.py)
				} else {
					// Swapping two vertices swaps their weights.
					w, ok = barycentric(p0, p2, p1, tc.px, tc.py)
					w.Y, w.Z = w.Z, w.Y
				}
				if !ok {
					t.Fatalf("%s: unexpected degenerate triangle", order)
				}
				if math.Abs(w.X-tc.want.X) > 1e-12 || math.Abs(w.Y-tc.want.Y) > 1e-12 || math.Abs(w.Z-tc.want.Z) > 1e-12 {
					t.Errorf("%s: barycentric = %v, want %v", order, w, tc.want)
				}
				if inside(w) != tc.inside {
					t.Errorf("%s: inside = %v, want %v", order, inside(w), tc.inside)
				}
			}
		})
	}

	if _, ok := barycentric(p0, p1, math3d.V2(2, 0), 0.5, 0); ok {
		t.Error("collinear triangle should be degenerate")
	}
}

func TestInterpolateEqualDepthIsBarycentric(t *testing.T) {
	w := math3d.V3(0.2, 0.3, 0.5)
	a, b, c := math3d.V3(1, 0, 4), math3d.V3(0, 2, -1), math3d.V3(-3, 1, 0)
	want := a.Scale(w.X).Add(b.Scale(w.Y)).Add(c.Scale(w.Z))

	for _, depth := range []float64{0.01, 0.2, 1} {
		t.Run(fmt.Sprintf("depth %v", depth), func(t *testing.T) {
			v := [3]Varyings{{View: math3d.V3(0, 0, depth)}, {View: math3d.V3(0, 0, depth)}, {View: math3d.V3(0, 0, depth)}}
			tr := triangle{v: [3]*Varyings{&v[0], &v[1], &v[2]}}
			z, zt := tr.depthWeights(w)

			if math.Abs(zt-depth) > 1e-12 {
				t.Errorf("interpolated depth = %v, want %v", zt, depth)
			}
			got := interpolate(a, b, c, z.X, z.Y, z.Z, zt)
			if got.Sub(want).Len() > 1e-12 {
				t.Errorf("interpolate = %v, want %v", got, want)
			}
		})
	}
}

func TestInterpolatePerspectiveCorrect(t *testing.T) {
	// Halfway across the screen between a near and a far vertex lies closer
	// to the near one in view space.
	v := [3]Varyings{{View: math3d.V3(0, 0, 0.1)}, {View: math3d.V3(0, 0, 0.3)}, {View: math3d.V3(0, 0, 0.3)}}
	tr := triangle{v: [3]*Varyings{&v[0], &v[1], &v[2]}}
	z, zt := tr.depthWeights(math3d.V3(0.5, 0.25, 0.25))

	if want := 0.15; math.Abs(zt-want) > 1e-12 {
		t.Errorf("depth = %v, want %v", zt, want)
	}
	got := interpolate(Gray(0), Gray(1), Gray(1), z.X, z.Y, z.Z, zt)
	if want := 0.25; math.Abs(got.R-want) > 1e-12 {
		t.Errorf("attribute = %v, want %v", got.R, want)
	}
}

func TestRenderCoverageMatchesFragment(t *testing.T) {
	const size = 32
	for _, cull := range []CullMode{CullNone, CullClockwise} {
		t.Run(cull.String(), func(t *testing.T) {
			r := newTestRasterizer(t, Config{Width: size, Height: size, DrawColor: true, DrawDepth: true, Cull: cull})
			verts := tri(0.5, math3d.V2(-0.8, -0.7), math3d.V2(0.9, -0.5), math3d.V2(-0.2, 0.85))
			var calls atomic.Int64

			if err := r.Render(verts, []int{0, 1, 2}, ndcShader, counting(passColor(), &calls)); err != nil {
				t.Fatalf("Render: %v", err)
			}

			screen := func(v Vertex) math3d.Vec2 {
				return math3d.V2((v.Position.X+1)*0.5*size, (v.Position.Y+1)*0.5*size)
			}
			p0, p1, p2 := screen(verts[0]), screen(verts[1]), screen(verts[2])

			var inPixels int64
			for y := range size {
				for x := range size {
					got := r.Result().At(x, y)
					w, _ := barycentric(p0, p1, p2, float64(x)+0.5, float64(y)+0.5)
					if !inside(w) {
						if got != Black {
							t.Errorf("pixel (%d,%d) outside triangle = %v", x, y, got)
						}
						continue
					}
					inPixels++
					want := Color{w.X, w.Y, w.Z, 1}
					if !colorNear(got, want, 1e-9) {
						t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
					}
					if d := r.Depth()[y*size+x]; d != float32(0.5) {
						t.Errorf("depth (%d,%d) = %v, want 0.5", x, y, d)
					}
				}
			}
			if inPixels == 0 {
				t.Fatal("triangle covered no pixels")
			}
			if calls.Load() != inPixels {
				t.Errorf("fragment calls = %d, covered pixels = %d", calls.Load(), inPixels)
			}
		})
	}
}

func TestCullModes(t *testing.T) {
	a, b, c := math3d.V2(-0.5, -0.5), math3d.V2(0.5, -0.5), math3d.V2(0, 0.5)
	ccw := tri(0.5, a, b, c)
	cw := tri(0.5, a, c, b)

	tests := []struct {
		mode            CullMode
		drawCCW, drawCW bool
	}{
		{CullNone, true, true},
		{CullClockwise, true, false},
		{CullCounterClockwise, false, true},
		{CullAll, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			for _, in := range []struct {
				verts []Vertex
				want  bool
			}{{ccw, tc.drawCCW}, {cw, tc.drawCW}} {
				r := newTestRasterizer(t, Config{Width: 16, Height: 16, DrawColor: true, DrawDepth: true, Cull: tc.mode})
				if err := r.Render(in.verts, []int{0, 1, 2}, ndcShader, solid(White)); err != nil {
					t.Fatalf("Render: %v", err)
				}
				if got := covered(r.Result()) > 0; got != in.want {
					t.Errorf("drawn = %v, want %v", got, in.want)
				}
			}
		})
	}
}

func TestCullWindingComplementary(t *testing.T) {
	a, b, c := math3d.V2(-0.6, -0.4), math3d.V2(0.7, -0.2), math3d.V2(0.1, 0.6)
	forward := tri(0.4, a, b, c)
	reversed := tri(0.4, a, c, b)

	drawn := func(mode CullMode, verts []Vertex) bool {
		r := newTestRasterizer(t, Config{Width: 16, Height: 16, DrawColor: true, DrawDepth: true, Cull: mode})
		if err := r.Render(verts, []int{0, 1, 2}, ndcShader, solid(White)); err != nil {
			t.Fatalf("Render: %v", err)
		}
		return covered(r.Result()) > 0
	}

	if drawn(CullClockwise, forward) == drawn(CullCounterClockwise, forward) {
		t.Error("forward winding drawn identically under both single-winding modes")
	}
	if drawn(CullClockwise, forward) != drawn(CullCounterClockwise, reversed) {
		t.Error("reversing winding and mode changed the outcome")
	}
}

func TestMSAAMatchesSingleSampleOnSolidFill(t *testing.T) {
	fill := Color{0.3, 0.6, 0.9, 1}
	render := func(msaa bool) *Framebuffer {
		r := newTestRasterizer(t, Config{Width: 20, Height: 12, DrawColor: true, DrawDepth: true, MSAA: msaa})
		if err := r.Render(fullscreen(0.5), []int{0, 1, 2}, ndcShader, solid(fill)); err != nil {
			t.Fatalf("Render: %v", err)
		}
		return r.Result()
	}

	single, multi := render(false), render(true)
	if !slices.Equal(single.Pix, multi.Pix) {
		t.Error("MSAA and single-sample results differ for a solid fill")
	}
	if single.Pix[0] != fill {
		t.Errorf("pixel = %v, want %v", single.Pix[0], fill)
	}
}

func TestMSAAShadesOncePerPixel(t *testing.T) {
	const w, h = 24, 24
	r := newTestRasterizer(t, Config{Width: w, Height: h, DrawColor: true, DrawDepth: true, MSAA: true})
	verts := tri(0.5, math3d.V2(-0.9, -0.8), math3d.V2(0.7, -0.3), math3d.V2(-0.1, 0.9))
	var calls atomic.Int64

	if err := r.Render(verts, []int{0, 1, 2}, ndcShader, counting(solid(White), &calls)); err != nil {
		t.Fatalf("Render: %v", err)
	}

	screen := func(v Vertex) math3d.Vec2 {
		return math3d.V2((v.Position.X+1)*0.5*w, (v.Position.Y+1)*0.5*h)
	}
	p0, p1, p2 := screen(verts[0]), screen(verts[1]), screen(verts[2])

	var pixels int64
	for y := range h {
		for x := range w {
			n := 0
			for _, off := range msaaOffsets {
				if wt, _ := barycentric(p0, p1, p2, float64(x)+off.X, float64(y)+off.Y); inside(wt) {
					n++
				}
			}
			if n > 0 {
				pixels++
			}
			want := float64(n) / Samples
			if got := r.Result().At(x, y).R; math.Abs(got-want) > 1e-12 {
				t.Errorf("pixel (%d,%d) = %v, want coverage %v", x, y, got, want)
			}
		}
	}
	if calls.Load() != pixels {
		t.Errorf("fragment calls = %d, want one per touched pixel (%d)", calls.Load(), pixels)
	}
}

func TestMSAAShadingPoint(t *testing.T) {
	const w, h = 24, 24
	r := newTestRasterizer(t, Config{Width: w, Height: h, DrawColor: true, DrawDepth: true, MSAA: true})
	// Equal depths make the red channel the plain barycentric weight of
	// vertex 0 at the point where the fragment stage ran.
	verts := tri(0.5, math3d.V2(-0.9, -0.8), math3d.V2(0.7, -0.3), math3d.V2(-0.1, 0.9))

	if err := r.Render(verts, []int{0, 1, 2}, ndcShader, passColor()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	screen := func(v Vertex) math3d.Vec2 {
		return math3d.V2((v.Position.X+1)*0.5*w, (v.Position.Y+1)*0.5*h)
	}
	p0, p1, p2 := screen(verts[0]), screen(verts[1]), screen(verts[2])
	covers := func(px, py float64) (math3d.Vec3, bool) {
		wt, ok := barycentric(p0, p1, p2, px, py)
		return wt, ok && inside(wt)
	}

	var centered, edges int
	for y := range h {
		for x := range w {
			n := 0
			var first math3d.Vec3
			for _, off := range msaaOffsets {
				if wt, ok := covers(float64(x)+off.X, float64(y)+off.Y); ok {
					if n == 0 {
						first = wt
					}
					n++
				}
			}
			if n == 0 {
				continue
			}

			at := first
			if wt, ok := covers(float64(x)+0.5, float64(y)+0.5); ok {
				at = wt
				centered++
			} else {
				edges++
			}
			want := at.X * float64(n) / Samples
			if got := r.Result().At(x, y).R; math.Abs(got-want) > 1e-9 {
				t.Errorf("pixel (%d,%d) red = %v, want %v", x, y, got, want)
			}
		}
	}
	if centered == 0 || edges == 0 {
		t.Fatalf("triangle covered %d center pixels and %d edge-only pixels, want both", centered, edges)
	}
}

func TestDepthTestIdempotent(t *testing.T) {
	for _, msaa := range []bool{false, true} {
		r := newTestRasterizer(t, Config{Width: 16, Height: 16, DrawColor: true, DrawDepth: true, MSAA: msaa})
		verts := tri(0.35, math3d.V2(-0.8, -0.8), math3d.V2(0.8, -0.6), math3d.V2(0, 0.8))

		if err := r.Render(verts, []int{0, 1, 2}, ndcShader, solid(White)); err != nil {
			t.Fatalf("Render: %v", err)
		}
		before := slices.Clone(r.Depth())

		var calls atomic.Int64
		if err := r.Render(verts, []int{0, 1, 2}, ndcShader, counting(solid(White), &calls)); err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !slices.Equal(before, r.Depth()) {
			t.Errorf("msaa=%v: second identical draw changed the depth buffer", msaa)
		}
		if calls.Load() != 0 {
			t.Errorf("msaa=%v: %d fragments passed an equal-depth test", msaa, calls.Load())
		}
	}
}

func TestDepthOcclusion(t *testing.T) {
	near := fullscreen(0.2)
	far := fullscreen(0.6)
	red, blue := RGB(1, 0, 0), RGB(0, 0, 1)

	tests := []struct {
		name  string
		order [2][]Vertex
		fs    [2]Color
	}{
		{"near first", [2][]Vertex{near, far}, [2]Color{red, blue}},
		{"far first", [2][]Vertex{far, near}, [2]Color{blue, red}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRasterizer(t, Config{Width: 8, Height: 8, DrawColor: true, DrawDepth: true})
			for i := range 2 {
				if err := r.Render(tc.order[i], []int{0, 1, 2}, ndcShader, solid(tc.fs[i])); err != nil {
					t.Fatalf("Render: %v", err)
				}
			}
			if got := r.Result().At(4, 4); got != red {
				t.Errorf("pixel = %v, want the near triangle's color", got)
			}
		})
	}
}

func TestDepthWriteDisabled(t *testing.T) {
	r := newTestRasterizer(t, Config{Width: 8, Height: 8, DrawColor: true})
	if err := r.Render(fullscreen(0.5), []int{0, 1, 2}, ndcShader, solid(White)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, d := range r.Depth() {
		if d != MaxRelativeDepth {
			t.Fatalf("depth written with DrawDepth off: %v", d)
		}
	}
	if covered(r.Result()) != 64 {
		t.Errorf("covered = %d, want 64", covered(r.Result()))
	}
}

func TestRenderSkipsDegenerateAndOffscreen(t *testing.T) {
	tests := []struct {
		name  string
		verts []Vertex
	}{
		{"zero area", tri(0.5, math3d.V2(-0.5, 0), math3d.V2(0, 0), math3d.V2(0.5, 0))},
		{"left of viewport", tri(0.5, math3d.V2(-3, -0.5), math3d.V2(-1.5, -0.5), math3d.V2(-2, 0.5))},
		{"above viewport", tri(0.5, math3d.V2(-0.5, 1.5), math3d.V2(0.5, 1.5), math3d.V2(0, 2.5))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRasterizer(t, Config{Width: 16, Height: 16, DrawColor: true, DrawDepth: true, MSAA: true})
			var calls atomic.Int64
			if err := r.Render(tc.verts, []int{0, 1, 2}, ndcShader, counting(solid(White), &calls)); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if calls.Load() != 0 {
				t.Errorf("fragment calls = %d, want 0", calls.Load())
			}
		})
	}
}

func TestSetMSAAToggle(t *testing.T) {
	r := newTestRasterizer(t, Config{Width: 10, Height: 10, DrawColor: true, DrawDepth: true})
	depthLen := len(r.Depth())

	r.SetMSAA(true)
	if err := r.Render(fullscreen(0.5), []int{0, 1, 2}, ndcShader, solid(White)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(r.Depth()) != depthLen {
		t.Error("toggling MSAA reallocated the depth buffer")
	}
	if covered(r.Result()) != 100 {
		t.Errorf("covered = %d, want 100", covered(r.Result()))
	}

	r.ClearColor()
	if covered(r.Result()) != 0 {
		t.Error("ClearColor left colored pixels")
	}
	r.ClearDepth()
	if r.Depth()[0] != MaxRelativeDepth {
		t.Error("ClearDepth did not reset depth")
	}
}

func TestShadowMap(t *testing.T) {
	t.Run("single sample", func(t *testing.T) {
		r := newTestRasterizer(t, Config{Width: 8, Height: 4, DrawDepth: true})
		if err := r.Render(fullscreen(0.3), []int{0, 1, 2}, ndcShader, solid(Black)); err != nil {
			t.Fatalf("Render: %v", err)
		}
		sm := r.ShadowMap()
		if sm.Width != 8 || sm.Height != 4 || len(sm.Depth) != 32 {
			t.Fatalf("shadow map %dx%d with %d texels", sm.Width, sm.Height, len(sm.Depth))
		}
		d, ok := sm.At(7, 3)
		if !ok || math.Abs(float64(d)-0.3) > 1e-6 {
			t.Errorf("At(7,3) = %v, %v", d, ok)
		}
		if _, ok := sm.At(8, 0); ok {
			t.Error("At outside the map reported ok")
		}
		if got := sm.Sample(2, -1); got != sm.Depth[sm.Width-1] {
			t.Errorf("Sample did not clamp: %v", got)
		}
	})

	t.Run("multisample", func(t *testing.T) {
		r := newTestRasterizer(t, Config{Width: 8, Height: 8, DrawDepth: true, MSAA: true})
		verts := tri(0.3, math3d.V2(-0.9, -0.9), math3d.V2(0.9, -0.7), math3d.V2(0, 0.9))
		if err := r.Render(verts, []int{0, 1, 2}, ndcShader, solid(Black)); err != nil {
			t.Fatalf("Render: %v", err)
		}
		sm := r.ShadowMap()
		raw := r.Depth()
		for i, d := range sm.Depth {
			if want := slices.Min(raw[i*Samples : i*Samples+Samples]); d != want {
				t.Fatalf("texel %d = %v, want nearest sample %v", i, d, want)
			}
		}
	})
}

func TestCullModeParse(t *testing.T) {
	for _, m := range []CullMode{CullNone, CullClockwise, CullCounterClockwise, CullAll} {
		got, err := ParseCullMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseCullMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseCullMode("sideways"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func gridMesh(n int) ([]Vertex, []int) {
	var verts []Vertex
	var idx []int
	step := 2.0 / float64(n)
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			verts = append(verts, Vertex{
				Position: math3d.V3(-1+float64(x)*step, -1+float64(y)*step, 0.5),
				Color:    Gray(float64(x+y) / float64(2*n)),
			})
		}
	}
	for y := range n {
		for x := range n {
			i := y*(n+1) + x
			idx = append(idx, i, i+1, i+n+2, i, i+n+2, i+n+1)
		}
	}
	return verts, idx
}

func BenchmarkRender(b *testing.B) {
	verts, idx := gridMesh(16)
	for _, msaa := range []bool{false, true} {
		name := "single"
		if msaa {
			name = "msaa"
		}
		b.Run(name, func(b *testing.B) {
			r := newTestRasterizer(b, Config{Width: 320, Height: 240, DrawColor: true, DrawDepth: true, MSAA: msaa})
			for b.Loop() {
				r.Clear()
				_ = r.Render(verts, idx, ndcShader, passColor())
			}
		})
	}
}
