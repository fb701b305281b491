// Package render is a CPU triangle rasterizer with pluggable vertex and
// fragment stages, perspective-correct interpolation, a strict-less depth
// test, winding culling and 4x multisampling.
//
// Buffers use a bottom-left origin: row 0 is NDC y = -1.
package render

import (
	"fmt"
	"image"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/raster3d/pkg/math3d"
)

// Samples is the number of sub-samples stored per pixel. Buffers are always
// allocated at this capacity so multisampling can be toggled freely.
const Samples = 4

// msaaOffsets are the sub-pixel sample positions of the 4x pattern.
var msaaOffsets = [Samples]math3d.Vec2{
	{X: 0.375, Y: 0.125},
	{X: 0.875, Y: 0.375},
	{X: 0.125, Y: 0.625},
	{X: 0.625, Y: 0.875},
}

// cullEpsilon is the winding threshold of the cull test.
const cullEpsilon = 1e-4

// Minimum work per parallel task.
const (
	vertexGrain = 1024
	rowGrain    = 8
)

// Config describes a rasterizer. Width and Height are fixed for its lifetime.
type Config struct {
	Width     int
	Height    int
	DrawColor bool
	DrawDepth bool
	MSAA      bool
	Cull      CullMode
	Workers   int // 0 uses GOMAXPROCS
}

// Rasterizer owns a multisampled color buffer, a matching depth buffer and
// the resolved render result. A Rasterizer is not safe for concurrent use;
// each Render fans its own work out across goroutines.
type Rasterizer struct {
	cfg     Config
	workers int

	frame  []Color
	depth  []float32
	result *Framebuffer

	shaded []Varyings
}

// NewRasterizer allocates all buffers for cfg and clears them. It returns
// ErrInvalidSize, and allocates nothing, if either dimension is not positive.
func NewRasterizer(cfg Config) (*Rasterizer, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	n := cfg.Width * cfg.Height
	r := &Rasterizer{
		cfg:     cfg,
		workers: workers,
		frame:   make([]Color, n*Samples),
		depth:   make([]float32, n*Samples),
		result:  NewFramebuffer(cfg.Width, cfg.Height),
	}
	r.Clear()
	return r, nil
}

// Width returns the buffer width in pixels.
func (r *Rasterizer) Width() int { return r.cfg.Width }

// Height returns the buffer height in pixels.
func (r *Rasterizer) Height() int { return r.cfg.Height }

// Config returns the current configuration.
func (r *Rasterizer) Config() Config { return r.cfg }

// SetMSAA toggles multisampling. Buffers are not reallocated.
func (r *Rasterizer) SetMSAA(on bool) { r.cfg.MSAA = on }

// SetCullMode changes which windings are rasterized.
func (r *Rasterizer) SetCullMode(m CullMode) { r.cfg.Cull = m }

// Clear resets color and depth.
func (r *Rasterizer) Clear() {
	r.ClearColor()
	r.ClearDepth()
}

// ClearColor resets every sample and the render result to opaque black.
func (r *Rasterizer) ClearColor() {
	fill(r.frame, Black)
	fill(r.result.Pix, Black)
}

// ClearDepth resets every depth sample to MaxRelativeDepth.
func (r *Rasterizer) ClearDepth() {
	fill(r.depth, float32(MaxRelativeDepth))
}

// fill sets every element of s to v, doubling the initialized prefix with
// copy on each step.
func fill[T any](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}

// Result returns the resolved color buffer. It is updated in place by Render.
func (r *Rasterizer) Result() *Framebuffer { return r.result }

// Depth returns the raw depth buffer, Samples values per pixel in MSAA layout
// ((y*width+x)*Samples + i), or one value per pixel at y*width+x for a
// rasterizer that never multisampled.
func (r *Rasterizer) Depth() []float32 { return r.depth }

// Render runs vs over vertices, assembles triangles from consecutive index
// triples and rasterizes them in order with fs. In MSAA mode the pixels
// touched by this call are resolved into Result before returning.
//
// Malformed index lists are rejected before any buffer is touched.
func (r *Rasterizer) Render(vertices []Vertex, indices []int, vs VertexShader, fs FragmentShader) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: got %d", ErrIndexCount, len(indices))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(vertices) {
			return fmt.Errorf("%w: indices[%d] = %d with %d vertices", ErrIndexRange, i, idx, len(vertices))
		}
	}
	if len(indices) == 0 || r.cfg.Cull == CullAll {
		return nil
	}

	shaded := r.shade(vertices, vs)

	var dirty image.Rectangle
	for t := 0; t < len(indices); t += 3 {
		box, drawn := r.drawTriangle(&shaded[indices[t]], &shaded[indices[t+1]], &shaded[indices[t+2]], fs)
		if drawn {
			dirty = dirty.Union(box)
		}
	}

	if r.cfg.MSAA && r.cfg.DrawColor && !dirty.Empty() {
		r.resolve(dirty)
	}
	return nil
}

// Resolve averages the sub-samples of every pixel into Result.
func (r *Rasterizer) Resolve() {
	r.resolve(image.Rect(0, 0, r.cfg.Width, r.cfg.Height))
}

// shade runs the vertex stage and maps each result to the screen:
// x, y to [0,width]x[0,height], z to [0,1], w replaced by 1/w.
func (r *Rasterizer) shade(vertices []Vertex, vs VertexShader) []Varyings {
	if cap(r.shaded) < len(vertices) {
		r.shaded = make([]Varyings, len(vertices))
	}
	out := r.shaded[:len(vertices)]
	w, h := float64(r.cfg.Width), float64(r.cfg.Height)

	r.parallel(0, len(vertices), vertexGrain, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			v := vs.Vertex(vertices[i])
			ndc := v.Clip.PerspectiveDivide()
			v.Clip = math3d.Vec4{
				X: (ndc.X + 1) * 0.5 * w,
				Y: (ndc.Y + 1) * 0.5 * h,
				Z: (ndc.Z + 1) * 0.5,
				W: 1 / v.Clip.W,
			}
			out[i] = v
		}
	})
	return out
}

// triangle is one assembled, screen-mapped triangle.
type triangle struct {
	v [3]*Varyings
	p [3]math3d.Vec2
}

func (t *triangle) weights(px, py float64) (math3d.Vec3, bool) {
	w, ok := barycentric(t.p[0], t.p[1], t.p[2], px, py)
	return w, ok && inside(w)
}

// depthWeights returns the perspective-correct weights for barycentric w and
// their reciprocal sum, which is also the fragment depth.
func (t *triangle) depthWeights(w math3d.Vec3) (z math3d.Vec3, zt float64) {
	z = math3d.V3(w.X/t.v[0].View.Z, w.Y/t.v[1].View.Z, w.Z/t.v[2].View.Z)
	return z, 1 / (z.X + z.Y + z.Z)
}

func (t *triangle) fragment(x, y int, z math3d.Vec3, zt float64) FragmentInput {
	a, b, c := t.v[0], t.v[1], t.v[2]
	return FragmentInput{
		X:            x,
		Y:            y,
		View:         interpolate(a.View, b.View, c.View, z.X, z.Y, z.Z, zt),
		Normal:       interpolate(a.Normal, b.Normal, c.Normal, z.X, z.Y, z.Z, zt).Normalize(),
		Color:        interpolate(a.Color, b.Color, c.Color, z.X, z.Y, z.Z, zt),
		Shadow:       interpolate(a.Shadow, b.Shadow, c.Shadow, z.X, z.Y, z.Z, zt),
		UV:           interpolate(a.UV, b.UV, c.UV, z.X, z.Y, z.Z, zt),
		TangentLight: interpolate(a.TangentLight, b.TangentLight, c.TangentLight, z.X, z.Y, z.Z, zt),
		TangentView:  interpolate(a.TangentView, b.TangentView, c.TangentView, z.X, z.Y, z.Z, zt),
		TangentFrag:  interpolate(a.TangentFrag, b.TangentFrag, c.TangentFrag, z.X, z.Y, z.Z, zt),
	}
}

// drawTriangle rasterizes one triangle and returns the pixel rectangle it
// scanned. drawn is false when the triangle was culled or off screen.
func (r *Rasterizer) drawTriangle(v0, v1, v2 *Varyings, fs FragmentShader) (box image.Rectangle, drawn bool) {
	if r.cfg.Cull.culls(v0.View, v1.View, v2.View) {
		return box, false
	}
	box, ok := r.bounds(v0.Clip, v1.Clip, v2.Clip)
	if !ok {
		return box, false
	}

	t := triangle{
		v: [3]*Varyings{v0, v1, v2},
		p: [3]math3d.Vec2{
			math3d.V2(v0.Clip.X, v0.Clip.Y),
			math3d.V2(v1.Clip.X, v1.Clip.Y),
			math3d.V2(v2.Clip.X, v2.Clip.Y),
		},
	}
	if edge(t.p[0], t.p[1], t.p[2].X, t.p[2].Y) == 0 {
		return box, false
	}

	msaa := r.cfg.MSAA
	r.parallel(box.Min.Y, box.Max.Y, rowGrain, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			for x := box.Min.X; x < box.Max.X; x++ {
				if msaa {
					r.shadeSamples(&t, x, y, fs)
				} else {
					r.shadePixel(&t, x, y, fs)
				}
			}
		}
	})
	return box, true
}

// bounds returns the screen-clamped bounding box of a triangle, or false if
// the box lies entirely outside [0,width)x[0,height).
func (r *Rasterizer) bounds(a, b, c math3d.Vec4) (image.Rectangle, bool) {
	w, h := float64(r.cfg.Width), float64(r.cfg.Height)
	minX, maxX := min(a.X, b.X, c.X), max(a.X, b.X, c.X)
	minY, maxY := min(a.Y, b.Y, c.Y), max(a.Y, b.Y, c.Y)

	// Written so that NaN coordinates are rejected too.
	if !(maxX >= 0 && minX < w && maxY >= 0 && minY < h) {
		return image.Rectangle{}, false
	}

	x0 := int(math.Max(math.Floor(minX), 0))
	y0 := int(math.Max(math.Floor(minY), 0))
	x1 := int(math.Min(maxX, w-1))
	y1 := int(math.Min(maxY, h-1))
	return image.Rect(x0, y0, x1+1, y1+1), true
}

// shadePixel handles one pixel in single-sample mode, sampling at its center
// and writing Result directly.
func (r *Rasterizer) shadePixel(t *triangle, x, y int, fs FragmentShader) {
	w, ok := t.weights(float64(x)+0.5, float64(y)+0.5)
	if !ok {
		return
	}
	z, zt := t.depthWeights(w)

	idx := y*r.cfg.Width + x
	d := float32(zt)
	if d >= r.depth[idx] {
		return
	}
	if r.cfg.DrawDepth {
		r.depth[idx] = d
	}
	if r.cfg.DrawColor {
		r.result.Pix[idx] = fs.Fragment(t.fragment(x, y, z, zt))
	}
}

// shadeSamples handles one pixel in MSAA mode. Each sub-sample is depth
// tested on its own, but fs runs at most once: at the pixel center if the
// center is covered, otherwise at the first sub-sample that passed.
func (r *Rasterizer) shadeSamples(t *triangle, x, y int, fs FragmentShader) {
	base := (y*r.cfg.Width + x) * Samples
	var (
		c      Color
		shaded bool
	)
	for i, off := range msaaOffsets {
		w, ok := t.weights(float64(x)+off.X, float64(y)+off.Y)
		if !ok {
			continue
		}
		z, zt := t.depthWeights(w)

		idx := base + i
		d := float32(zt)
		if d >= r.depth[idx] {
			continue
		}
		if r.cfg.DrawDepth {
			r.depth[idx] = d
		}
		if !r.cfg.DrawColor {
			continue
		}

		if !shaded {
			if cw, ok := t.weights(float64(x)+0.5, float64(y)+0.5); ok {
				z, zt = t.depthWeights(cw)
			}
			c = fs.Fragment(t.fragment(x, y, z, zt))
			shaded = true
		}
		r.frame[idx] = c
	}
}

// resolve averages sub-samples into Result for every pixel in rect.
func (r *Rasterizer) resolve(rect image.Rectangle) {
	width := r.cfg.Width
	r.parallel(rect.Min.Y, rect.Max.Y, rowGrain, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				i := y*width + x
				s := r.frame[i*Samples : i*Samples+Samples]
				r.result.Pix[i] = s[0].Add(s[1]).Add(s[2].Add(s[3])).Scale(0.25)
			}
		}
	})
}

// parallel splits [lo, hi) into at most r.workers contiguous, disjoint
// ranges of at least grain elements, runs fn on each and waits for all of
// them. Small ranges run on the calling goroutine.
func (r *Rasterizer) parallel(lo, hi, grain int, fn func(lo, hi int)) {
	n := hi - lo
	if n <= 0 {
		return
	}
	chunks := min(r.workers, (n+grain-1)/grain)
	if chunks <= 1 {
		fn(lo, hi)
		return
	}
	step := (n + chunks - 1) / chunks

	var g errgroup.Group
	g.SetLimit(r.workers)
	for start := lo; start < hi; start += step {
		end := min(start+step, hi)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
