package render

// ShadowMap is a read-only view of a depth buffer rendered from a light,
// one value per texel, row-major with a bottom-left origin.
type ShadowMap struct {
	Width  int
	Height int
	Depth  []float32
}

// ShadowMap exposes the current depth buffer as a ShadowMap. In single-sample
// mode the result aliases the depth buffer and is only valid until the next
// Render or Clear; in MSAA mode each texel is the nearest of its sub-samples.
func (r *Rasterizer) ShadowMap() ShadowMap {
	w, h := r.cfg.Width, r.cfg.Height
	if !r.cfg.MSAA {
		return ShadowMap{Width: w, Height: h, Depth: r.depth[:w*h]}
	}
	out := make([]float32, w*h)
	for i := range out {
		s := r.depth[i*Samples : i*Samples+Samples]
		out[i] = min(s[0], s[1], s[2], s[3])
	}
	return ShadowMap{Width: w, Height: h, Depth: out}
}

// At returns the depth stored at texel (x, y). ok is false outside the map.
func (m ShadowMap) At(x, y int) (depth float32, ok bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return 0, false
	}
	return m.Depth[y*m.Width+x], true
}

// Sample returns the depth at normalized coordinates (u, v), truncated to a
// texel and clamped to the map edges.
func (m ShadowMap) Sample(u, v float64) float32 {
	x := min(max(int(u*float64(m.Width)), 0), m.Width-1)
	y := min(max(int(v*float64(m.Height)), 0), m.Height-1)
	return m.Depth[y*m.Width+x]
}
