package shader

import (
	"math"
	"math/rand/v2"

	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/render"
)

// MaxDiskSamples bounds PCSSParams.Samples.
const MaxDiskSamples = 64

// PCSSParams tunes percentage-closer soft shadows. Radii are in shadow-map
// texels, depths and biases in shadow-map depth units.
type PCSSParams struct {
	Samples       int     // taps per search, at most MaxDiskSamples
	Rings         int     // turns of the sample spiral
	BlockerRadius float64 // blocker search radius
	LightWidth    float64 // penumbra scale
	BlockerBias   float64
	PCFBias       float64
	Seed          uint64 // rotates the sample pattern
}

// DefaultPCSSParams returns the parameters the demo scene is tuned for.
//
// With Rings equal to Samples the angle step is a full turn, so every tap of
// one search lies on a single ray from the receiver; the per-fragment
// rotation is what spreads the taps over the disk.
func DefaultPCSSParams() PCSSParams {
	return PCSSParams{
		Samples:       10,
		Rings:         10,
		BlockerRadius: 5,
		LightWidth:    10,
		BlockerBias:   0.01,
		PCFBias:       0.02,
	}
}

// PCSS shades a receiver with soft shadows from a shadow map. Where no
// blocker is found it returns the interpolated vertex color unchanged;
// otherwise it returns the visibility as an opaque gray.
type PCSS struct {
	Map    render.ShadowMap
	Params PCSSParams
}

// NewPCSS returns a PCSS stage over m with DefaultPCSSParams.
func NewPCSS(m render.ShadowMap) PCSS {
	return PCSS{Map: m, Params: DefaultPCSSParams()}
}

// Fragment implements render.FragmentShader.
func (s PCSS) Fragment(in render.FragmentInput) render.Color {
	p := shadowCoords(in.Shadow)
	n := min(max(s.Params.Samples, 1), MaxDiskSamples)

	// Seeded by texel so results are reproducible and need no shared state.
	rng := rand.NewPCG(s.Params.Seed, s.texelKey(p))
	var buf [MaxDiskSamples]math3d.Vec2
	disk := buf[:n]

	Disk(disk, s.Params.Rings, randomAngle(rng))
	avg, blockers := s.blockerSearch(disk, p)
	if blockers == 0 {
		return in.Color
	}

	penumbra := s.penumbra(p.Z, avg)
	Disk(disk, s.Params.Rings, randomAngle(rng))
	return render.Gray(s.visibility(disk, p, penumbra))
}

// Disk fills out with a spiral of points starting at angle. Point i has
// radius ((i+1)/len(out))^0.75 and the angle advances 2*pi*rings/len(out)
// per point.
func Disk(out []math3d.Vec2, rings int, angle float64) {
	n := float64(len(out))
	step := 2 * math.Pi * float64(rings) / n
	radius := 1 / n
	for i := range out {
		s, c := math.Sincos(angle)
		out[i] = math3d.V2(c, s).Scale(math.Pow(radius, 0.75))
		radius += 1 / n
		angle += step
	}
}

func randomAngle(rng *rand.PCG) float64 {
	return float64(rng.Uint64()>>11) * 0x1p-53 * 2 * math.Pi
}

func (s PCSS) texelKey(p math3d.Vec3) uint64 {
	x := int64(math.Floor(p.X * float64(s.Map.Width)))
	y := int64(math.Floor(p.Y * float64(s.Map.Height)))
	return uint64(uint32(x))<<32 | uint64(uint32(y))
}

// tap returns the shadow-map depth at p offset by d texels.
func (s PCSS) tap(p math3d.Vec3, d math3d.Vec2) (float64, bool) {
	u := int(p.X*float64(s.Map.Width) + d.X)
	v := int(p.Y*float64(s.Map.Height) + d.Y)
	depth, ok := s.Map.At(u, v)
	return float64(depth), ok
}

// blockerSearch averages the depths of taps that occlude the receiver.
func (s PCSS) blockerSearch(disk []math3d.Vec2, p math3d.Vec3) (avg float64, count int) {
	var sum float64
	for _, d := range disk {
		depth, ok := s.tap(p, d.Scale(s.Params.BlockerRadius))
		if !ok {
			continue
		}
		if p.Z+s.Params.BlockerBias > depth {
			sum += depth
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return sum / float64(count), count
}

// penumbra estimates the filter radius from the receiver and average
// blocker depths. A non-positive blocker depth yields 0.
func (s PCSS) penumbra(receiver, blocker float64) float64 {
	if blocker <= 0 {
		return 0
	}
	return s.Params.LightWidth * math.Max(receiver-blocker, 0) / blocker
}

// visibility is the lit fraction of in-bounds taps within radius texels.
// With no tap inside the map the receiver counts as fully lit.
func (s PCSS) visibility(disk []math3d.Vec2, p math3d.Vec3, radius float64) float64 {
	var lit, total int
	for _, d := range disk {
		depth, ok := s.tap(p, d.Scale(radius))
		if !ok {
			continue
		}
		total++
		if depth+s.Params.PCFBias > p.Z {
			lit++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(lit) / float64(total)
}
