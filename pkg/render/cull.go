package render

import (
	"fmt"

	"github.com/taigrr/raster3d/pkg/math3d"
)

// CullMode selects which triangle windings are discarded. Winding is judged
// as seen from the eye: counter-clockwise on screen (y up) is front facing
// under the usual right-handed convention.
//
// Modes are named after the winding they discard, so CullClockwise keeps
// counter-clockwise fronts. Configs that name the mode after the winding it
// keeps must swap clockwise and counter-clockwise.
type CullMode int

const (
	CullNone             CullMode = iota // draw both windings
	CullClockwise                        // draw only counter-clockwise triangles
	CullCounterClockwise                 // draw only clockwise triangles
	CullAll                              // draw nothing
)

var cullNames = [...]string{
	CullNone:             "none",
	CullClockwise:        "clockwise",
	CullCounterClockwise: "counter-clockwise",
	CullAll:              "all",
}

func (m CullMode) String() string {
	if m < 0 || int(m) >= len(cullNames) {
		return fmt.Sprintf("CullMode(%d)", int(m))
	}
	return cullNames[m]
}

// ParseCullMode parses the names produced by CullMode.String. "cw" and "ccw"
// are accepted as short forms.
func ParseCullMode(s string) (CullMode, error) {
	switch s {
	case "", "none":
		return CullNone, nil
	case "clockwise", "cw":
		return CullClockwise, nil
	case "counter-clockwise", "ccw":
		return CullCounterClockwise, nil
	case "all":
		return CullAll, nil
	}
	return CullNone, fmt.Errorf("unknown cull mode %q", s)
}

// winding returns dot(cross(p2-p0, p1-p0), eye-p0) for view positions as
// produced by ViewPosition, with the eye at the origin. It is positive for
// counter-clockwise triangles.
func winding(p0, p1, p2 math3d.Vec3) float64 {
	return p2.Sub(p0).Cross(p1.Sub(p0)).Dot(p0.Negate())
}

func (m CullMode) culls(p0, p1, p2 math3d.Vec3) bool {
	switch m {
	case CullAll:
		return true
	case CullClockwise:
		return winding(p0, p1, p2) < cullEpsilon
	case CullCounterClockwise:
		return winding(p0, p1, p2) > cullEpsilon
	}
	return false
}
