// Package scene holds the cameras, lights, primitive meshes and object
// registry that the demo renders.
package scene

import (
	"math"

	"github.com/taigrr/raster3d/pkg/math3d"
)

// MaxPitch bounds the camera pitch in degrees.
const MaxPitch = 80.0

// FPSCamera is a perspective camera steered by yaw and pitch in degrees.
// Yaw -90 looks down -Z.
type FPSCamera struct {
	position math3d.Vec3
	yaw      float64
	pitch    float64

	fov    float64 // vertical, degrees
	aspect float64
	near   float64
	far    float64

	forward, right, up math3d.Vec3

	view      math3d.Mat4
	proj      math3d.Mat4
	viewDirty bool
	projDirty bool
}

// NewFPSCamera creates a camera at pos with the given orientation and
// projection.
func NewFPSCamera(pos math3d.Vec3, yaw, pitch, fov, aspect, near, far float64) *FPSCamera {
	c := &FPSCamera{
		position:  pos,
		yaw:       yaw,
		pitch:     math3d.Clamp(pitch, -MaxPitch, MaxPitch),
		fov:       fov,
		aspect:    aspect,
		near:      near,
		far:       far,
		viewDirty: true,
		projDirty: true,
	}
	c.updateBasis()
	return c
}

// DefaultCamera returns the demo camera: ten units back along +Z, one unit
// up, 45 degree field of view.
func DefaultCamera(aspect float64) *FPSCamera {
	return NewFPSCamera(math3d.V3(0, 1, 10), -90, 0, 45, aspect, 1, 1000)
}

func (c *FPSCamera) updateBasis() {
	y, p := math3d.Radians(c.yaw), math3d.Radians(c.pitch)
	c.forward = math3d.V3(
		math.Cos(p)*math.Cos(y),
		math.Sin(p),
		math.Cos(p)*math.Sin(y),
	).Normalize()
	c.right = c.forward.Cross(math3d.Up()).Normalize()
	c.up = c.right.Cross(c.forward).Normalize()
	c.viewDirty = true
}

// Position returns the eye position.
func (c *FPSCamera) Position() math3d.Vec3 { return c.position }

// Yaw returns the yaw in degrees.
func (c *FPSCamera) Yaw() float64 { return c.yaw }

// Pitch returns the pitch in degrees.
func (c *FPSCamera) Pitch() float64 { return c.pitch }

// Forward returns the unit viewing direction.
func (c *FPSCamera) Forward() math3d.Vec3 { return c.forward }

// Right returns the unit right vector.
func (c *FPSCamera) Right() math3d.Vec3 { return c.right }

// Up returns the unit up vector of the camera basis.
func (c *FPSCamera) Up() math3d.Vec3 { return c.up }

// SetPosition moves the eye.
func (c *FPSCamera) SetPosition(pos math3d.Vec3) {
	c.position = pos
	c.viewDirty = true
}

// SetAspect changes the projection aspect ratio.
func (c *FPSCamera) SetAspect(aspect float64) {
	c.aspect = aspect
	c.projDirty = true
}

// Move translates the camera along its own basis.
func (c *FPSCamera) Move(forward, right, up float64) {
	d := c.forward.Scale(forward).Add(c.right.Scale(right)).Add(c.up.Scale(up))
	c.position = c.position.Add(d)
	c.viewDirty = true
}

// Turn adds to yaw and pitch (degrees). Pitch stays within +-MaxPitch.
func (c *FPSCamera) Turn(dyaw, dpitch float64) {
	c.yaw += dyaw
	c.pitch = math3d.Clamp(c.pitch+dpitch, -MaxPitch, MaxPitch)
	c.updateBasis()
}

// View returns the world to view matrix.
func (c *FPSCamera) View() math3d.Mat4 {
	if c.viewDirty {
		c.view = math3d.LookAt(c.position, c.position.Add(c.forward), math3d.Up())
		c.viewDirty = false
	}
	return c.view
}

// Projection returns the perspective projection.
func (c *FPSCamera) Projection() math3d.Mat4 {
	if c.projDirty {
		c.proj = math3d.Perspective(math3d.Radians(c.fov), c.aspect, c.near, c.far)
		c.projDirty = false
	}
	return c.proj
}

// Frustum returns the current view frustum in world space.
func (c *FPSCamera) Frustum() Frustum {
	return NewFrustum(c.Projection().Mul(c.View()))
}
