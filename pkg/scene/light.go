package scene

import "github.com/taigrr/raster3d/pkg/math3d"

// LightCamera is the orthographic camera a directional light renders its
// shadow map from.
type LightCamera struct {
	Position   math3d.Vec3
	Forward    math3d.Vec3
	HalfWidth  float64
	HalfHeight float64
	Near, Far  float64
}

// View returns the light's world to view matrix.
func (c LightCamera) View() math3d.Mat4 {
	return math3d.LookAt(c.Position, c.Position.Add(c.Forward), math3d.Up())
}

// Projection returns the light's orthographic projection.
func (c LightCamera) Projection() math3d.Mat4 {
	return math3d.Orthographic(-c.HalfWidth, c.HalfWidth, -c.HalfHeight, c.HalfHeight, c.Near, c.Far)
}

// DirectionalLight is a light at Position shining towards Target.
type DirectionalLight struct {
	position  math3d.Vec3
	direction math3d.Vec3
	target    math3d.Vec3
	camera    LightCamera
}

// NewDirectionalLight creates a light at pos aimed at target, covering a
// (2*halfWidth x 2*halfHeight) shadow volume between near and far.
func NewDirectionalLight(pos, target math3d.Vec3, halfWidth, halfHeight, near, far float64) *DirectionalLight {
	l := &DirectionalLight{
		position: pos,
		target:   target,
		camera: LightCamera{
			HalfWidth:  halfWidth,
			HalfHeight: halfHeight,
			Near:       near,
			Far:        far,
		},
	}
	l.SetTarget(target)
	return l
}

// DefaultLight returns the demo light above and to the side of the scene.
func DefaultLight() *DirectionalLight {
	return NewDirectionalLight(math3d.V3(5, 10, 5), math3d.V3(0, 2, 0), 10, 10, 0.1, 50)
}

// Position returns the light position.
func (l *DirectionalLight) Position() math3d.Vec3 { return l.position }

// Direction returns the unit light direction.
func (l *DirectionalLight) Direction() math3d.Vec3 { return l.direction }

// Target returns the point the light is aimed at.
func (l *DirectionalLight) Target() math3d.Vec3 { return l.target }

// SetPosition moves the light and re-aims it at its target.
func (l *DirectionalLight) SetPosition(pos math3d.Vec3) {
	l.position = pos
	l.SetTarget(l.target)
}

// SetTarget aims the light at p.
func (l *DirectionalLight) SetTarget(p math3d.Vec3) {
	l.target = p
	l.direction = p.Sub(l.position).Normalize()
	l.sync()
}

// SetDirection points the light along dir, keeping the target at the same
// distance.
func (l *DirectionalLight) SetDirection(dir math3d.Vec3) {
	dist := l.target.Sub(l.position).Len()
	l.direction = dir.Normalize()
	l.target = l.position.Add(l.direction.Scale(dist))
	l.sync()
}

func (l *DirectionalLight) sync() {
	l.camera.Position = l.position
	l.camera.Forward = l.direction
}

// Camera returns the shadow camera.
func (l *DirectionalLight) Camera() LightCamera { return l.camera }
