package app

import "github.com/charmbracelet/harmonica"

// Axis is one rotational degree of freedom driven by impulses. Its velocity
// decays towards zero through a critically damped spring, so a tap on a key
// turns smoothly and coasts to a stop.
type Axis struct {
	Position float64
	Velocity float64

	spring harmonica.Spring
	accel  float64
}

// NewAxis creates an axis updated fps times per second.
func NewAxis(fps int) Axis {
	return Axis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// Update advances one tick and returns the distance moved.
func (a *Axis) Update() float64 {
	d := a.Velocity
	a.Position += d
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	return d
}

// Orbit steers the camera yaw and pitch (degrees) from impulses.
type Orbit struct {
	Yaw, Pitch Axis
	fps        int
}

// NewOrbit returns an orbit at rest.
func NewOrbit(fps int) *Orbit {
	return &Orbit{Yaw: NewAxis(fps), Pitch: NewAxis(fps), fps: fps}
}

// Impulse adds angular velocity in degrees per tick.
func (o *Orbit) Impulse(yaw, pitch float64) {
	o.Yaw.Velocity += yaw
	o.Pitch.Velocity += pitch
}

// Apply advances both axes one tick and turns the camera by the result.
func (o *Orbit) Apply(a *App) {
	dy, dp := o.Yaw.Update(), o.Pitch.Update()
	if dy != 0 || dp != 0 {
		a.Camera().Turn(dy, dp)
	}
}

// Reset stops all motion.
func (o *Orbit) Reset() {
	o.Yaw = NewAxis(o.fps)
	o.Pitch = NewAxis(o.fps)
}
