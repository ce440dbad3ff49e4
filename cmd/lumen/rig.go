package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/lumen/pkg/camera"
)

// restVelocity is the speed below which an axis counts as stopped.
const restVelocity = 1e-4

// Axis tracks one camera velocity and decays it toward zero with a
// critically damped spring.
type Axis struct {
	Velocity float64
	accel    float64 // Spring velocity of Velocity itself
	spring   harmonica.Spring
	smooth   bool
}

// NewAxis creates an axis updated fps times per second.
func NewAxis(fps int, smooth bool) Axis {
	return Axis{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		smooth: smooth,
	}
}

// Step returns the distance to travel this frame and decays the velocity.
// Without smoothing the velocity is consumed at once.
func (a *Axis) Step() float64 {
	v := a.Velocity
	if !a.smooth {
		a.Velocity = 0
		return v
	}
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	if math.Abs(a.Velocity) < restVelocity && math.Abs(a.accel) < restVelocity {
		a.Velocity, a.accel = 0, 0
	}
	return v
}

// Rig turns look and move impulses into smooth camera motion.
type Rig struct {
	Yaw, Pitch         Axis
	Forward, Right, Up Axis
	fps                int
	smooth             bool
}

// NewRig creates a rig for the given frame rate.
func NewRig(fps int, smooth bool) *Rig {
	r := &Rig{fps: fps, smooth: smooth}
	r.Reset()
	return r
}

// Reset stops all motion.
func (r *Rig) Reset() {
	r.Yaw = NewAxis(r.fps, r.smooth)
	r.Pitch = NewAxis(r.fps, r.smooth)
	r.Forward = NewAxis(r.fps, r.smooth)
	r.Right = NewAxis(r.fps, r.smooth)
	r.Up = NewAxis(r.fps, r.smooth)
}

// Look adds a rotation impulse in degrees.
func (r *Rig) Look(yaw, pitch float64) {
	r.Yaw.Velocity += yaw
	r.Pitch.Velocity += pitch
}

// Push adds a movement impulse in world units along the camera axes.
func (r *Rig) Push(forward, right, up float64) {
	r.Forward.Velocity += forward
	r.Right.Velocity += right
	r.Up.Velocity += up
}

// Moving reports whether any axis still has velocity.
func (r *Rig) Moving() bool {
	for _, a := range []*Axis{&r.Yaw, &r.Pitch, &r.Forward, &r.Right, &r.Up} {
		if a.Velocity != 0 {
			return true
		}
	}
	return false
}

// Apply advances the rig one frame and moves cam. The camera's U axis
// points to screen left, so moving right strafes along −U.
func (r *Rig) Apply(cam *camera.Camera) {
	yaw, pitch := r.Yaw.Step(), r.Pitch.Step()
	if yaw != 0 || pitch != 0 {
		cam.Rotate(yaw, pitch)
	}
	if d := r.Forward.Step(); d != 0 {
		cam.Dolly(d)
	}
	if d := r.Right.Step(); d != 0 {
		cam.Strafe(-d)
	}
	if d := r.Up.Step(); d != 0 {
		cam.Elevate(d)
	}
}
