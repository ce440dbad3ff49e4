// Package camera generates primary rays for a pinhole camera.
//
// The world is left-handed: looking down +Z with +Y up, +X is to the right.
// Pixel columns therefore run against the U axis, which is why RayDirection
// flips the horizontal offset.
package camera

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Camera represents a camera with position and orientation.
type Camera struct {
	Position math3d.Vec3
	Look     math3d.Vec3 // View direction; only its direction matters
	Up       math3d.Vec3 // Up hint used to build the basis

	FOV         float64 // Field of view in degrees
	FocalLength float64

	// Accumulated orientation in degrees. Pitch stays within [-90, 90].
	Yaw   float64
	Pitch float64

	Width  int // Viewport in pixels
	Height int
}

// Options configures New.
type Options struct {
	Position    math3d.Vec3
	Look        math3d.Vec3
	Up          math3d.Vec3
	FOV         float64
	FocalLength float64
	Yaw         float64
	Pitch       float64
	Width       int
	Height      int
}

// DefaultOptions returns the stock camera settings.
func DefaultOptions() Options {
	return Options{
		Position:    math3d.V3(0, 1, -3),
		Look:        math3d.V3(0, 0, 0.1),
		Up:          math3d.Up(),
		FOV:         90,
		FocalLength: 1,
		Yaw:         90,
		Width:       320,
		Height:      240,
	}
}

// New creates a camera. The initial yaw and pitch are applied as a
// rotation of the given look direction, the same way later mouse-look
// updates are.
func New(opts Options) *Camera {
	def := DefaultOptions()
	if opts.Up == (math3d.Vec3{}) {
		opts.Up = def.Up
	}
	if opts.FOV <= 0 {
		opts.FOV = def.FOV
	}
	if opts.FocalLength <= 0 {
		opts.FocalLength = def.FocalLength
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = def.Width, def.Height
	}

	c := &Camera{
		Position:    opts.Position,
		Look:        opts.Look,
		Up:          opts.Up,
		FOV:         opts.FOV,
		FocalLength: opts.FocalLength,
		Width:       opts.Width,
		Height:      opts.Height,
	}
	c.Rotate(opts.Yaw, opts.Pitch)
	return c
}

// SetViewport sets the output size in pixels.
func (c *Camera) SetViewport(width, height int) {
	c.Width = width
	c.Height = height
}

// AspectRatio returns height / width.
func (c *Camera) AspectRatio() float64 {
	if c.Width == 0 {
		return 1
	}
	return float64(c.Height) / float64(c.Width)
}

// FovScale returns tan(fov/2).
func (c *Camera) FovScale() float64 {
	return math.Tan(math3d.Radians(c.FOV * 0.5))
}

// Basis returns the orthonormal view basis: N forward, U and V spanning
// the image plane.
func (c *Camera) Basis() (n, u, v math3d.Vec3) {
	n = c.Look.Normalize()
	u = n.Cross(c.Up).Normalize()
	v = u.Cross(n).Normalize()
	return n, u, v
}

// Rotate adds yaw and pitch (degrees) and nudges the look direction toward
// the resulting spherical direction. A pitch change that would leave
// [-90, 90] is dropped while the yaw change still applies.
func (c *Camera) Rotate(yaw, pitch float64) {
	if p := c.Pitch + pitch; p < -90 || p > 90 {
		pitch = 0
	}
	c.Yaw += yaw
	c.Pitch += pitch

	y, p := math3d.Radians(c.Yaw), math3d.Radians(c.Pitch)
	dir := math3d.V3(
		math.Cos(y)*math.Cos(p),
		math.Sin(p),
		math.Sin(y)*math.Cos(p),
	)
	c.Look = c.Look.Add(dir).Normalize()
}

// LookAt points the camera at target and resets yaw and pitch to match.
// It reports false and leaves the camera alone when target sits on the
// camera's position or straight along Up, where the basis has no U axis.
func (c *Camera) LookAt(target math3d.Vec3) bool {
	dir := target.Sub(c.Position).Normalize()
	if dir == (math3d.Vec3{}) || dir.Cross(c.Up).LenSq() < 1e-12 {
		return false
	}
	c.Look = dir
	c.Pitch = math.Asin(math3d.Clamp(dir.Y, -1, 1)) * 180 / math.Pi
	c.Yaw = math.Atan2(dir.Z, dir.X) * 180 / math.Pi
	return true
}

// Move translates the camera by delta.
func (c *Camera) Move(delta math3d.Vec3) {
	c.Position = c.Position.Add(delta)
}

// Dolly moves the camera along its forward axis.
func (c *Camera) Dolly(d float64) {
	n, _, _ := c.Basis()
	c.Move(n.Scale(d))
}

// Strafe moves the camera along U.
func (c *Camera) Strafe(d float64) {
	_, u, _ := c.Basis()
	c.Move(u.Scale(d))
}

// Elevate moves the camera along V.
func (c *Camera) Elevate(d float64) {
	_, _, v := c.Basis()
	c.Move(v.Scale(d))
}

// View captures everything needed to generate primary rays for one frame.
func (c *Camera) View() View {
	n, u, v := c.Basis()
	return View{
		Eye:         c.Position,
		N:           n,
		U:           u,
		V:           v,
		Width:       c.Width,
		Height:      c.Height,
		AspectRatio: c.AspectRatio(),
		FovScale:    c.FovScale(),
		FocalLength: c.FocalLength,
	}
}

// RayDirection returns the primary ray direction through pixel (x, y).
func (c *Camera) RayDirection(x, y float64) math3d.Vec3 {
	return c.View().RayDirection(x, y)
}
