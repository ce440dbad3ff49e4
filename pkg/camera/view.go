package camera

import "github.com/taigrr/lumen/pkg/math3d"

// View is a per-frame snapshot of a camera. It is a plain value so render
// workers can share it without synchronization.
type View struct {
	Eye         math3d.Vec3
	N, U, V     math3d.Vec3
	Width       int
	Height      int
	AspectRatio float64
	FovScale    float64
	FocalLength float64
}

// RayDirection returns the normalized direction through pixel (x, y).
// y grows upward from the bottom row.
func (v View) RayDirection(x, y float64) math3d.Vec3 {
	w, h := float64(v.Width), float64(v.Height)
	invFocal := 1 / v.FocalLength

	px := ((1 - x/w) - 0.5) * v.FovScale * invFocal
	py := (y/h - 0.5) * v.FovScale * v.AspectRatio * invFocal

	return v.N.Add(v.U.Scale(px)).Add(v.V.Scale(py)).Normalize()
}
