package geometry

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// EmptyAABB returns an inverted box that any Extend call replaces.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: math3d.Splat(inf), Max: math3d.Splat(-inf)}
}

// Extend grows the box to contain p.
func (b AABB) Extend(p math3d.Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Pad grows the box by d on every side.
func (b AABB) Pad(d float64) AABB {
	return AABB{Min: b.Min.Sub(math3d.Splat(d)), Max: b.Max.Add(math3d.Splat(d))}
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Slab clips the ray against the three slab pairs and returns the entry and
// exit distances. ok is false when the slabs do not overlap.
func (b AABB) Slab(origin, dir math3d.Vec3) (tmin, tmax float64, ok bool) {
	tmin, tmax = math.Inf(-1), math.Inf(1)
	for axis := range 3 {
		o, d := origin.Get(axis), dir.Get(axis)
		lo, hi := b.Min.Get(axis), b.Max.Get(axis)
		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / d
		t0, t1 := (lo-o)*inv, (hi-o)*inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math.Max(tmin, t0)
		tmax = math.Min(tmax, t1)
	}
	return tmin, tmax, tmax >= 0 && tmin <= tmax
}

// Hit reports whether the ray touches the box anywhere ahead of its origin.
func (b AABB) Hit(origin, dir math3d.Vec3) bool {
	_, _, ok := b.Slab(origin, dir)
	return ok
}
