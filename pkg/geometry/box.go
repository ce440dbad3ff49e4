package geometry

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// BoxFaceEpsilon is the tolerance used to decide which face a hit point
// lies on.
const BoxFaceEpsilon = 1e-5

// Box is an axis-aligned box (a "voxel").
type Box struct {
	AABB
}

// NewBox creates a box centered at center with the given full size.
func NewBox(center, size math3d.Vec3) Box {
	half := size.Scale(0.5)
	return Box{AABB{Min: center.Sub(half), Max: center.Add(half)}}
}

// Intersect uses the slab method and returns the distance to the near
// face. A ray starting inside the box gets a negative distance, which the
// intersection engine discards like any other miss.
func (b Box) Intersect(origin, dir math3d.Vec3) float64 {
	tmin, _, ok := b.Slab(origin, dir)
	if !ok {
		return NoHit
	}
	return tmin
}

// NormalAt returns the outward normal of the face p lies on. A point
// within BoxFaceEpsilon of a face picks that face; otherwise the closest
// face is used.
func (b Box) NormalAt(p math3d.Vec3) math3d.Vec3 {
	best := math.Inf(1)
	var n math3d.Vec3
	for axis := range 3 {
		lo := math.Abs(p.Get(axis) - b.Min.Get(axis))
		hi := math.Abs(p.Get(axis) - b.Max.Get(axis))
		if lo < best {
			best, n = lo, axisVec(axis, -1)
		}
		if hi < best {
			best, n = hi, axisVec(axis, 1)
		}
		if best < BoxFaceEpsilon {
			break
		}
	}
	return n
}

// FaceCoords returns the two coordinates of p that lie in the plane of the
// face with normal n, relative to the box minimum.
func (b Box) FaceCoords(p, n math3d.Vec3) math3d.Vec2 {
	d := p.Sub(b.Min)
	switch {
	case n.X != 0:
		return math3d.V2(d.Z, d.Y)
	case n.Y != 0:
		return math3d.V2(d.X, d.Z)
	default:
		return math3d.V2(d.X, d.Y)
	}
}

func axisVec(axis int, sign float64) math3d.Vec3 {
	switch axis {
	case 0:
		return math3d.V3(sign, 0, 0)
	case 1:
		return math3d.V3(0, sign, 0)
	default:
		return math3d.V3(0, 0, sign)
	}
}
