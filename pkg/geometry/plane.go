package geometry

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// ParallelEpsilon is the smallest |dir·normal| a plane intersection accepts.
const ParallelEpsilon = 1e-8

// Plane is an infinite plane through Point with unit Normal.
//
// Planes are two-sided: rays hitting the back face are accepted and the
// shading normal is flipped toward the viewer by the caller. When TileSize
// is positive the plane is cut into a checkerboard of TileSize cells and
// only even cells are solid.
type Plane struct {
	Point    math3d.Vec3
	Normal   math3d.Vec3
	TileSize float64
}

// Intersect returns t = (Point−origin)·n / (dir·n), rejecting rays parallel
// to the plane and hits behind the origin.
func (p Plane) Intersect(origin, dir math3d.Vec3) float64 {
	denom := dir.Dot(p.Normal)
	if math.Abs(denom) < ParallelEpsilon {
		return NoHit
	}
	t := p.Point.Sub(origin).Dot(p.Normal) / denom
	if t < 0 {
		return NoHit
	}
	if p.TileSize > 0 && !p.solidAt(Point(origin, dir, t)) {
		return NoHit
	}
	return t
}

// NormalAt returns the plane normal; it is the same at every point.
func (p Plane) NormalAt(math3d.Vec3) math3d.Vec3 {
	return p.Normal
}

// Coords returns the in-plane coordinates of q relative to Point.
func (p Plane) Coords(q math3d.Vec3) math3d.Vec2 {
	t, b := p.Tangents()
	d := q.Sub(p.Point)
	return math3d.V2(d.Dot(t), d.Dot(b))
}

// Tangents returns an orthonormal pair spanning the plane.
func (p Plane) Tangents() (math3d.Vec3, math3d.Vec3) {
	ref := math3d.V3(0, 0, 1)
	if math.Abs(p.Normal.Z) > 0.9 {
		ref = math3d.V3(0, 1, 0)
	}
	t := p.Normal.Cross(ref).Normalize()
	return t, p.Normal.Cross(t)
}

func (p Plane) solidAt(q math3d.Vec3) bool {
	c := p.Coords(q)
	cell := int64(math.Floor(c.X/p.TileSize)) + int64(math.Floor(c.Y/p.TileSize))
	return cell%2 == 0
}
