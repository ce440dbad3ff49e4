package geometry

import "github.com/taigrr/lumen/pkg/math3d"

// TriangleEpsilon rejects rays nearly parallel to a triangle and hits
// closer than it to the origin.
const TriangleEpsilon = 1e-7

// Triangle is a single triangle with optional per-vertex texture
// coordinates. Use NewTriangle so the face normal is precomputed.
type Triangle struct {
	V0, V1, V2    math3d.Vec3
	UV0, UV1, UV2 math3d.Vec2
	Normal        math3d.Vec3
}

// NewTriangle creates a triangle with the default UV layout
// (0,0), (1,0), (0,1) and a counter-clockwise face normal.
func NewTriangle(v0, v1, v2 math3d.Vec3) Triangle {
	return Triangle{
		V0: v0, V1: v1, V2: v2,
		UV0: math3d.V2(0, 0), UV1: math3d.V2(1, 0), UV2: math3d.V2(0, 1),
		Normal: v1.Sub(v0).Cross(v2.Sub(v0)).Normalize(),
	}
}

// Area returns the triangle's surface area.
func (tr Triangle) Area() float64 {
	return tr.V1.Sub(tr.V0).Cross(tr.V2.Sub(tr.V0)).Len() / 2
}

// Intersect returns the hit distance using the Möller–Trumbore algorithm.
func (tr Triangle) Intersect(origin, dir math3d.Vec3) float64 {
	t, _, _ := tr.IntersectUV(origin, dir)
	return t
}

// IntersectUV is Intersect that also returns the barycentric weights of V1
// and V2 at the hit point. The weight of V0 is 1−u−v.
func (tr Triangle) IntersectUV(origin, dir math3d.Vec3) (t, u, v float64) {
	e1 := tr.V1.Sub(tr.V0)
	e2 := tr.V2.Sub(tr.V0)
	h := dir.Cross(e2)
	a := e1.Dot(h)
	if a > -TriangleEpsilon && a < TriangleEpsilon {
		return NoHit, 0, 0
	}

	f := 1 / a
	s := origin.Sub(tr.V0)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return NoHit, 0, 0
	}

	q := s.Cross(e1)
	v = f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return NoHit, 0, 0
	}

	t = f * e2.Dot(q)
	if t <= TriangleEpsilon {
		return NoHit, 0, 0
	}
	return t, u, v
}

// NormalAt returns the face normal.
func (tr Triangle) NormalAt(math3d.Vec3) math3d.Vec3 {
	return tr.Normal
}

// UV interpolates the vertex texture coordinates at barycentric (u, v).
func (tr Triangle) UV(u, v float64) math3d.Vec2 {
	w := 1 - u - v
	return tr.UV0.Scale(w).Add(tr.UV1.Scale(u)).Add(tr.UV2.Scale(v))
}
