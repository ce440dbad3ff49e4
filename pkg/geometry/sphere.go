package geometry

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Sphere is a sphere given by its center and radius.
type Sphere struct {
	Center math3d.Vec3
	Radius float64
}

// Intersect solves the ray/sphere quadratic with the geometric method:
// the center is projected onto the ray and the half chord is recovered
// from the discriminant. The nearer strictly positive root wins; if the
// origin is inside the sphere the far root is returned.
func (s Sphere) Intersect(origin, dir math3d.Vec3) float64 {
	dd := dir.LenSq()
	if dd == 0 {
		return NoHit
	}
	l := s.Center.Sub(origin)
	tca := l.Dot(dir) / dd
	d2 := l.LenSq() - tca*tca*dd
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return NoHit
	}
	thc := math.Sqrt((r2 - d2) / dd)
	t0, t1 := tca-thc, tca+thc
	if t0 > 0 {
		return t0
	}
	if t1 > 0 {
		return t1
	}
	return NoHit
}

// NormalAt returns the outward unit normal at surface point p.
func (s Sphere) NormalAt(p math3d.Vec3) math3d.Vec3 {
	return p.Sub(s.Center).Normalize()
}

// UV returns spherical texture coordinates in [0,1] for surface point p.
func (s Sphere) UV(p math3d.Vec3) math3d.Vec2 {
	n := s.NormalAt(p)
	u := 0.5 + math.Atan2(n.Z, n.X)/(2*math.Pi)
	v := 0.5 - math.Asin(math3d.Clamp(n.Y, -1, 1))/math.Pi
	return math3d.V2(u, v)
}
