// Package geometry provides closed-form ray intersection for the primitive
// shapes a scene is built from.
//
// Every intersector follows the same contract: it returns the smallest
// positive parametric distance along the ray, or NoHit. Intersectors never
// fail and never allocate.
package geometry

import "github.com/taigrr/lumen/pkg/math3d"

// NoHit is the distance returned when a ray misses a shape or the only
// intersection lies behind the ray origin.
const NoHit = -1.0

// Point returns the point at distance t from origin along dir.
func Point(origin, dir math3d.Vec3, t float64) math3d.Vec3 {
	return origin.Add(dir.Scale(t))
}
