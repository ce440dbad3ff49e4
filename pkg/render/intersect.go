package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/scene"
)

// Epsilon is the smallest hit distance accepted, and the offset applied to
// shadow ray origins, so surfaces do not shadow or hit themselves.
const Epsilon = 1e-3

// meshPad keeps flat mesh bounds from rejecting rays that graze them.
const meshPad = 1e-6

// Hit describes the nearest intersection along a ray.
type Hit struct {
	Index    int     // Index into Snapshot.Entities
	Distance float64 // Parametric distance along the ray
	Point    math3d.Vec3
	Normal   math3d.Vec3 // Geometric normal, not yet faced toward the ray
	U, V     float64     // Barycentric coordinates for triangles
}

// FindNearestHit scans every entity and returns the closest hit farther
// than Epsilon. On equal distances the entity with the lower index wins.
// With cull set, mesh groups whose bounds the ray misses are skipped; the
// result is the same either way.
func FindNearestHit(origin, dir math3d.Vec3, snap *scene.Snapshot, cull bool) (Hit, bool) {
	best := math.Inf(1)
	hit := Hit{Index: -1}

	for i := 0; i < len(snap.Entities); i++ {
		rec := &snap.Entities[i]
		if cull && rec.Mesh >= 0 {
			m := snap.Meshes[rec.Mesh]
			if i == m.First && !m.Bounds.Pad(meshPad).Hit(origin, dir) {
				i += m.Count - 1
				continue
			}
		}

		t, u, v := intersect(rec, origin, dir)
		if t > Epsilon && t < best {
			best = t
			hit.Index, hit.Distance, hit.U, hit.V = i, t, u, v
		}
	}

	if hit.Index < 0 {
		return hit, false
	}
	hit.Point = geometry.Point(origin, dir, hit.Distance)
	hit.Normal = normalAt(&snap.Entities[hit.Index], hit.Point)
	return hit, true
}

// Occluded reports whether anything other than a light entity lies on the
// segment from origin along dir up to maxDist.
func Occluded(origin, dir math3d.Vec3, maxDist float64, snap *scene.Snapshot, cull bool) bool {
	for i := 0; i < len(snap.Entities); i++ {
		rec := &snap.Entities[i]
		if rec.Kind == scene.KindLight {
			continue
		}
		if cull && rec.Mesh >= 0 {
			m := snap.Meshes[rec.Mesh]
			if i == m.First && !m.Bounds.Pad(meshPad).Hit(origin, dir) {
				i += m.Count - 1
				continue
			}
		}
		if t, _, _ := intersect(rec, origin, dir); t > Epsilon && t < maxDist {
			return true
		}
	}
	return false
}

func intersect(rec *scene.EntityRecord, origin, dir math3d.Vec3) (t, u, v float64) {
	switch rec.Kind {
	case scene.KindSphere, scene.KindLight:
		return rec.Sphere.Intersect(origin, dir), 0, 0
	case scene.KindPlane:
		return rec.Plane.Intersect(origin, dir), 0, 0
	case scene.KindTriangle:
		return rec.Triangle.IntersectUV(origin, dir)
	case scene.KindBox:
		return rec.Box.Intersect(origin, dir), 0, 0
	default:
		return geometry.NoHit, 0, 0
	}
}

func normalAt(rec *scene.EntityRecord, p math3d.Vec3) math3d.Vec3 {
	switch rec.Kind {
	case scene.KindSphere, scene.KindLight:
		return rec.Sphere.NormalAt(p)
	case scene.KindPlane:
		return rec.Plane.NormalAt(p)
	case scene.KindTriangle:
		return rec.Triangle.NormalAt(p)
	case scene.KindBox:
		return rec.Box.NormalAt(p)
	default:
		return math3d.Vec3{}
	}
}
