package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/scene"
)

// Toon shading thresholds.
const (
	toonEdge     = 0.01  // N·L above which a surface counts as lit
	toonSpecLo   = 0.005 // Specular band
	toonSpecHi   = 0.01
	toonRim      = 0.716 // Rim light threshold
	toonRimWidth = 0.01
)

// Trace follows a primary ray through the snapshot and returns its color.
//
// Each hit resolves a share of the pixel equal to the remaining
// translucency times the surface opacity. Reflective and transmissive
// surfaces pass the rest on to a child ray. The loop ends once the pixel
// is fully resolved, at an opaque surface, or when the ray leaves the
// scene and picks up the background for whatever is left. Surfaces at
// MaxDepth are treated as opaque.
func Trace(f *Frame, origin, dir math3d.Vec3) math3d.Vec3 {
	snap := f.Snapshot
	var color math3d.Vec3
	accumulated := 0.0

	for depth := 0; ; depth++ {
		translucency := 1 - accumulated

		hit, ok := FindNearestHit(origin, dir, snap, f.Settings.CullMeshes)
		if !ok {
			return color.Add(snap.Background.Scale(translucency))
		}
		rec := &snap.Entities[hit.Index]

		if rec.Kind == scene.KindLight && depth == 0 {
			return rec.Emission
		}

		entering := hit.Normal.Dot(dir) < 0
		normal := hit.Normal
		if !entering {
			normal = normal.Negate()
		}

		mat := rec.Material
		opacity := mat.Opacity()
		if depth >= f.Settings.MaxDepth {
			opacity = 1
		}

		surface := shade(f, rec, hit, normal, dir)
		color = color.Add(surface.Scale(translucency * opacity))
		accumulated += translucency * opacity
		if opacity >= 1 || accumulated >= 1 {
			return color
		}

		switch {
		case mat.Reflection > 0:
			dir = dir.Reflect(normal)
		case mat.Transmission > 0:
			ni, nt := 1.0, mat.IOR
			if !entering {
				ni, nt = nt, ni
			}
			dir = dir.Refract(normal, ni, nt)
		default:
			return color
		}
		origin = hit.Point
	}
}

// shade returns the local illumination at a hit: ambient plus the diffuse
// and specular contributions of every enabled, unoccluded light.
func shade(f *Frame, rec *scene.EntityRecord, hit Hit, normal, dir math3d.Vec3) math3d.Vec3 {
	snap := f.Snapshot
	mat := &rec.Material
	base := surfaceColor(f, rec, hit)
	view := dir.Negate()

	var diffuse, specular math3d.Vec3
	for _, l := range snap.Lights {
		if !l.Enabled {
			continue
		}
		toLight := l.Position.Sub(hit.Point)
		dist := toLight.Len()
		if dist == 0 {
			continue
		}
		ldir := toLight.Scale(1 / dist)
		if f.Settings.Shadows && Occluded(hit.Point.Add(ldir.Scale(Epsilon)), ldir, dist, snap, f.Settings.CullMeshes) {
			continue
		}

		radiance := l.Radiance()
		ndotl := math.Max(0, ldir.Dot(normal))
		rdotv := math.Max(0, ldir.Negate().Reflect(normal).Dot(view))

		if mat.Toon {
			lit := math3d.SmoothStep(0, toonEdge, ndotl)
			spec := math3d.SmoothStep(toonSpecLo, toonSpecHi, math.Pow(rdotv, mat.Exponent)*lit)
			rimDot := 1 - view.Dot(normal)
			rim := math3d.SmoothStep(toonRim-toonRimWidth, toonRim+toonRimWidth, rimDot*math.Pow(ndotl, 0.1))
			diffuse = diffuse.Add(radiance.Mul(base).Scale(lit + rim))
			specular = specular.Add(radiance.Mul(mat.SpecularColor).Scale(spec))
			continue
		}

		diffuse = diffuse.Add(radiance.Mul(base).Scale(ndotl))
		if rdotv > 0 {
			specular = specular.Add(radiance.Mul(mat.SpecularColor).Scale(math.Pow(rdotv, mat.Exponent)))
		}
	}

	ambient := snap.Ambient.Mul(base).Scale(mat.Ambient)
	return ambient.Add(diffuse.Scale(mat.Diffuse)).Add(specular.Scale(mat.Specular))
}

// surfaceColor returns the diffuse color at a hit, sampling the bound
// texture when there is one and textures are enabled.
func surfaceColor(f *Frame, rec *scene.EntityRecord, hit Hit) math3d.Vec3 {
	if !f.Settings.Textures || rec.Texture == scene.NoTexture {
		return rec.Material.DiffuseColor
	}
	tex := f.Snapshot.Textures[rec.Texture]

	var c math3d.Vec2
	switch rec.Kind {
	case scene.KindSphere:
		uv := rec.Sphere.UV(hit.Point)
		c = math3d.V2(uv.X*float64(tex.Width), uv.Y*float64(tex.Height)).Scale(tex.Scale)
	case scene.KindTriangle:
		uv := rec.Triangle.UV(hit.U, hit.V)
		c = math3d.V2(uv.X*float64(tex.Width), uv.Y*float64(tex.Height)).Scale(tex.Scale)
	case scene.KindPlane:
		c = rec.Plane.Coords(hit.Point).Scale(tex.Scale)
	case scene.KindBox:
		c = rec.Box.FaceCoords(hit.Point, hit.Normal).Scale(tex.Scale)
	default:
		return rec.Material.DiffuseColor
	}
	c = c.Add(rec.TextureOffset)
	return tex.Sample(c.X, c.Y)
}
