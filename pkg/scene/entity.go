// Package scene assembles entities, lights, textures and cameras into a
// World, and flattens a World into the read-only Snapshot a frame is
// rendered from.
package scene

import (
	"errors"
	"fmt"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/math3d"
)

// ErrDegenerate is returned for shapes that have no surface to hit.
var ErrDegenerate = errors.New("scene: degenerate shape")

// NoTexture marks an entity without a bound texture.
const NoTexture = -1

// Kind tags the shape an Entity carries.
type Kind int

const (
	KindSphere Kind = iota
	KindPlane
	KindTriangle
	KindBox
	KindLight // Self-luminous sphere contributed by a visible Light
)

// String returns the kind's lowercase name.
func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindTriangle:
		return "triangle"
	case KindBox:
		return "box"
	case KindLight:
		return "light"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entity is a renderable object. Exactly one of the shape fields is
// meaningful, selected by Kind; KindLight uses Sphere.
type Entity struct {
	Kind     Kind
	Name     string
	Material material.Material

	Texture       int         // Index into World.Textures, or NoTexture
	TextureOffset math3d.Vec2 // Added to texel coordinates before sampling

	Sphere   geometry.Sphere
	Plane    geometry.Plane
	Triangle geometry.Triangle
	Box      geometry.Box
}

// NewSphere creates a sphere entity.
func NewSphere(center math3d.Vec3, radius float64, mat material.Material) (Entity, error) {
	if radius <= 0 {
		return Entity{}, fmt.Errorf("%w: sphere radius %g", ErrDegenerate, radius)
	}
	return newEntity(KindSphere, mat, func(e *Entity) {
		e.Sphere = geometry.Sphere{Center: center, Radius: radius}
	})
}

// NewPlane creates an infinite plane through point with the given normal.
func NewPlane(point, normal math3d.Vec3, mat material.Material) (Entity, error) {
	if normal.LenSq() == 0 {
		return Entity{}, fmt.Errorf("%w: plane normal is zero", ErrDegenerate)
	}
	return newEntity(KindPlane, mat, func(e *Entity) {
		e.Plane = geometry.Plane{Point: point, Normal: normal.Normalize()}
	})
}

// NewTriangle creates a triangle entity from counter-clockwise vertices.
func NewTriangle(v0, v1, v2 math3d.Vec3, mat material.Material) (Entity, error) {
	return NewTriangleFrom(geometry.NewTriangle(v0, v1, v2), mat)
}

// NewTriangleFrom creates a triangle entity from a prepared triangle,
// keeping its texture coordinates.
func NewTriangleFrom(tri geometry.Triangle, mat material.Material) (Entity, error) {
	if tri.Area() < 1e-12 {
		return Entity{}, fmt.Errorf("%w: triangle has no area", ErrDegenerate)
	}
	return newEntity(KindTriangle, mat, func(e *Entity) {
		e.Triangle = tri
	})
}

// NewBox creates an axis-aligned box centered at center.
func NewBox(center, size math3d.Vec3, mat material.Material) (Entity, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return Entity{}, fmt.Errorf("%w: box size %v", ErrDegenerate, size)
	}
	return newEntity(KindBox, mat, func(e *Entity) {
		e.Box = geometry.NewBox(center, size)
	})
}

func newEntity(kind Kind, mat material.Material, shape func(*Entity)) (Entity, error) {
	if err := mat.Validate(); err != nil {
		return Entity{}, fmt.Errorf("%s: %w", kind, err)
	}
	e := Entity{Kind: kind, Material: mat, Texture: NoTexture}
	shape(&e)
	return e, nil
}

// WithTexture returns a copy of e bound to texture index tex.
func (e Entity) WithTexture(tex int, offset math3d.Vec2) Entity {
	e.Texture = tex
	e.TextureOffset = offset
	return e
}

// WithTiling returns a copy of e cut into a checkerboard of size-wide
// cells where only even cells are solid. It only affects planes, and only
// while no texture is bound.
func (e Entity) WithTiling(size float64) Entity {
	if e.Kind == KindPlane {
		e.Plane.TileSize = size
	}
	return e
}

// Named returns a copy of e with the given name.
func (e Entity) Named(name string) Entity {
	e.Name = name
	return e
}

// Position returns the entity's world-space origin: the sphere or box
// center, a point on the plane, or the triangle's first vertex.
func (e Entity) Position() math3d.Vec3 {
	switch e.Kind {
	case KindSphere, KindLight:
		return e.Sphere.Center
	case KindPlane:
		return e.Plane.Point
	case KindTriangle:
		return e.Triangle.V0
	case KindBox:
		return e.Box.Center()
	default:
		return math3d.Vec3{}
	}
}
