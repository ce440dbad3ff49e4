package scene

import (
	"errors"
	"fmt"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/math3d"
)

// ErrTextureRef is returned when an entity points at a missing texture.
var ErrTextureRef = errors.New("scene: texture index out of range")

// Snapshot is the flattened, read-only view of a World that one frame is
// rendered from. Workers share it without locking; nothing in it is
// modified after Snapshot returns.
type Snapshot struct {
	Entities []EntityRecord
	Lights   []LightRecord
	Textures []TextureRecord
	Meshes   []MeshRecord

	Ambient    math3d.Vec3
	Background math3d.Vec3
}

// EntityRecord is the fixed-shape record of one entity. Every kind shares
// the same layout; fields of other kinds are zero.
type EntityRecord struct {
	Kind          Kind
	Texture       int
	TextureOffset math3d.Vec2
	Position      math3d.Vec3
	Material      material.Material

	Sphere   geometry.Sphere
	Plane    geometry.Plane
	Triangle geometry.Triangle
	Box      geometry.Box

	Emission math3d.Vec3 // Observed color of a light entity
	Mesh     int         // Index into Snapshot.Meshes, or -1
}

// LightRecord is the fixed-shape record of one light.
type LightRecord struct {
	Position  math3d.Vec3
	Color     math3d.Vec3
	Intensity float64
	Enabled   bool
}

// Radiance returns the light's color scaled by its intensity.
func (l LightRecord) Radiance() math3d.Vec3 {
	return l.Color.Scale(l.Intensity)
}

// TextureRecord is a texture as the renderer sees it: dimensions, scale
// and texels. Textures are immutable, so records share the texel slice.
type TextureRecord = *material.Texture

// MeshRecord locates a mesh's triangles in Snapshot.Entities and bounds
// them for broad-phase rejection.
type MeshRecord struct {
	Bounds geometry.AABB
	First  int
	Count  int
}

// Snapshot flattens the world. Visible, enabled lights are appended to the
// entity list after the world's own entities.
func (w *World) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{
		Entities:   make([]EntityRecord, 0, len(w.Entities)+len(w.Lights)),
		Lights:     make([]LightRecord, 0, len(w.Lights)),
		Textures:   make([]TextureRecord, len(w.Textures)),
		Meshes:     make([]MeshRecord, len(w.meshes)),
		Ambient:    w.Ambient,
		Background: w.Background,
	}
	copy(snap.Textures, w.Textures)

	meshOf := make(map[int]int)
	for mi, m := range w.meshes {
		snap.Meshes[mi] = MeshRecord{Bounds: m.Bounds, First: m.First, Count: m.Count}
		for i := m.First; i < m.First+m.Count; i++ {
			meshOf[i] = mi
		}
	}

	for i, e := range w.Entities {
		if e.Texture != NoTexture && (e.Texture < 0 || e.Texture >= len(w.Textures)) {
			return nil, fmt.Errorf("%w: entity %d (%s) uses texture %d of %d",
				ErrTextureRef, i, e.Kind, e.Texture, len(w.Textures))
		}
		rec := EntityRecord{
			Kind:          e.Kind,
			Texture:       e.Texture,
			TextureOffset: e.TextureOffset,
			Position:      e.Position(),
			Material:      e.Material,
			Sphere:        e.Sphere,
			Plane:         e.Plane,
			Triangle:      e.Triangle,
			Box:           e.Box,
			Mesh:          -1,
		}
		if rec.Texture != NoTexture {
			// A bound texture replaces the procedural tiles.
			rec.Plane.TileSize = 0
		}
		if mi, ok := meshOf[i]; ok {
			rec.Mesh = mi
		}
		snap.Entities = append(snap.Entities, rec)
	}

	for _, l := range w.Lights {
		rec := LightRecord{
			Position:  l.Position,
			Color:     l.Color,
			Intensity: l.Intensity,
			Enabled:   l.Enabled,
		}
		snap.Lights = append(snap.Lights, rec)
		if !l.Visible || !l.Enabled {
			continue
		}
		snap.Entities = append(snap.Entities, EntityRecord{
			Kind:     KindLight,
			Texture:  NoTexture,
			Position: l.Position,
			Material: material.Colored(l.Color),
			Sphere:   geometry.Sphere{Center: l.Position, Radius: LightRadius},
			Emission: l.Color,
			Mesh:     -1,
		})
	}

	return snap, nil
}
