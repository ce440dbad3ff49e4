package scene

import (
	"fmt"

	"github.com/taigrr/lumen/pkg/camera"
	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
)

// DefaultBackground is the sky color rays that leave the scene pick up.
var DefaultBackground = math3d.V3(0.251, 0.59, 1)

// World owns everything in a scene. It is built once and only changed
// between frames.
type World struct {
	Entities []Entity
	Lights   []*Light
	Textures []*material.Texture
	Cameras  []*camera.Camera

	Ambient    math3d.Vec3 // Multiplies every material's ambient term
	Background math3d.Vec3

	meshes []meshGroup
}

type meshGroup struct {
	Name   string
	Bounds geometry.AABB
	First  int
	Count  int
}

// NewWorld creates an empty world with white ambient light and the
// default sky.
func NewWorld() *World {
	return &World{
		Ambient:    math3d.V3(1, 1, 1),
		Background: DefaultBackground,
	}
}

// AddEntities appends entities in order.
func (w *World) AddEntities(entities ...Entity) {
	w.Entities = append(w.Entities, entities...)
}

// AddLights appends lights in order.
func (w *World) AddLights(lights ...*Light) {
	w.Lights = append(w.Lights, lights...)
}

// AddTextures appends textures and returns the index of the first one.
func (w *World) AddTextures(textures ...*material.Texture) int {
	first := len(w.Textures)
	w.Textures = append(w.Textures, textures...)
	return first
}

// AddCameras appends cameras in order.
func (w *World) AddCameras(cameras ...*camera.Camera) {
	w.Cameras = append(w.Cameras, cameras...)
}

// Camera returns the first camera, or nil if there is none.
func (w *World) Camera() *camera.Camera {
	if len(w.Cameras) == 0 {
		return nil
	}
	return w.Cameras[0]
}

// MeshTextureSize bounds the texture a mesh surface's base color map is
// resampled to.
const MeshTextureSize = 512

// AddMesh places a mesh in the world: vertices are transformed, every face
// becomes a triangle entity with mat, and the group's bounds are recorded.
// Faces that reference a mesh surface take that surface's color, and its
// base color map when texture is NoTexture. Degenerate faces are skipped
// and counted in the returned number.
func (w *World) AddMesh(m *models.Mesh, mat material.Material, transform math3d.Mat4, texture int) (skipped int, err error) {
	if err := mat.Validate(); err != nil {
		return 0, fmt.Errorf("mesh %s: %w", m.Name, err)
	}
	if texture != NoTexture && (texture < 0 || texture >= len(w.Textures)) {
		return 0, fmt.Errorf("mesh %s: %w: %d", m.Name, ErrTextureRef, texture)
	}

	placed := *m
	placed.Vertices = append([]models.Vertex(nil), m.Vertices...)
	placed.Transform(transform)

	surfaceTex := make(map[int]int)
	if texture == NoTexture {
		for i, s := range placed.Surfaces {
			if s.BaseMap == nil {
				continue
			}
			tex, err := material.FromImage(s.BaseMap, MeshTextureSize)
			if err != nil {
				return 0, fmt.Errorf("mesh %s surface %q: %w", m.Name, s.Name, err)
			}
			surfaceTex[i] = w.AddTextures(tex)
		}
	}

	group := meshGroup{Name: m.Name, First: len(w.Entities), Bounds: geometry.EmptyAABB()}
	for i, f := range placed.Faces {
		faceMat := mat
		faceTex := texture
		if s := placed.Surface(f.Surface); s != nil {
			faceMat.DiffuseColor = s.Color
			if idx, ok := surfaceTex[f.Surface]; ok {
				faceTex = idx
			}
		}
		e, err := NewTriangleFrom(placed.Triangle(i), faceMat)
		if err != nil {
			skipped++
			continue
		}
		if faceTex != NoTexture {
			e = e.WithTexture(faceTex, math3d.Vec2{})
		}
		w.Entities = append(w.Entities, e.Named(m.Name))
		group.Bounds = group.Bounds.Extend(e.Triangle.V0).Extend(e.Triangle.V1).Extend(e.Triangle.V2)
	}
	group.Count = len(w.Entities) - group.First
	if group.Count > 0 {
		w.meshes = append(w.meshes, group)
	}
	return skipped, nil
}

// MeshCount returns the number of mesh groups added with AddMesh.
func (w *World) MeshCount() int {
	return len(w.meshes)
}
