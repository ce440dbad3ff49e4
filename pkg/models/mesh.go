// Package models loads triangle meshes from OBJ and glTF files.
package models

import (
	"image"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/math3d"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Faces    []Face
	Surfaces []Surface

	// Bounding box (calculated on load)
	Bounds geometry.AABB
}

// Vertex holds the attributes the ray tracer uses. UVs use a top-left
// origin, matching texel rows.
type Vertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
	HasUV    bool
}

// Face represents a triangle face with vertex indices and surface reference.
type Face struct {
	V       [3]int // Indices into Mesh.Vertices
	Surface int    // Index into Mesh.Surfaces (-1 for none)
}

// Surface is the subset of a file's material the ray tracer understands.
type Surface struct {
	Name    string
	Color   math3d.Vec3
	BaseMap image.Image // Optional base color texture
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:   name,
		Bounds: geometry.EmptyAABB(),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	b := geometry.EmptyAABB()
	for _, v := range m.Vertices {
		b = b.Extend(v.Position)
	}
	m.Bounds = b
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.Bounds.Center()
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.Bounds.Size()
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
	}
	m.CalculateBounds()
}

// FitTransform returns the transform that centers the mesh on the origin
// and scales its largest dimension to size.
func (m *Mesh) FitTransform(size float64) math3d.Mat4 {
	dim := m.Size().MaxComponent()
	if len(m.Vertices) == 0 || dim <= 0 {
		return math3d.Identity()
	}
	return math3d.ScaleUniform(size / dim).Mul(math3d.Translate(m.Center().Negate()))
}

// Surface returns the surface at index i, or nil if i is out of range.
func (m *Mesh) Surface(i int) *Surface {
	if i < 0 || i >= len(m.Surfaces) {
		return nil
	}
	return &m.Surfaces[i]
}

// Triangle returns face i as a geometry triangle. Faces without texture
// coordinates keep the default UV layout.
func (m *Mesh) Triangle(i int) geometry.Triangle {
	f := m.Faces[i]
	a, b, c := m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]
	tri := geometry.NewTriangle(a.Position, b.Position, c.Position)
	if a.HasUV && b.HasUV && c.HasUV {
		tri.UV0, tri.UV1, tri.UV2 = a.UV, b.UV, c.UV
	}
	return tri
}
