package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/lumen/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// LoadImages decodes base color textures into Surface.BaseMap.
	LoadImages bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{LoadImages: true}
}

// LoadGLB loads a binary or JSON glTF file with the default loader.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for i, mat := range doc.Materials {
		mesh.Surfaces = append(mesh.Surfaces, l.surface(doc, path, i, mat))
	}

	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// surface extracts the base color factor and, optionally, the base color
// image of material i.
func (l *GLTFLoader) surface(doc *gltf.Document, path string, i int, mat *gltf.Material) Surface {
	s := Surface{Name: mat.Name, Color: math3d.V3(1, 1, 1)}
	if mat.Name == "" {
		s.Name = fmt.Sprintf("material%d", i)
	}
	pbr := mat.PBRMetallicRoughness
	if pbr == nil {
		return s
	}
	if pbr.BaseColorFactor != nil {
		f := *pbr.BaseColorFactor
		s.Color = math3d.V3(f[0], f[1], f[2])
	}
	if l.LoadImages && pbr.BaseColorTexture != nil {
		s.BaseMap = textureImage(doc, path, pbr.BaseColorTexture.Index)
	}
	return s
}

// processMesh appends the triangle primitives of m to mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		surface := -1
		if prim.Material != nil {
			surface = *prim.Material
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			v := Vertex{Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))}
			if i < len(uvs) {
				// glTF already uses a top-left origin.
				v.UV = math3d.V2(float64(uvs[i][0]), float64(uvs[i][1]))
				v.HasUV = true
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{
				V: [3]int{
					base + int(indices[i]),
					base + int(indices[i+1]),
					base + int(indices[i+2]),
				},
				Surface: surface,
			})
		}
	}
	return nil
}

// textureImage decodes the image behind texture index ti, embedded or
// external. It returns nil when the image cannot be read.
func textureImage(doc *gltf.Document, path string, ti int) image.Image {
	if ti < 0 || ti >= len(doc.Textures) || doc.Textures[ti].Source == nil {
		return nil
	}
	src := *doc.Textures[ti].Source
	if src < 0 || src >= len(doc.Images) {
		return nil
	}
	img := doc.Images[src]

	var data []byte
	switch {
	case img.BufferView != nil:
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil {
			return nil
		}
		data = buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
	case img.URI != "" && !img.IsEmbeddedResource():
		b, err := os.ReadFile(filepath.Join(filepath.Dir(path), img.URI))
		if err != nil {
			return nil
		}
		data = b
	case img.URI != "":
		b, err := img.MarshalData()
		if err != nil {
			return nil
		}
		data = b
	default:
		return nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return decoded
}
