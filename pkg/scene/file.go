package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/lumen/pkg/camera"
	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
)

// ErrSceneFile is returned for scene files that parse but describe
// something invalid.
var ErrSceneFile = errors.New("scene: invalid scene file")

// Vec is a YAML-friendly three-component vector written as [x, y, z].
type Vec math3d.Vec3

// UnmarshalYAML decodes a sequence of exactly three numbers.
func (v *Vec) UnmarshalYAML(node *yaml.Node) error {
	var xs []float64
	if err := node.Decode(&xs); err != nil {
		return err
	}
	if len(xs) != 3 {
		return fmt.Errorf("line %d: vector needs 3 components, got %d", node.Line, len(xs))
	}
	*v = Vec{X: xs[0], Y: xs[1], Z: xs[2]}
	return nil
}

// MarshalYAML encodes the vector as a flow sequence.
func (v Vec) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range []float64{v.X, v.Y, v.Z} {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!float",
			Value: fmt.Sprintf("%g", c),
		})
	}
	return node, nil
}

func (v *Vec) vec3(def math3d.Vec3) math3d.Vec3 {
	if v == nil {
		return def
	}
	return math3d.Vec3(*v)
}

// File is the on-disk description of a scene.
type File struct {
	Camera     *CameraSpec   `yaml:"camera,omitempty"`
	Ambient    *Vec          `yaml:"ambient,omitempty"`
	Background *Vec          `yaml:"background,omitempty"`
	Textures   []TextureSpec `yaml:"textures,omitempty"`
	Lights     []LightSpec   `yaml:"lights,omitempty"`
	Entities   []EntitySpec  `yaml:"entities,omitempty"`
	Meshes     []MeshSpec    `yaml:"meshes,omitempty"`
}

// CameraSpec describes the scene camera. Zero values take camera defaults.
type CameraSpec struct {
	Position    *Vec     `yaml:"position,omitempty"`
	Look        *Vec     `yaml:"look,omitempty"`
	LookAt      *Vec     `yaml:"look_at,omitempty"`
	Up          *Vec     `yaml:"up,omitempty"`
	FOV         float64  `yaml:"fov,omitempty"`
	FocalLength float64  `yaml:"focal_length,omitempty"`
	Yaw         *float64 `yaml:"yaw,omitempty"`
	Pitch       float64  `yaml:"pitch,omitempty"`
}

// TextureSpec describes a generated or loaded texture. Entities refer to
// textures by name.
type TextureSpec struct {
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"` // checkerboard, mandelbrot or image
	Scale  float64 `yaml:"scale,omitempty"`
	Filter string  `yaml:"filter,omitempty"` // nearest or bilinear

	// checkerboard
	CheckSize int   `yaml:"check_size,omitempty"`
	Checks    int   `yaml:"checks,omitempty"`
	Even      *Vec  `yaml:"even,omitempty"`
	Odd       *Vec  `yaml:"odd,omitempty"`
	Noise     bool  `yaml:"noise,omitempty"`
	Seed      int64 `yaml:"seed,omitempty"`

	// mandelbrot
	Width   int `yaml:"width,omitempty"`
	Height  int `yaml:"height,omitempty"`
	MaxIter int `yaml:"max_iter,omitempty"`

	// image
	Path   string `yaml:"path,omitempty"`
	MaxDim int    `yaml:"max_dim,omitempty"`
}

// LightSpec describes a point light.
type LightSpec struct {
	Position  Vec      `yaml:"position"`
	Color     *Vec     `yaml:"color,omitempty"`
	Intensity *float64 `yaml:"intensity,omitempty"`
	Enabled   *bool    `yaml:"enabled,omitempty"`
	Visible   *bool    `yaml:"visible,omitempty"`
}

// MaterialSpec overrides fields of the default material.
type MaterialSpec struct {
	Color         *Vec     `yaml:"color,omitempty"`
	SpecularColor *Vec     `yaml:"specular_color,omitempty"`
	Ambient       *float64 `yaml:"ambient,omitempty"`
	Diffuse       *float64 `yaml:"diffuse,omitempty"`
	Specular      *float64 `yaml:"specular,omitempty"`
	Exponent      *float64 `yaml:"exponent,omitempty"`
	Toon          bool     `yaml:"toon,omitempty"`
	Reflection    float64  `yaml:"reflection,omitempty"`
	Transmission  float64  `yaml:"transmission,omitempty"`
	IOR           *float64 `yaml:"ior,omitempty"`
}

// EntitySpec describes one primitive.
type EntitySpec struct {
	Type     string        `yaml:"type"` // sphere, plane, triangle or box
	Name     string        `yaml:"name,omitempty"`
	Material *MaterialSpec `yaml:"material,omitempty"`

	Texture       string    `yaml:"texture,omitempty"`
	TextureOffset []float64 `yaml:"texture_offset,omitempty"` // [x, y] in texels

	Center   *Vec    `yaml:"center,omitempty"`
	Radius   float64 `yaml:"radius,omitempty"`
	Point    *Vec    `yaml:"point,omitempty"`
	Normal   *Vec    `yaml:"normal,omitempty"`
	TileSize float64 `yaml:"tile_size,omitempty"` // Plane only; ignored when textured
	Vertices []Vec   `yaml:"vertices,omitempty"`
	Size     *Vec    `yaml:"size,omitempty"`
}

// MeshSpec places an OBJ or glTF model.
type MeshSpec struct {
	Path      string        `yaml:"path"`
	Fit       float64       `yaml:"fit,omitempty"`   // Scale the largest side to this size
	Scale     float64       `yaml:"scale,omitempty"` // Uniform scale applied after fitting
	RotateX   float64       `yaml:"rotate_x,omitempty"` // Degrees, applied X then Y then Z
	RotateY   float64       `yaml:"rotate_y,omitempty"`
	RotateZ   float64       `yaml:"rotate_z,omitempty"`
	Translate *Vec          `yaml:"translate,omitempty"`
	Material  *MaterialSpec `yaml:"material,omitempty"`
	Texture   string        `yaml:"texture,omitempty"`
}

// LoadFile reads a YAML scene. Relative texture and mesh paths resolve
// against the scene file's directory.
func LoadFile(path string, log *zap.Logger) (*World, *camera.Camera, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	w, cam, err := Load(f, filepath.Dir(path), log)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return w, cam, nil
}

// Load decodes a YAML scene from r. dir is the base for relative paths.
func Load(r io.Reader, dir string, log *zap.Logger) (*World, *camera.Camera, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("decode scene: %w", err)
	}
	return file.Build(dir, log)
}

// Build turns a decoded scene file into a world and its camera.
func (f *File) Build(dir string, log *zap.Logger) (*World, *camera.Camera, error) {
	if log == nil {
		log = zap.NewNop()
	}

	w := NewWorld()
	w.Ambient = f.Ambient.vec3(w.Ambient)
	w.Background = f.Background.vec3(w.Background)

	textures := make(map[string]int, len(f.Textures))
	for i, ts := range f.Textures {
		if ts.Name == "" {
			return nil, nil, fmt.Errorf("%w: texture %d has no name", ErrSceneFile, i)
		}
		if _, dup := textures[ts.Name]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate texture %q", ErrSceneFile, ts.Name)
		}
		tex, err := ts.build(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("texture %q: %w", ts.Name, err)
		}
		textures[ts.Name] = w.AddTextures(tex)
		log.Debug("texture ready",
			zap.String("name", ts.Name),
			zap.String("type", ts.Type),
			zap.Int("width", tex.Width),
			zap.Int("height", tex.Height),
		)
	}
	lookup := func(name string) (int, error) {
		if name == "" {
			return NoTexture, nil
		}
		idx, ok := textures[name]
		if !ok {
			return 0, fmt.Errorf("%w: unknown texture %q", ErrTextureRef, name)
		}
		return idx, nil
	}

	for _, ls := range f.Lights {
		w.AddLights(ls.build())
	}

	for i, es := range f.Entities {
		e, err := es.build()
		if err != nil {
			return nil, nil, fmt.Errorf("entity %d: %w", i, err)
		}
		tex, err := lookup(es.Texture)
		if err != nil {
			return nil, nil, fmt.Errorf("entity %d: %w", i, err)
		}
		if tex != NoTexture {
			offset, err := es.offset()
			if err != nil {
				return nil, nil, fmt.Errorf("entity %d: %w", i, err)
			}
			e = e.WithTexture(tex, offset)
		}
		w.AddEntities(e.Named(es.Name))
	}

	for i, ms := range f.Meshes {
		tex, err := lookup(ms.Texture)
		if err != nil {
			return nil, nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		if err := ms.place(w, dir, tex, log); err != nil {
			return nil, nil, fmt.Errorf("mesh %d: %w", i, err)
		}
	}

	cam, err := f.Camera.build()
	if err != nil {
		return nil, nil, err
	}
	w.AddCameras(cam)

	log.Info("scene loaded",
		zap.Int("entities", len(w.Entities)),
		zap.Int("lights", len(w.Lights)),
		zap.Int("textures", len(w.Textures)),
		zap.Int("meshes", w.MeshCount()),
	)
	return w, cam, nil
}

func (cs *CameraSpec) build() (*camera.Camera, error) {
	opts := camera.DefaultOptions()
	if cs == nil {
		return camera.New(opts), nil
	}
	opts.Position = cs.Position.vec3(opts.Position)
	opts.Look = cs.Look.vec3(opts.Look)
	opts.Up = cs.Up.vec3(opts.Up)
	if cs.FOV > 0 {
		opts.FOV = cs.FOV
	}
	if cs.FocalLength > 0 {
		opts.FocalLength = cs.FocalLength
	}
	if cs.Yaw != nil {
		opts.Yaw = *cs.Yaw
	}
	opts.Pitch = cs.Pitch

	if cs.LookAt != nil {
		opts.Yaw, opts.Pitch = 0, 0
		cam := camera.New(opts)
		if !cam.LookAt(math3d.Vec3(*cs.LookAt)) {
			return nil, fmt.Errorf("%w: look_at is on the camera or along its up vector", ErrSceneFile)
		}
		return cam, nil
	}
	return camera.New(opts), nil
}

func (ts TextureSpec) build(dir string) (*material.Texture, error) {
	var (
		tex *material.Texture
		err error
	)
	switch strings.ToLower(ts.Type) {
	case "checkerboard", "checker":
		size := ts.CheckSize
		if size == 0 {
			size = 8
		}
		tex, err = material.Checkerboard(material.CheckerOptions{
			CheckSize: size,
			Checks:    ts.Checks,
			Even:      ts.Even.vec3(math3d.V3(1, 1, 1)),
			Odd:       ts.Odd.vec3(math3d.V3(0, 0, 0)),
			Noise:     ts.Noise,
			Seed:      ts.Seed,
		})
	case "mandelbrot":
		w, h := ts.Width, ts.Height
		if w == 0 || h == 0 {
			w, h = material.MandelbrotWidth, material.MandelbrotHeight
		}
		tex, err = material.Mandelbrot(w, h, ts.MaxIter)
	case "image":
		if ts.Path == "" {
			return nil, fmt.Errorf("%w: image texture needs a path", ErrSceneFile)
		}
		tex, err = material.LoadImage(resolve(dir, ts.Path), ts.MaxDim)
	default:
		return nil, fmt.Errorf("%w: unknown texture type %q", ErrSceneFile, ts.Type)
	}
	if err != nil {
		return nil, err
	}

	if ts.Scale > 0 {
		tex.Scale = ts.Scale
	}
	switch strings.ToLower(ts.Filter) {
	case "", "nearest":
		tex.Filter = material.FilterNearest
	case "bilinear":
		tex.Filter = material.FilterBilinear
	default:
		return nil, fmt.Errorf("%w: unknown filter %q", ErrSceneFile, ts.Filter)
	}
	return tex, nil
}

func (ls LightSpec) build() *Light {
	l := NewLight(ls.Position.vec3(math3d.Vec3{}), ls.Color.vec3(math3d.V3(1, 1, 1)))
	if ls.Intensity != nil {
		l.Intensity = *ls.Intensity
	}
	if ls.Enabled != nil {
		l.Enabled = *ls.Enabled
	}
	if ls.Visible != nil {
		l.Visible = *ls.Visible
	}
	return l
}

func (ms *MaterialSpec) build() material.Material {
	m := material.Default()
	if ms == nil {
		return m
	}
	m.DiffuseColor = ms.Color.vec3(m.DiffuseColor)
	m.SpecularColor = ms.SpecularColor.vec3(m.SpecularColor)
	for _, o := range []struct {
		dst *float64
		src *float64
	}{
		{&m.Ambient, ms.Ambient},
		{&m.Diffuse, ms.Diffuse},
		{&m.Specular, ms.Specular},
		{&m.Exponent, ms.Exponent},
		{&m.IOR, ms.IOR},
	} {
		if o.src != nil {
			*o.dst = *o.src
		}
	}
	m.Toon = ms.Toon
	m.Reflection = ms.Reflection
	m.Transmission = ms.Transmission
	return m
}

func (es EntitySpec) build() (Entity, error) {
	mat := es.Material.build()
	switch strings.ToLower(es.Type) {
	case "sphere":
		if es.Center == nil {
			return Entity{}, fmt.Errorf("%w: sphere needs a center", ErrSceneFile)
		}
		return NewSphere(math3d.Vec3(*es.Center), es.Radius, mat)
	case "plane":
		if es.Normal == nil {
			return Entity{}, fmt.Errorf("%w: plane needs a normal", ErrSceneFile)
		}
		if es.TileSize < 0 {
			return Entity{}, fmt.Errorf("%w: tile_size %g is negative", ErrSceneFile, es.TileSize)
		}
		e, err := NewPlane(es.Point.vec3(math3d.Vec3{}), math3d.Vec3(*es.Normal), mat)
		if err != nil {
			return Entity{}, err
		}
		return e.WithTiling(es.TileSize), nil
	case "triangle":
		if len(es.Vertices) != 3 {
			return Entity{}, fmt.Errorf("%w: triangle needs 3 vertices, got %d", ErrSceneFile, len(es.Vertices))
		}
		return NewTriangle(
			math3d.Vec3(es.Vertices[0]),
			math3d.Vec3(es.Vertices[1]),
			math3d.Vec3(es.Vertices[2]),
			mat,
		)
	case "box":
		if es.Center == nil || es.Size == nil {
			return Entity{}, fmt.Errorf("%w: box needs a center and size", ErrSceneFile)
		}
		return NewBox(math3d.Vec3(*es.Center), math3d.Vec3(*es.Size), mat)
	default:
		return Entity{}, fmt.Errorf("%w: unknown entity type %q", ErrSceneFile, es.Type)
	}
}

func (es EntitySpec) offset() (math3d.Vec2, error) {
	switch len(es.TextureOffset) {
	case 0:
		return math3d.Vec2{}, nil
	case 2:
		return math3d.V2(es.TextureOffset[0], es.TextureOffset[1]), nil
	default:
		return math3d.Vec2{}, fmt.Errorf("%w: texture_offset needs 2 components", ErrSceneFile)
	}
}

func (ms MeshSpec) place(w *World, dir string, texture int, log *zap.Logger) error {
	path := resolve(dir, ms.Path)

	var (
		mesh *models.Mesh
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		mesh, err = models.LoadOBJFile(path, log)
	case ".glb", ".gltf":
		mesh, err = models.LoadGLB(path)
	default:
		return fmt.Errorf("%w: unsupported model format %q", ErrSceneFile, filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	transform := math3d.Identity()
	if ms.Fit > 0 {
		transform = mesh.FitTransform(ms.Fit)
	}
	if ms.Scale > 0 {
		transform = math3d.ScaleUniform(ms.Scale).Mul(transform)
	}
	if ms.RotateX != 0 {
		transform = math3d.RotateX(math3d.Radians(ms.RotateX)).Mul(transform)
	}
	if ms.RotateY != 0 {
		transform = math3d.RotateY(math3d.Radians(ms.RotateY)).Mul(transform)
	}
	if ms.RotateZ != 0 {
		transform = math3d.RotateZ(math3d.Radians(ms.RotateZ)).Mul(transform)
	}
	transform = math3d.Translate(ms.Translate.vec3(math3d.Vec3{})).Mul(transform)

	skipped, err := w.AddMesh(mesh, ms.Material.build(), transform, texture)
	if err != nil {
		return err
	}
	log.Info("mesh placed",
		zap.String("name", mesh.Name),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("skipped", skipped),
	)
	return nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
