package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/lumen/internal/config"
	"github.com/taigrr/lumen/internal/logger"
	"github.com/taigrr/lumen/pkg/camera"
	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
)

// modelPosition is where a --model lands in the scene.
var modelPosition = math3d.V3(0, 0.5, 3)

// app bundles what every command needs once the config is loaded.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func newApp(cfg *config.Config, console io.Writer) (*app, error) {
	opts := logger.Options{Level: cfg.Logging.Level, Console: console}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	log, err := logger.New(opts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return &app{cfg: cfg, log: log}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

// sceneName is the label shown for the loaded scene.
func (a *app) sceneName() string {
	name := "default scene"
	if a.cfg.Scene.Path != "" {
		name = filepath.Base(a.cfg.Scene.Path)
	}
	if a.cfg.Scene.Model != "" {
		name += " + " + filepath.Base(a.cfg.Scene.Model)
	}
	return name
}

// loadScene builds the configured world and its camera.
func (a *app) loadScene() (*scene.World, *camera.Camera, error) {
	var (
		w   *scene.World
		cam *camera.Camera
		err error
	)
	if a.cfg.Scene.Path != "" {
		w, cam, err = scene.LoadFile(a.cfg.Scene.Path, a.log)
	} else {
		w, cam, err = scene.Default()
	}
	if err != nil {
		return nil, nil, err
	}

	if a.cfg.Scene.Model != "" {
		if err := a.addModel(w); err != nil {
			return nil, nil, err
		}
	}
	if bg := a.cfg.Render.Background; len(bg) == 3 {
		w.Background = math3d.V3(bg[0], bg[1], bg[2])
	}
	cam.SetViewport(a.cfg.Render.Width, a.cfg.Render.Height)
	return w, cam, nil
}

func (a *app) addModel(w *scene.World) error {
	path := a.cfg.Scene.Model

	var (
		mesh *models.Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		mesh, err = models.LoadGLB(path)
	case ".obj":
		mesh, err = models.LoadOBJFile(path, a.log)
	default:
		return fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	transform := math3d.Translate(modelPosition).Mul(mesh.FitTransform(a.cfg.Scene.ModelScale))
	mat := material.Colored(math3d.V3(0.8, 0.8, 0.8))
	skipped, err := w.AddMesh(mesh, mat, transform, scene.NoTexture)
	if err != nil {
		return fmt.Errorf("add model: %w", err)
	}

	a.log.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("skipped", skipped),
	)
	return nil
}

// settings returns the render settings selected by the config.
func (a *app) settings() render.Settings {
	s := render.DefaultSettings()
	s.MaxDepth = a.cfg.Render.MaxDepth
	s.Shadows = a.cfg.Render.Shadows
	s.Textures = a.cfg.Render.Textures
	return s
}
