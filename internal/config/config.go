// Package config handles lumen configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/taigrr/lumen/internal/logger"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all lumen settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	View    ViewConfig    `yaml:"view"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds ray tracing settings.
type RenderConfig struct {
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	MaxDepth   int       `yaml:"max_depth"`
	Workers    int       `yaml:"workers"` // 0 uses every CPU
	Background []float64 `yaml:"background,omitempty"`
	Shadows    bool      `yaml:"shadows"`
	Textures   bool      `yaml:"textures"`
	Output     string    `yaml:"output"`
}

// ViewConfig holds interactive viewer settings.
type ViewConfig struct {
	FPS             int     `yaml:"fps"`
	MoveSpeed       float64 `yaml:"move_speed"`
	LookSensitivity float64 `yaml:"look_sensitivity"` // Degrees per cell of mouse travel
	Smoothing       bool    `yaml:"smoothing"`
}

// SceneConfig selects what is rendered.
type SceneConfig struct {
	Path       string  `yaml:"path"`  // YAML scene file; empty uses the built-in scene
	Model      string  `yaml:"model"` // OBJ or glTF model added to the scene
	ModelScale float64 `yaml:"model_scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:    320,
			Height:   240,
			MaxDepth: 2,
			Shadows:  true,
			Textures: true,
			Output:   "render.png",
		},
		View: ViewConfig{
			FPS:             30,
			MoveSpeed:       0.2,
			LookSensitivity: 0.1,
			Smoothing:       true,
		},
		Scene: SceneConfig{
			ModelScale: 2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values that would make rendering impossible.
func (c *Config) Validate() error {
	switch {
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("%w: render size %dx%d", ErrInvalid, c.Render.Width, c.Render.Height)
	case c.Render.MaxDepth < 0:
		return fmt.Errorf("%w: max_depth %d", ErrInvalid, c.Render.MaxDepth)
	case c.Render.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Render.Workers)
	case c.Render.Background != nil && len(c.Render.Background) != 3:
		return fmt.Errorf("%w: background needs 3 components", ErrInvalid)
	case c.View.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.View.FPS)
	case c.Scene.ModelScale <= 0:
		return fmt.Errorf("%w: model_scale %g", ErrInvalid, c.Scene.ModelScale)
	case !logger.ValidLevel(c.Logging.Level):
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Logging.Level)
	}
	return nil
}
