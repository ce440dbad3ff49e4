package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names shared by the CLI commands.
const (
	FlagWidth      = "width"
	FlagHeight     = "height"
	FlagDepth      = "depth"
	FlagWorkers    = "workers"
	FlagOutput     = "output"
	FlagScene      = "scene"
	FlagModel      = "model"
	FlagModelScale = "model-scale"
	FlagNoShadows  = "no-shadows"
	FlagNoTextures = "no-textures"
	FlagFPS        = "fps"
	FlagLogLevel   = "log-level"
	FlagLogFile    = "log-file"
)

// RegisterFlags adds the override flags to fs. Their defaults are only
// documentation: Load applies a flag only when it was set.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Default()
	fs.Int(FlagWidth, def.Render.Width, "Image width in pixels")
	fs.Int(FlagHeight, def.Render.Height, "Image height in pixels")
	fs.Int(FlagDepth, def.Render.MaxDepth, "Maximum reflection/refraction bounces")
	fs.Int(FlagWorkers, def.Render.Workers, "Render goroutines (0 = all CPUs)")
	fs.StringP(FlagOutput, "o", def.Render.Output, "PNG output path")
	fs.StringP(FlagScene, "s", def.Scene.Path, "YAML scene file (default: built-in scene)")
	fs.StringP(FlagModel, "m", def.Scene.Model, "OBJ or glTF model to add to the scene")
	fs.Float64(FlagModelScale, def.Scene.ModelScale, "Size of the model's largest side")
	fs.Bool(FlagNoShadows, false, "Disable shadow rays")
	fs.Bool(FlagNoTextures, false, "Disable texture sampling")
	fs.Int(FlagFPS, def.View.FPS, "Target frame rate for the viewer")
	fs.String(FlagLogLevel, def.Logging.Level, "Log level: debug, info, warn, error")
	fs.String(FlagLogFile, def.Logging.LogFile, "Write logs to this file")
}

// applyFlags applies CLI flag overrides to the config. Flags that fs does
// not define are ignored.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return err == nil && f != nil && f.Changed
	}
	setInt := func(name string, dst *int) {
		if changed(name) {
			*dst, err = fs.GetInt(name)
		}
	}
	setString := func(name string, dst *string) {
		if changed(name) {
			*dst, err = fs.GetString(name)
		}
	}

	setInt(FlagWidth, &cfg.Render.Width)
	setInt(FlagHeight, &cfg.Render.Height)
	setInt(FlagDepth, &cfg.Render.MaxDepth)
	setInt(FlagWorkers, &cfg.Render.Workers)
	setInt(FlagFPS, &cfg.View.FPS)
	setString(FlagOutput, &cfg.Render.Output)
	setString(FlagScene, &cfg.Scene.Path)
	setString(FlagModel, &cfg.Scene.Model)
	setString(FlagLogLevel, &cfg.Logging.Level)
	setString(FlagLogFile, &cfg.Logging.LogFile)
	if changed(FlagModelScale) {
		cfg.Scene.ModelScale, err = fs.GetFloat64(FlagModelScale)
	}
	if changed(FlagNoShadows) {
		var off bool
		off, err = fs.GetBool(FlagNoShadows)
		cfg.Render.Shadows = !off
	}
	if changed(FlagNoTextures) {
		var off bool
		off, err = fs.GetBool(FlagNoTextures)
		cfg.Render.Textures = !off
	}

	if err != nil {
		return fmt.Errorf("reading flags: %w", err)
	}
	return nil
}
