package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/lumen/internal/config"
	"github.com/taigrr/lumen/pkg/render"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.renderPNG(ctx)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func (a *app) renderPNG(ctx context.Context) error {
	w, cam, err := a.loadScene()
	if err != nil {
		return err
	}

	frame, err := render.NewFrame(cam, w, a.settings())
	if err != nil {
		return err
	}
	fb := render.NewFramebuffer(cam.Width, cam.Height)
	exec := render.NewParallel(a.cfg.Render.Workers, a.log)

	start := time.Now()
	if err := exec.Execute(ctx, frame, fb); err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := fb.SavePNG(a.cfg.Render.Output); err != nil {
		return fmt.Errorf("save %s: %w", a.cfg.Render.Output, err)
	}
	a.log.Info("render complete",
		zap.String("scene", a.sceneName()),
		zap.String("output", a.cfg.Render.Output),
		zap.Int("width", fb.Width),
		zap.Int("height", fb.Height),
		zap.Int("entities", len(frame.Snapshot.Entities)),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}
