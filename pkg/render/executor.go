package render

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrViewport is returned when the framebuffer and the frame's view differ
// in size.
var ErrViewport = errors.New("render: framebuffer size does not match view")

// Executor invokes RenderPixel once per pixel and assembles the results.
// Kernel row y lands in framebuffer row Height-1-y.
type Executor interface {
	Execute(ctx context.Context, f *Frame, fb *Framebuffer) error
}

// Serial renders on the calling goroutine.
type Serial struct{}

// Execute renders every pixel in row order.
func (Serial) Execute(ctx context.Context, f *Frame, fb *Framebuffer) error {
	if err := checkViewport(f, fb); err != nil {
		return err
	}
	for y := range fb.Height {
		if err := ctx.Err(); err != nil {
			return err
		}
		renderRow(f, fb, y)
	}
	return nil
}

// Parallel renders rows concurrently on a bounded pool of goroutines.
type Parallel struct {
	Workers int // 0 means GOMAXPROCS
	Log     *zap.Logger
}

// NewParallel creates a parallel executor.
func NewParallel(workers int, log *zap.Logger) *Parallel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parallel{Workers: workers, Log: log}
}

// Execute renders the frame. Cancelling ctx abandons the frame; rows
// already written stay in fb.
func (p *Parallel) Execute(ctx context.Context, f *Frame, fb *Framebuffer) error {
	if err := checkViewport(f, fb); err != nil {
		return err
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := range fb.Height {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			renderRow(f, fb, y)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}

	log.Debug("frame rendered",
		zap.Int("width", fb.Width),
		zap.Int("height", fb.Height),
		zap.Int("workers", workers),
		zap.Int("entities", len(f.Snapshot.Entities)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func checkViewport(f *Frame, fb *Framebuffer) error {
	if f.View.Width != fb.Width || f.View.Height != fb.Height {
		return fmt.Errorf("%w: view %dx%d, framebuffer %dx%d",
			ErrViewport, f.View.Width, f.View.Height, fb.Width, fb.Height)
	}
	return nil
}

func renderRow(f *Frame, fb *Framebuffer, y int) {
	row := fb.Height - 1 - y
	for x := range fb.Width {
		fb.SetColor(x, row, RenderPixel(f, x, y))
	}
}
