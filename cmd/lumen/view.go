package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/lumen/internal/config"
	"github.com/taigrr/lumen/pkg/camera"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Fly through a scene in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// The terminal belongs to the viewer, so only the log file sink
			// stays active.
			a, err := newApp(cfg, nil)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.view(ctx)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

// viewer is the state shared between the event loop and the frame loop.
type viewer struct {
	mu sync.Mutex

	world    *scene.World
	cam      *camera.Camera
	initial  camera.Camera
	rig      *Rig
	settings render.Settings
	showHUD  bool

	width, height int
	resized       bool

	mouseDown    bool
	lastX, lastY int

	// dirty marks input that changes the picture without rig motion.
	dirty bool
}

// newViewer starts with the HUD shown and a frame pending.
func newViewer(w *scene.World, cam *camera.Camera, rig *Rig, settings render.Settings) *viewer {
	return &viewer{
		world:    w,
		cam:      cam,
		initial:  *cam,
		rig:      rig,
		settings: settings,
		showHUD:  true,
		dirty:    true,
	}
}

// handle applies one terminal event. It reports false when the viewer
// should quit.
func (v *viewer) handle(ev uv.Event, cfg config.ViewConfig) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	speed, sens := cfg.MoveSpeed, cfg.LookSensitivity
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.width, v.height = ev.Width, ev.Height
		v.resized = true
		v.dirty = true

	case uv.KeyPressEvent:
		v.dirty = true
		switch {
		case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
			return false
		case ev.MatchString("w"):
			v.rig.Push(speed, 0, 0)
		case ev.MatchString("s"):
			v.rig.Push(-speed, 0, 0)
		case ev.MatchString("a"):
			v.rig.Push(0, -speed, 0)
		case ev.MatchString("d"):
			v.rig.Push(0, speed, 0)
		case ev.MatchString("space"):
			v.rig.Push(0, 0, speed)
		case ev.MatchString("c"):
			v.rig.Push(0, 0, -speed)
		case ev.MatchString("up"):
			v.rig.Look(0, lookStep)
		case ev.MatchString("down"):
			v.rig.Look(0, -lookStep)
		case ev.MatchString("left"):
			v.rig.Look(lookStep, 0)
		case ev.MatchString("right"):
			v.rig.Look(-lookStep, 0)
		case ev.MatchString("l"):
			if len(v.world.Lights) > 0 {
				v.world.Lights[0].Toggle()
			}
		case ev.MatchString("t"):
			v.settings.Textures = !v.settings.Textures
		case ev.MatchString("h"):
			v.settings.Shadows = !v.settings.Shadows
		case ev.MatchString("r"):
			*v.cam = v.initial
			v.rig.Reset()
		case ev.MatchString("?"), ev.MatchString("shift+/"):
			v.showHUD = !v.showHUD
		}

	case uv.MouseClickEvent:
		v.mouseDown = true
		v.lastX, v.lastY = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		v.mouseDown = false

	case uv.MouseMotionEvent:
		if v.mouseDown {
			dx := ev.X - v.lastX
			dy := ev.Y - v.lastY
			// Yaw grows to the left and pitch grows upward, so a drag to the
			// right or down turns the camera the other way.
			v.rig.Look(-float64(dx)*sens, -float64(dy)*sens)
			v.lastX, v.lastY = ev.X, ev.Y
			v.dirty = true
		}

	case uv.MouseWheelEvent:
		v.dirty = true
		switch ev.Button {
		case uv.MouseWheelUp:
			v.rig.Push(speed, 0, 0)
		case uv.MouseWheelDown:
			v.rig.Push(-speed, 0, 0)
		}
	}
	return true
}

// lookStep is the yaw or pitch impulse of one arrow key press, in degrees.
const lookStep = 3.0

// takeResize returns the new terminal size when one is pending.
func (v *viewer) takeResize() (width, height int, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	ok = v.resized
	v.resized = false
	return v.width, v.height, ok
}

// setViewport resizes the live and the reset camera.
func (v *viewer) setViewport(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cam.SetViewport(width, height)
	v.initial.SetViewport(width, height)
}

// prepare advances the camera one frame and captures what the frame loop
// renders. The frame is nil when nothing changed since the last one.
func (v *viewer) prepare() (*render.Frame, hudState, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	changed := v.dirty || v.rig.Moving()
	v.dirty = false
	v.rig.Apply(v.cam)

	var (
		frame *render.Frame
		err   error
	)
	if changed {
		frame, err = render.NewFrame(v.cam, v.world, v.settings)
	}
	st := hudState{
		Show:     v.showHUD,
		Shadows:  v.settings.Shadows,
		Textures: v.settings.Textures,
		LightOn:  len(v.world.Lights) > 0 && v.world.Lights[0].Enabled,
		Yaw:      v.cam.Yaw,
		Pitch:    v.cam.Pitch,
	}
	return frame, st, err
}

func (a *app) view(ctx context.Context) error {
	w, cam, err := a.loadScene()
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	cam.SetViewport(fbWidth, fbHeight)

	v := newViewer(w, cam, NewRig(a.cfg.View.FPS, a.cfg.View.Smoothing), a.settings())
	v.width, v.height = width, height
	exec := render.NewParallel(a.cfg.Render.Workers, a.log)
	hud := NewHUD(a.sceneName(), len(w.Entities))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for ev := range term.Events() {
			if !v.handle(ev, a.cfg.View) {
				cancel()
				return
			}
		}
	}()

	a.log.Info("viewer started",
		zap.String("scene", a.sceneName()),
		zap.Int("width", fbWidth),
		zap.Int("height", fbHeight),
		zap.Int("fps", a.cfg.View.FPS),
	)

	targetDuration := time.Second / time.Duration(a.cfg.View.FPS)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		start := time.Now()

		if tw, th, ok := v.takeResize(); ok {
			width, height = tw, th
			term.Erase()
			term.Resize(width, height)
			termRenderer = render.NewTerminalRenderer(term, width, height)
			fbWidth, fbHeight = termRenderer.FramebufferSize()
			fb.Resize(fbWidth, fbHeight)
			v.setViewport(fbWidth, fbHeight)
			a.log.Debug("terminal resized", zap.Int("width", width), zap.Int("height", height))
		}

		frame, st, err := v.prepare()
		if err != nil {
			return err
		}
		if frame == nil {
			time.Sleep(targetDuration)
			continue
		}

		if err := exec.Execute(ctx, frame, fb); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(os.Stdout, width, height, st)

		if elapsed := time.Since(start); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
