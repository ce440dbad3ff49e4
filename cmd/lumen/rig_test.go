package main

import (
	"bytes"
	"strings"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/lumen/internal/config"
	"github.com/taigrr/lumen/pkg/camera"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
)

func TestAxisWithoutSmoothing(t *testing.T) {
	a := NewAxis(30, false)
	a.Velocity = 2
	assert.Equal(t, 2.0, a.Step())
	assert.Zero(t, a.Velocity)
	assert.Zero(t, a.Step())
}

func TestAxisDecays(t *testing.T) {
	a := NewAxis(30, true)
	a.Velocity = 1

	first := a.Step()
	assert.Equal(t, 1.0, first)
	assert.Less(t, a.Velocity, 1.0)

	for range 300 {
		a.Step()
	}
	assert.Zero(t, a.Velocity)
}

func TestRigApply(t *testing.T) {
	cam := camera.New(camera.DefaultOptions())
	start := cam.Position

	r := NewRig(30, false)
	r.Push(1, 0, 0)
	r.Apply(cam)
	assert.InDelta(t, start.Z+1, cam.Position.Z, 1e-9)
	assert.False(t, r.Moving())

	// Moving right goes toward +X.
	x := cam.Position.X
	r.Push(0, 1, 0)
	r.Apply(cam)
	assert.InDelta(t, x+1, cam.Position.X, 1e-9)

	y := cam.Position.Y
	r.Push(0, 0, 0.5)
	r.Apply(cam)
	assert.InDelta(t, y+0.5, cam.Position.Y, 1e-9)

	yaw := cam.Yaw
	r.Look(10, 0)
	assert.True(t, r.Moving())
	r.Apply(cam)
	assert.InDelta(t, yaw+10, cam.Yaw, 1e-9)
}

func TestRigReset(t *testing.T) {
	r := NewRig(30, true)
	r.Look(5, 5)
	r.Push(1, 1, 1)
	require.True(t, r.Moving())
	r.Reset()
	assert.False(t, r.Moving())
}

func TestHUDRender(t *testing.T) {
	h := NewHUD("demo.yaml", 7)

	var buf bytes.Buffer
	h.Render(&buf, 80, 24, hudState{Show: false})
	assert.NotContains(t, buf.String(), "demo.yaml")
	assert.Contains(t, buf.String(), "\x1b[2K")

	buf.Reset()
	h.Render(&buf, 80, 24, hudState{Show: true, Shadows: true, Yaw: 90})
	out := buf.String()
	assert.Contains(t, out, "demo.yaml")
	assert.Contains(t, out, "7 entities")
	assert.Contains(t, out, "[✓] Shadows")
	assert.Contains(t, out, "[ ] Textures")
	assert.Contains(t, out, "yaw 90°")
	assert.True(t, strings.Contains(out, "\x1b[24;1H"))
}

func newTestViewer(t *testing.T) *viewer {
	t.Helper()
	w, cam, err := scene.Default()
	require.NoError(t, err)
	return newViewer(w, cam, NewRig(30, false), render.DefaultSettings())
}

func TestViewerKeys(t *testing.T) {
	v := newTestViewer(t)
	cfg := config.Default().View

	assert.True(t, v.handle(uv.KeyPressEvent{Code: 't'}, cfg))
	assert.False(t, v.settings.Textures)
	assert.True(t, v.handle(uv.KeyPressEvent{Code: 'h'}, cfg))
	assert.False(t, v.settings.Shadows)
	assert.True(t, v.handle(uv.KeyPressEvent{Code: 'l'}, cfg))
	assert.False(t, v.world.Lights[0].Enabled)

	assert.True(t, v.handle(uv.KeyPressEvent{Code: 'w'}, cfg))
	assert.InDelta(t, cfg.MoveSpeed, v.rig.Forward.Velocity, 1e-9)

	v.rig.Apply(v.cam)
	assert.NotEqual(t, v.initial.Position, v.cam.Position)
	assert.True(t, v.handle(uv.KeyPressEvent{Code: 'r'}, cfg))
	assert.Equal(t, v.initial.Position, v.cam.Position)
}

func TestViewerResize(t *testing.T) {
	v := newTestViewer(t)
	_, _, ok := v.takeResize()
	assert.False(t, ok)

	v.handle(uv.WindowSizeEvent{Width: 100, Height: 40}, config.Default().View)
	w, h, ok := v.takeResize()
	require.True(t, ok)
	assert.Equal(t, 100, w)
	assert.Equal(t, 40, h)
	_, _, ok = v.takeResize()
	assert.False(t, ok)
}

func TestViewerPrepare(t *testing.T) {
	v := newTestViewer(t)
	v.setViewport(40, 30)
	v.rig.Push(1, 0, 0)

	frame, st, err := v.prepare()
	require.NoError(t, err)
	assert.Equal(t, 40, frame.View.Width)
	assert.True(t, st.LightOn)
	assert.True(t, st.Shadows)
	assert.Greater(t, v.cam.Position.Z, v.initial.Position.Z)
	assert.Equal(t, math3d.V3(0, 1, -3), v.initial.Position)
	assert.True(t, st.Show)
}

func TestViewerSkipsIdleFrames(t *testing.T) {
	v := newTestViewer(t)
	v.setViewport(40, 30)
	cfg := config.Default().View

	frame, _, err := v.prepare()
	require.NoError(t, err)
	require.NotNil(t, frame)

	frame, _, err = v.prepare()
	require.NoError(t, err)
	assert.Nil(t, frame)

	v.rig.Push(1, 0, 0)
	frame, _, err = v.prepare()
	require.NoError(t, err)
	assert.NotNil(t, frame)
	assert.False(t, v.rig.Moving())

	// A click alone changes nothing on screen.
	v.handle(uv.MouseClickEvent{X: 3, Y: 4}, cfg)
	frame, _, err = v.prepare()
	require.NoError(t, err)
	assert.Nil(t, frame)

	v.handle(uv.MouseMotionEvent{X: 5, Y: 4}, cfg)
	frame, _, err = v.prepare()
	require.NoError(t, err)
	assert.NotNil(t, frame)

	v.handle(uv.KeyPressEvent{Code: '?'}, cfg)
	frame, st, err := v.prepare()
	require.NoError(t, err)
	assert.NotNil(t, frame)
	assert.False(t, st.Show)
}
