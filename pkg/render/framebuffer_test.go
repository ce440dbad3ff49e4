package render

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

func TestToRGBA(t *testing.T) {
	tests := []struct {
		name string
		in   math3d.Vec3
		want color.RGBA
	}{
		{"black", math3d.V3(0, 0, 0), color.RGBA{0, 0, 0, 255}},
		{"white", math3d.V3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"half rounds up", math3d.V3(0.5, 0.5, 0.5), color.RGBA{128, 128, 128, 255}},
		{"clamped", math3d.V3(-1, 2, 0.25), color.RGBA{0, 255, 64, 255}},
		{"nan is black", math3d.V3(math.NaN(), 0, 0), color.RGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGBA(tt.in); got != tt.want {
				t.Errorf("ToRGBA(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	red := color.RGBA{255, 0, 0, 255}

	fb.SetPixel(-1, 0, red)
	fb.SetPixel(4, 0, red)
	fb.SetPixel(0, 3, red)
	for i, p := range fb.Pixels {
		if p != (color.RGBA{}) {
			t.Fatalf("pixel %d written by out-of-bounds SetPixel", i)
		}
	}

	fb.SetColor(3, 2, math3d.V3(1, 0, 0))
	if got := fb.GetPixel(3, 2); got != red {
		t.Errorf("GetPixel(3, 2) = %v, want %v", got, red)
	}
	if got := fb.GetPixel(10, 10); got != (color.RGBA{}) {
		t.Errorf("GetPixel out of bounds = %v, want zero", got)
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Resize(2, 2)
	if fb.Width != 2 || fb.Height != 2 || len(fb.Pixels) != 4 {
		t.Fatalf("Resize(2, 2) = %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
	fb.Resize(8, 4)
	if len(fb.Pixels) != 32 {
		t.Fatalf("Resize(8, 4) left %d pixels", len(fb.Pixels))
	}
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(2, 1, color.RGBA{200, 100, 50, 255})

	path := filepath.Join(t.TempDir(), "out.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
	r, g, b, _ := img.At(2, 1).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
		t.Errorf("pixel (2,1) = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestFramebufferSize(t *testing.T) {
	r := NewTerminalRenderer(nil, 80, 24)
	w, h := r.FramebufferSize()
	if w != 80 || h != 48 {
		t.Errorf("FramebufferSize() = %d, %d, want 80, 48", w, h)
	}
}
