package material

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/lumen/pkg/math3d"
)

func TestNewTextureRejectsEmpty(t *testing.T) {
	_, err := NewTexture(0, 4)
	assert.ErrorIs(t, err, ErrTextureSize)
}

func TestSampleWraps(t *testing.T) {
	tex, err := NewTexture(2, 2)
	require.NoError(t, err)
	tex.Set(0, 0, math3d.V3(1, 0, 0))
	tex.Set(1, 0, math3d.V3(0, 1, 0))
	tex.Set(0, 1, math3d.V3(0, 0, 1))
	tex.Set(1, 1, math3d.V3(1, 1, 1))

	tests := []struct {
		name string
		x, y float64
		want math3d.Vec3
	}{
		{"inside", 0.5, 0.5, math3d.V3(1, 0, 0)},
		{"wrap positive", 2.5, 0.5, math3d.V3(1, 0, 0)},
		{"wrap negative", -0.5, 0.5, math3d.V3(0, 1, 0)},
		{"wrap both", -0.5, -0.5, math3d.V3(1, 1, 1)},
		{"far away", 1000.2, 1001.7, math3d.V3(0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tex.Sample(tt.x, tt.y))
		})
	}
}

func TestSampleBilinear(t *testing.T) {
	tex, err := NewTexture(2, 1)
	require.NoError(t, err)
	tex.Set(0, 0, math3d.V3(0, 0, 0))
	tex.Set(1, 0, math3d.V3(1, 1, 1))
	tex.Filter = FilterBilinear

	got := tex.Sample(1, 0.5)
	assert.InDelta(t, 0.5, got.X, 1e-12)
}

func TestSampleUVHonorsScale(t *testing.T) {
	tex, err := NewTexture(2, 1)
	require.NoError(t, err)
	tex.Set(1, 0, math3d.V3(1, 1, 1))

	assert.Equal(t, math3d.V3(1, 1, 1), tex.SampleUV(math3d.V2(0.75, 0)))
	tex.Scale = 2
	assert.Equal(t, math3d.V3(1, 1, 1), tex.SampleUV(math3d.V2(0.25, 0)))
}

func TestCheckerboard(t *testing.T) {
	even, odd := math3d.V3(1, 1, 1), math3d.V3(0, 0, 0)
	tex, err := Checkerboard(CheckerOptions{CheckSize: 4, Even: even, Odd: odd})
	require.NoError(t, err)

	assert.Equal(t, 64, tex.Width)
	assert.Equal(t, 64, tex.Height)
	assert.Len(t, tex.Texels, 64*64)
	assert.Equal(t, even, tex.At(0, 0))
	assert.Equal(t, odd, tex.At(4, 0))
	assert.Equal(t, odd, tex.At(0, 4))
	assert.Equal(t, even, tex.At(5, 6))

	_, err = Checkerboard(CheckerOptions{})
	assert.ErrorIs(t, err, ErrTextureSize)
}

func TestCheckerboardNoise(t *testing.T) {
	white := math3d.V3(1, 1, 1)
	opts := CheckerOptions{CheckSize: 2, Checks: 8, Even: white, Odd: white, Noise: true, Seed: 7}
	a, err := Checkerboard(opts)
	require.NoError(t, err)
	b, err := Checkerboard(opts)
	require.NoError(t, err)

	assert.Equal(t, a.Texels, b.Texels, "same seed must give the same texture")
	for _, c := range a.Texels {
		assert.GreaterOrEqual(t, c.X, 0.3)
		assert.LessOrEqual(t, c.X, 1.0)
	}
	// A cell is uniform.
	assert.Equal(t, a.At(0, 0), a.At(1, 1))
}

func TestMandelbrot(t *testing.T) {
	tex, err := Mandelbrot(40, 16, 50)
	require.NoError(t, err)
	assert.Len(t, tex.Texels, 40*16)

	// The origin lies inside the set and is painted black.
	assert.Equal(t, math3d.V3(0, 0, 0), tex.At(20, 8))
	// The far corner escapes immediately and is colored.
	corner := tex.At(0, 0)
	assert.Greater(t, corner.X+corner.Y+corner.Z, 0.0)
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(2, 1, color.RGBA{0, 0, 255, 255})

	tex, err := FromImage(img, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, tex.Width)
	assert.Equal(t, 2, tex.Height)
	assert.Equal(t, math3d.V3(1, 0, 0), tex.At(0, 0))
	assert.Equal(t, math3d.V3(0, 0, 1), tex.At(2, 1))
}

func TestLoadImageDownscales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for y := range 32 {
		for x := range 64 {
			img.Set(x, y, color.RGBA{0, 255, 0, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "green.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	tex, err := LoadImage(path, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, tex.Width)
	assert.Equal(t, 8, tex.Height)
	assert.InDelta(t, 1.0, tex.At(3, 3).Y, 1e-3)

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"), 0)
	assert.Error(t, err)
}
