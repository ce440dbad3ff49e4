package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// ErrTextureSize is returned for textures without texels.
var ErrTextureSize = errors.New("material: texture dimensions must be positive")

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest texel
	FilterBilinear                   // Bilinear interpolation between texels
)

// Texture is an immutable grid of linear RGB texels. Coordinates outside
// the grid wrap around.
type Texture struct {
	Width  int
	Height int
	Scale  float64       // Texels per world unit (or per UV unit)
	Texels []math3d.Vec3 // Row-major, len == Width*Height
	Filter FilterMode
}

// NewTexture creates a black texture with scale 1.
func NewTexture(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTextureSize, width, height)
	}
	return &Texture{
		Width:  width,
		Height: height,
		Scale:  1,
		Texels: make([]math3d.Vec3, width*height),
	}, nil
}

// Set writes a texel. It is used by the generators only; textures are not
// modified once handed to a scene.
func (t *Texture) Set(x, y int, c math3d.Vec3) {
	t.Texels[y*t.Width+x] = c
}

// At returns the texel at integer coordinates, wrapping out-of-range values.
func (t *Texture) At(x, y int) math3d.Vec3 {
	return t.Texels[wrap(y, t.Height)*t.Width+wrap(x, t.Width)]
}

// Sample returns the color at texel-space coordinates (x, y).
func (t *Texture) Sample(x, y float64) math3d.Vec3 {
	if t.Filter == FilterBilinear {
		return t.sampleBilinear(x, y)
	}
	return t.At(int(math.Floor(x)), int(math.Floor(y)))
}

// SampleUV maps normalized coordinates onto the grid, honoring Scale.
func (t *Texture) SampleUV(uv math3d.Vec2) math3d.Vec3 {
	return t.Sample(uv.X*float64(t.Width)*t.Scale, uv.Y*float64(t.Height)*t.Scale)
}

func (t *Texture) sampleBilinear(x, y float64) math3d.Vec3 {
	x -= 0.5
	y -= 0.5
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	ix, iy := int(x0), int(y0)

	c00 := t.At(ix, iy)
	c10 := t.At(ix+1, iy)
	c01 := t.At(ix, iy+1)
	c11 := t.At(ix+1, iy+1)

	top := c00.Lerp(c10, fx)
	bot := c01.Lerp(c11, fx)
	return top.Lerp(bot, fy)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
