package material

import (
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"
	"github.com/taigrr/lumen/pkg/math3d"
)

// DefaultChecks is the number of cells along each side of a checkerboard.
const DefaultChecks = 16

// CheckerOptions configures Checkerboard.
type CheckerOptions struct {
	CheckSize int // Texels per cell side
	Checks    int // Cells per side; 0 means DefaultChecks
	Even, Odd math3d.Vec3

	// Noise modulates the brightness of each cell with coherent simplex
	// noise, never darkening a cell below 30%.
	Noise bool
	Seed  int64
}

// Checkerboard generates a square texture of alternating cells.
func Checkerboard(opts CheckerOptions) (*Texture, error) {
	if opts.CheckSize <= 0 {
		return nil, fmt.Errorf("%w: check size %d", ErrTextureSize, opts.CheckSize)
	}
	checks := opts.Checks
	if checks <= 0 {
		checks = DefaultChecks
	}
	size := opts.CheckSize * checks
	tex, err := NewTexture(size, size)
	if err != nil {
		return nil, err
	}

	var noise opensimplex.Noise
	if opts.Noise {
		noise = opensimplex.NewNormalized(opts.Seed)
	}

	for y := range size {
		for x := range size {
			cx, cy := x/opts.CheckSize, y/opts.CheckSize
			c := opts.Even
			if (cx+cy)%2 == 1 {
				c = opts.Odd
			}
			if noise != nil {
				c = c.Scale(math.Max(0.3, noise.Eval2(float64(cx)*0.35, float64(cy)*0.35)))
			}
			tex.Set(x, y, c)
		}
	}
	return tex, nil
}
