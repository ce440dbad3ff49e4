package material

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/lumen/pkg/math3d"
)

// Mandelbrot defaults.
const (
	MandelbrotWidth   = 400
	MandelbrotHeight  = 160
	MandelbrotMaxIter = 1000
)

// Mandelbrot renders the escape-time fractal into a texture. The escape
// count picks the hue; points inside the set are black.
func Mandelbrot(width, height, maxIter int) (*Texture, error) {
	tex, err := NewTexture(width, height)
	if err != nil {
		return nil, err
	}
	if maxIter <= 0 {
		maxIter = MandelbrotMaxIter
	}

	w, h := float64(width), float64(height)
	for row := range height {
		for col := range width {
			cr := (float64(col) - w/2) * 4 / w
			ci := (float64(row) - h/2) * 4 / w
			n := escape(cr, ci, maxIter)

			light := 0.5
			if n >= maxIter {
				light = 0
			}
			hue := math.Floor(float64(n) / float64(maxIter) * 360)
			c := colorful.Hsl(hue, 1, light)
			tex.Set(col, row, math3d.V3(c.R, c.G, c.B))
		}
	}
	return tex, nil
}

func escape(cr, ci float64, maxIter int) int {
	var x, y float64
	n := 0
	for x*x+y*y <= 4 && n < maxIter {
		x, y = x*x-y*y+cr, 2*x*y+ci
		n++
	}
	return n
}
