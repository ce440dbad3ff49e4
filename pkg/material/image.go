package material

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/taigrr/lumen/pkg/math3d"
)

// LoadImage decodes an image file into a texture. Images larger than
// maxDim on either side are downscaled first; maxDim <= 0 keeps the
// original size.
func LoadImage(path string, maxDim int) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return FromImage(img, maxDim)
}

// FromImage converts an image into texels scaled to [0,1].
func FromImage(img image.Image, maxDim int) (*Texture, error) {
	img = fit(img, maxDim)
	bounds := img.Bounds()
	tex, err := NewTexture(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := range tex.Height {
		for x := range tex.Width {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			tex.Set(x, y, math3d.V3(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff))
		}
	}
	return tex, nil
}

// fit scales img down so neither side exceeds maxDim, keeping its aspect.
func fit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}
	if w >= h {
		h = max(1, h*maxDim/w)
		w = maxDim
	} else {
		w = max(1, w*maxDim/h)
		h = maxDim
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
