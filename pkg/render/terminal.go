package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each cell shows two pixel rows with an upper half block: the
// foreground is the top pixel and the background the bottom one.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(col, topY)),
					Bg: rgbaToColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor maps transparent pixels to the terminal's default color.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// Display is a screen that can present what has been drawn on it.
type Display interface {
	uv.Screen
	Display() error
}

// TerminalRenderer presents framebuffers on a terminal of width × height
// cells.
type TerminalRenderer struct {
	scr    Display
	width  int
	height int
}

// NewTerminalRenderer creates a renderer for a terminal of the given size.
func NewTerminalRenderer(scr Display, width, height int) *TerminalRenderer {
	return &TerminalRenderer{scr: scr, width: width, height: height}
}

// FramebufferSize returns the pixel size that fills the terminal: one
// column per cell and two rows per cell.
func (r *TerminalRenderer) FramebufferSize() (width, height int) {
	return r.width, r.height * 2
}

// Render draws fb onto the screen without presenting it.
func (r *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(r.scr, uv.Rectangle(image.Rect(0, 0, r.width, r.height)))
}

// Flush presents everything drawn since the last flush.
func (r *TerminalRenderer) Flush() error {
	return r.scr.Display()
}
