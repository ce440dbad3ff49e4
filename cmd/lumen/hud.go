package main

import (
	"fmt"
	"io"
	"time"
)

// HUD renders an overlay with scene info and toggles.
type HUD struct {
	name      string
	entities  int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// hudState is what the HUD shows besides the frame counter.
type hudState struct {
	Show       bool
	Shadows    bool
	Textures   bool
	LightOn    bool
	Yaw, Pitch float64
}

// NewHUD creates a new HUD.
func NewHUD(name string, entities int) *HUD {
	return &HUD{
		name:     name,
		entities: entities,
		fpsTime:  time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD over the first and last terminal rows.
func (h *HUD) Render(w io.Writer, width, height int, st hudState) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows so toggling off works.
	fmt.Fprint(w, moveTo(1, 1)+clearLine)
	fmt.Fprint(w, moveTo(height, 1)+clearLine)
	if !st.Show {
		return
	}

	fmt.Fprintf(w, "%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.name)-2)/2, 1)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.name, reset)

	count := fmt.Sprintf("%d entities", h.entities)
	countCol := max(width-len(count)-1, 1)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(1, countCol), bgBlack, fgCyan, bold, count, reset)

	fmt.Fprintf(w, "%s%s%s %s Shadows  %s Textures  %s Light %s", moveTo(height, 1),
		bgBlack, fgWhite, check(st.Shadows), check(st.Textures), check(st.LightOn), reset)

	pose := fmt.Sprintf("yaw %.0f° pitch %.0f°", st.Yaw, st.Pitch)
	poseCol := max(width-len(pose)-1, 1)
	fmt.Fprintf(w, "%s%s%s%s %s %s", moveTo(height, poseCol), bgBlack, dim, fgYellow, pose, reset)
}

func check(on bool) string {
	if on {
		return "[✓]"
	}
	return "[ ]"
}
