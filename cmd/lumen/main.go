// lumen - terminal ray tracer
// Render scenes of spheres, planes, triangles, boxes and meshes to PNG, or
// fly through them in your terminal.
//
// Viewer controls:
//
//	Mouse drag  - Look around
//	Arrows      - Look around
//	W/A/S/D     - Move forward/left/back/right
//	Scroll      - Dolly in/out
//	L           - Toggle the first light
//	T           - Toggle textures
//	H           - Toggle shadows
//	R           - Reset the camera
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
