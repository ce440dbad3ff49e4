package scene

import "github.com/taigrr/lumen/pkg/math3d"

// LightRadius is the radius of the sphere a visible light is drawn as.
const LightRadius = 0.5

// Light is a point light. When Visible it also appears in the scene as a
// small self-luminous sphere that never casts shadows.
type Light struct {
	Position  math3d.Vec3
	Color     math3d.Vec3
	Intensity float64
	Enabled   bool
	Visible   bool
}

// NewLight creates an enabled, visible light of intensity 1.
func NewLight(position, color math3d.Vec3) *Light {
	return &Light{
		Position:  position,
		Color:     color,
		Intensity: 1,
		Enabled:   true,
		Visible:   true,
	}
}

// Toggle flips the light on or off.
func (l *Light) Toggle() {
	l.Enabled = !l.Enabled
}
