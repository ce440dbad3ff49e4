// Package material describes how surfaces respond to light and provides the
// texel grids that can replace a surface's flat diffuse color.
package material

import (
	"errors"
	"fmt"

	"github.com/taigrr/lumen/pkg/math3d"
)

// ErrEnergy is returned when a material reflects more light than it receives.
var ErrEnergy = errors.New("material: diffuse + specular exceeds 1")

// ErrRange is returned when a coefficient is outside its valid range.
var ErrRange = errors.New("material: coefficient out of range")

// Material holds the Phong shading coefficients of a surface.
type Material struct {
	DiffuseColor  math3d.Vec3
	SpecularColor math3d.Vec3

	Ambient  float64 // Weight of the scene ambient term
	Diffuse  float64 // Weight of the Lambert term
	Specular float64 // Weight of the Phong highlight
	Exponent float64 // Phong shininess

	Toon bool // Stepped lighting with a rim light

	// Reflection and Transmission are mutually exclusive in practice: a
	// reflective surface never transmits. Both lie in [0,1].
	Reflection   float64
	Transmission float64
	IOR          float64 // Index of refraction used for transmission
}

// Default returns a black material with the stock coefficients.
func Default() Material {
	return Material{
		DiffuseColor:  math3d.V3(0, 0, 0),
		SpecularColor: math3d.V3(1, 1, 1),
		Ambient:       0.75,
		Diffuse:       0.5,
		Specular:      0.5,
		Exponent:      5,
		IOR:           1.5,
	}
}

// New creates a material of the given color with the stock coefficients
// replaced by ambient, diffuse, specular and exponent.
func New(color math3d.Vec3, ambient, diffuse, specular, exponent float64) (Material, error) {
	m := Default()
	m.DiffuseColor = color
	m.Ambient = ambient
	m.Diffuse = diffuse
	m.Specular = specular
	m.Exponent = exponent
	if err := m.Validate(); err != nil {
		return Material{}, err
	}
	return m, nil
}

// Colored returns the default material with a different diffuse color.
func Colored(color math3d.Vec3) Material {
	m := Default()
	m.DiffuseColor = color
	return m
}

// Validate checks the energy and range invariants.
func (m Material) Validate() error {
	if m.Diffuse+m.Specular > 1 {
		return fmt.Errorf("%w: %g + %g", ErrEnergy, m.Diffuse, m.Specular)
	}
	for _, c := range []struct {
		name     string
		v        float64
		min, max float64
	}{
		{"ambient", m.Ambient, 0, 1},
		{"diffuse", m.Diffuse, 0, 1},
		{"specular", m.Specular, 0, 1},
		{"reflection", m.Reflection, 0, 1},
		{"transmission", m.Transmission, 0, 1},
	} {
		if c.v < c.min || c.v > c.max {
			return fmt.Errorf("%w: %s = %g", ErrRange, c.name, c.v)
		}
	}
	if m.Exponent < 0 {
		return fmt.Errorf("%w: exponent = %g", ErrRange, m.Exponent)
	}
	if m.Transmission > 0 && m.IOR <= 0 {
		return fmt.Errorf("%w: ior = %g", ErrRange, m.IOR)
	}
	return nil
}

// Opacity returns the fraction of the remaining pixel budget this surface
// resolves. Reflective and transmissive surfaces pass the rest on to the
// next bounce.
func (m Material) Opacity() float64 {
	switch {
	case m.Reflection > 0:
		return 1 - m.Reflection
	case m.Transmission > 0:
		return 1 - m.Transmission
	default:
		return 1
	}
}
