package scene

import (
	"fmt"

	"github.com/taigrr/lumen/pkg/camera"
	"github.com/taigrr/lumen/pkg/material"
	"github.com/taigrr/lumen/pkg/math3d"
)

// Default builds the stock scene: two spheres over a checkered floor, a
// small pyramid of colored triangles, a fractal-textured box and one
// light.
func Default() (*World, *camera.Camera, error) {
	w := NewWorld()

	checker, err := material.Checkerboard(material.CheckerOptions{
		CheckSize: 8,
		Even:      math3d.V3(0.9, 0.9, 0.9),
		Odd:       math3d.V3(0.15, 0.15, 0.15),
		Noise:     true,
		Seed:      1,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("floor texture: %w", err)
	}
	checker.Scale = 16
	fractal, err := material.Mandelbrot(material.MandelbrotWidth, material.MandelbrotHeight, material.MandelbrotMaxIter)
	if err != nil {
		return nil, nil, fmt.Errorf("box texture: %w", err)
	}
	fractal.Scale = 100
	floorTex := w.AddTextures(checker, fractal)
	boxTex := floorTex + 1

	mirror := material.Colored(math3d.V3(0.2, 0.2, 0.2))
	mirror.Reflection = 0.35
	glass := material.Colored(math3d.V3(0.3, 0.3, 0.3))
	glass.Transmission = 0.6
	glass.IOR = 1.2

	sky := w.Background.Scale(0.75)
	floorMat := material.Colored(sky)
	ceilingMat := material.Colored(sky)
	ceilingMat.Ambient = 0.5

	var (
		entities []Entity
		firstErr error
	)
	add := func(e Entity, err error) {
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		entities = append(entities, e)
	}

	add(NewSphere(math3d.V3(-0.25, 1.5, 4), 1.4, mirror))
	add(NewSphere(math3d.V3(1.25, 0, 6.5), 1.2, glass))

	floor, err := NewPlane(math3d.V3(0, -1.2, 0), math3d.V3(0, 1, 0), floorMat)
	if err != nil {
		return nil, nil, err
	}
	add(floor.WithTexture(floorTex, math3d.Vec2{}), nil)
	add(NewPlane(math3d.V3(0, 12, 0), math3d.V3(0, -1, 0), ceilingMat))

	apex := math3d.V3(0.5, 0.75, 0.5)
	for _, side := range []struct {
		a, b  math3d.Vec3
		color math3d.Vec3
	}{
		{math3d.V3(1, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0.7, 0.69, 0.42)},
		{math3d.V3(0, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0.42, 0.7, 0.69)},
		{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0.69, 0.42, 0.7)},
		{math3d.V3(0, 0, 1), math3d.V3(1, 0, 1), math3d.V3(0.3, 0.3, 0.721)},
	} {
		toon := material.Colored(side.color)
		toon.Toon = true
		add(NewTriangle(apex, side.a, side.b, toon))
	}

	box, err := NewBox(math3d.V3(-2.75, -0.45, 2.5), math3d.V3(1.5, 1.5, 1.5), material.Colored(math3d.V3(1, 1, 1)))
	if err != nil {
		return nil, nil, err
	}
	add(box.WithTexture(boxTex, math3d.Vec2{}), nil)

	if firstErr != nil {
		return nil, nil, firstErr
	}
	w.AddEntities(entities...)
	w.AddLights(NewLight(math3d.V3(-3, 5, 0), math3d.V3(1, 1, 1)))

	cam := camera.New(camera.DefaultOptions())
	w.AddCameras(cam)
	return w, cam, nil
}
