package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taigrr/lumen/pkg/math3d"
)

func assertVec(t *testing.T, want, got math3d.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-9, "z")
}

// forward returns a camera at the origin looking down +Z with yaw already
// at 90 degrees, so a zero rotation leaves it unchanged.
func forward() *Camera {
	return &Camera{
		Look:        math3d.V3(0, 0, 1),
		Up:          math3d.Up(),
		FOV:         90,
		FocalLength: 1,
		Yaw:         90,
		Width:       200,
		Height:      100,
	}
}

func TestNewDefaultsLookDownZ(t *testing.T) {
	c := New(DefaultOptions())
	n, _, _ := c.Basis()
	assertVec(t, math3d.V3(0, 0, 1), n)
	assert.Equal(t, 90.0, c.Yaw)
	assert.Equal(t, 0.0, c.Pitch)
}

func TestBasisIsOrthonormal(t *testing.T) {
	c := forward()
	c.Rotate(30, 20)
	n, u, v := c.Basis()

	for _, vec := range []math3d.Vec3{n, u, v} {
		assert.InDelta(t, 1, vec.Len(), 1e-9)
	}
	assert.InDelta(t, 0, n.Dot(u), 1e-9)
	assert.InDelta(t, 0, n.Dot(v), 1e-9)
	assert.InDelta(t, 0, u.Dot(v), 1e-9)
}

func TestDerivedProjection(t *testing.T) {
	c := forward()
	assert.InDelta(t, 0.5, c.AspectRatio(), 1e-12)
	assert.InDelta(t, 1, c.FovScale(), 1e-12)

	c.FOV = 60
	assert.InDelta(t, math.Tan(math.Pi/6), c.FovScale(), 1e-12)
}

func TestRayDirectionCenterIsForward(t *testing.T) {
	c := forward()
	n, _, _ := c.Basis()
	assertVec(t, n, c.RayDirection(100, 50))
}

func TestRayDirectionHorizontalFlip(t *testing.T) {
	c := forward()
	_, u, v := c.Basis()

	left := c.RayDirection(0, 50)
	right := c.RayDirection(200, 50)
	assert.Greater(t, left.Dot(u), 0.0, "column 0 leans along +U")
	assert.Less(t, right.Dot(u), 0.0, "last column leans along -U")

	bottom := c.RayDirection(100, 0)
	assert.Less(t, bottom.Dot(v), 0.0, "row 0 is the bottom of the image")
}

func TestRayDirectionCorner(t *testing.T) {
	c := forward()
	n, u, v := c.Basis()
	// fovScale 1, aspect 0.5: pX = 0.5, pY = -0.25
	want := n.Add(u.Scale(0.5)).Add(v.Scale(-0.25)).Normalize()
	assertVec(t, want, c.RayDirection(0, 0))

	c.FocalLength = 2
	want = n.Add(u.Scale(0.25)).Add(v.Scale(-0.125)).Normalize()
	assertVec(t, want, c.RayDirection(0, 0))
}

func TestRotatePitchClamp(t *testing.T) {
	c := forward()
	c.Rotate(0, 80)
	assert.Equal(t, 80.0, c.Pitch)

	c.Rotate(5, 20)
	assert.Equal(t, 80.0, c.Pitch, "pitch past 90 is rejected")
	assert.Equal(t, 95.0, c.Yaw, "yaw still applies")

	c.Rotate(0, -170)
	assert.Equal(t, -90.0, c.Pitch)
	c.Rotate(0, -1)
	assert.Equal(t, -90.0, c.Pitch)
}

func TestRotateIsIncremental(t *testing.T) {
	c := forward()
	c.Rotate(0, 0)
	// Look (0,0,1) plus spherical (cos 90, 0, sin 90) stays on +Z.
	assertVec(t, math3d.V3(0, 0, 1), c.Look)

	c = forward()
	c.Yaw = 0
	c.Rotate(0, 0)
	// Yaw 0 adds +X: halfway between +Z and +X.
	assertVec(t, math3d.V3(1, 0, 1).Normalize(), c.Look)
}

func TestMovement(t *testing.T) {
	c := forward()
	c.Dolly(2)
	assertVec(t, math3d.V3(0, 0, 2), c.Position)

	_, u, v := c.Basis()
	c.Strafe(1)
	assertVec(t, math3d.V3(0, 0, 2).Add(u), c.Position)
	c.Elevate(-1)
	assertVec(t, math3d.V3(0, 0, 2).Add(u).Sub(v), c.Position)
}

func TestLookAt(t *testing.T) {
	c := forward()
	assert.True(t, c.LookAt(math3d.V3(0, 5, 5)))
	assertVec(t, math3d.V3(0, 1, 1).Normalize(), c.Look)
	assert.InDelta(t, 45, c.Pitch, 1e-9)

	assert.True(t, c.LookAt(math3d.V3(3, 0, 0)))
	assert.InDelta(t, 0, c.Yaw, 1e-9)
	assert.InDelta(t, 0, c.Pitch, 1e-9)
}

func TestLookAtAlongUpIsRejected(t *testing.T) {
	for _, target := range []math3d.Vec3{
		math3d.V3(0, 5, 0),
		math3d.V3(0, -2, 0),
		math3d.V3(0, 0, 0),
	} {
		c := forward()
		assert.False(t, c.LookAt(target), "target %v", target)
		assertVec(t, math3d.V3(0, 0, 1), c.Look)
		assert.Equal(t, 90.0, c.Yaw)
		assert.Zero(t, c.Pitch)

		_, u, v := c.Basis()
		assert.InDelta(t, 1, u.Len(), 1e-9)
		assert.InDelta(t, 1, v.Len(), 1e-9)
	}
}
