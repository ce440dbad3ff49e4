package geometry

import (
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

const tol = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSphereIntersect(t *testing.T) {
	unit := Sphere{Center: math3d.V3(0, 0, 0), Radius: 1}

	tests := []struct {
		name   string
		origin math3d.Vec3
		dir    math3d.Vec3
		want   float64
	}{
		{"head on", math3d.V3(0, 0, -5), math3d.V3(0, 0, 1), 4},
		{"from inside", math3d.V3(0, 0, 0), math3d.V3(0, 0, 1), 1},
		{"behind", math3d.V3(0, 0, 5), math3d.V3(0, 0, 1), NoHit},
		{"miss", math3d.V3(0, 2, -5), math3d.V3(0, 0, 1), NoHit},
		{"tangent", math3d.V3(0, 1, -5), math3d.V3(0, 0, 1), 5},
		{"unnormalized direction", math3d.V3(0, 0, -5), math3d.V3(0, 0, 2), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unit.Intersect(tt.origin, tt.dir); !near(got, tt.want) {
				t.Errorf("Intersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSphereNormalAndUV(t *testing.T) {
	s := Sphere{Center: math3d.V3(1, 1, 1), Radius: 2}
	n := s.NormalAt(math3d.V3(1, 3, 1))
	if n != math3d.V3(0, 1, 0) {
		t.Errorf("NormalAt = %v, want up", n)
	}
	uv := s.UV(math3d.V3(1, 3, 1))
	if !near(uv.Y, 0) {
		t.Errorf("north pole v = %v, want 0", uv.Y)
	}
}

func TestPlaneIntersect(t *testing.T) {
	floor := Plane{Point: math3d.V3(0, -1, 0), Normal: math3d.V3(0, 1, 0)}

	tests := []struct {
		name   string
		origin math3d.Vec3
		dir    math3d.Vec3
		want   float64
	}{
		{"straight down", math3d.V3(0, 1, 0), math3d.V3(0, -1, 0), 2},
		{"parallel", math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), NoHit},
		{"pointing away", math3d.V3(0, 1, 0), math3d.V3(0, 1, 0), NoHit},
		{"from below hits back face", math3d.V3(0, -3, 0), math3d.V3(0, 1, 0), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := floor.Intersect(tt.origin, tt.dir); !near(got, tt.want) {
				t.Errorf("Intersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaneTiling(t *testing.T) {
	p := Plane{Point: math3d.V3(0, 0, 0), Normal: math3d.V3(0, 1, 0), TileSize: 1}
	down := math3d.V3(0, -1, 0)

	hits := 0
	for _, x := range []float64{0.5, 1.5, 2.5, 3.5} {
		if p.Intersect(math3d.V3(x, 1, 0.5), down) > 0 {
			hits++
		}
	}
	if hits != 2 {
		t.Errorf("expected alternating cells, got %d solid of 4", hits)
	}
}

func TestPlaneCoords(t *testing.T) {
	p := Plane{Point: math3d.V3(0, 2, 0), Normal: math3d.V3(0, 1, 0)}
	tu, tv := p.Tangents()
	if !near(tu.Dot(p.Normal), 0) || !near(tv.Dot(p.Normal), 0) || !near(tu.Dot(tv), 0) {
		t.Fatalf("tangents not orthogonal: %v %v", tu, tv)
	}
	c := p.Coords(math3d.V3(3, 2, 0))
	if !near(math.Hypot(c.X, c.Y), 3) {
		t.Errorf("Coords length = %v, want 3", math.Hypot(c.X, c.Y))
	}
}

func TestTriangleIntersect(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))

	t.Run("hit", func(t *testing.T) {
		d, u, v := tri.IntersectUV(math3d.V3(0.25, 0.25, -1), math3d.V3(0, 0, 1))
		if !near(d, 1) {
			t.Fatalf("distance = %v, want 1", d)
		}
		w := 1 - u - v
		if !near(u+v+w, 1) || u < 0 || v < 0 || w < 0 {
			t.Errorf("barycentric (%v, %v, %v) invalid", w, u, v)
		}
		if !near(u, 0.25) || !near(v, 0.25) {
			t.Errorf("u, v = %v, %v, want 0.25, 0.25", u, v)
		}
	})

	tests := []struct {
		name   string
		origin math3d.Vec3
		dir    math3d.Vec3
	}{
		{"outside edge", math3d.V3(0.75, 0.75, -1), math3d.V3(0, 0, 1)},
		{"parallel", math3d.V3(0.25, 0.25, -1), math3d.V3(1, 0, 0)},
		{"behind", math3d.V3(0.25, 0.25, 1), math3d.V3(0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tri.Intersect(tt.origin, tt.dir); got != NoHit {
				t.Errorf("Intersect = %v, want NoHit", got)
			}
		})
	}
}

func TestTriangleUV(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	uv := tri.UV(0.25, 0.5)
	if !near(uv.X, 0.25) || !near(uv.Y, 0.5) {
		t.Errorf("UV = %v", uv)
	}
	if !near(tri.Area(), 0.5) {
		t.Errorf("Area = %v", tri.Area())
	}
	if tri.Normal != math3d.V3(0, 0, 1) {
		t.Errorf("Normal = %v", tri.Normal)
	}
}

func TestBoxIntersect(t *testing.T) {
	b := NewBox(math3d.V3(0, 0, 0), math3d.V3(2, 2, 2))

	tests := []struct {
		name   string
		origin math3d.Vec3
		dir    math3d.Vec3
		want   float64
		normal math3d.Vec3
	}{
		{"front", math3d.V3(0, 0, -5), math3d.V3(0, 0, 1), 4, math3d.V3(0, 0, -1)},
		{"top", math3d.V3(0.5, 5, 0.5), math3d.V3(0, -1, 0), 4, math3d.V3(0, 1, 0)},
		{"side", math3d.V3(5, 0.2, 0), math3d.V3(-1, 0, 0), 4, math3d.V3(1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Intersect(tt.origin, tt.dir)
			if !near(got, tt.want) {
				t.Fatalf("Intersect = %v, want %v", got, tt.want)
			}
			if n := b.NormalAt(Point(tt.origin, tt.dir, got)); n != tt.normal {
				t.Errorf("NormalAt = %v, want %v", n, tt.normal)
			}
		})
	}

	if got := b.Intersect(math3d.V3(0, 5, -5), math3d.V3(0, 0, 1)); got != NoHit {
		t.Errorf("miss = %v, want NoHit", got)
	}
	if got := b.Intersect(math3d.V3(0, 0, 5), math3d.V3(0, 0, 1)); got != NoHit {
		t.Errorf("behind = %v, want NoHit", got)
	}
	if got := b.Intersect(math3d.V3(0, 0, 0), math3d.V3(0, 0, 1)); got >= 0 {
		t.Errorf("inside should report the near face behind the origin, got %v", got)
	}
}

func TestAABB(t *testing.T) {
	b := EmptyAABB().Extend(math3d.V3(-1, 0, 2)).Extend(math3d.V3(1, 3, -2))
	if b.Min != math3d.V3(-1, 0, -2) || b.Max != math3d.V3(1, 3, 2) {
		t.Fatalf("bounds = %v..%v", b.Min, b.Max)
	}
	if b.Center() != math3d.V3(0, 1.5, 0) {
		t.Errorf("Center = %v", b.Center())
	}
	if b.Size() != math3d.V3(2, 3, 4) {
		t.Errorf("Size = %v", b.Size())
	}
	if !b.Hit(math3d.V3(0, 1, -10), math3d.V3(0, 0, 1)) {
		t.Error("expected hit")
	}
	if b.Hit(math3d.V3(0, 1, -10), math3d.V3(0, 0, -1)) {
		t.Error("expected miss behind origin")
	}
	if p := b.Pad(1); p.Min != math3d.V3(-2, -1, -3) {
		t.Errorf("Pad min = %v", p.Min)
	}
}

func TestPoint(t *testing.T) {
	if got := Point(math3d.V3(1, 0, 0), math3d.V3(0, 0, 1), 2); got != math3d.V3(1, 0, 2) {
		t.Errorf("Point = %v", got)
	}
}

func BenchmarkSphereIntersect(b *testing.B) {
	s := Sphere{Center: math3d.V3(0, 0, 0), Radius: 1}
	o, d := math3d.V3(0, 0, -5), math3d.V3(0, 0, 1)

	for b.Loop() {
		_ = s.Intersect(o, d)
	}
}

func BenchmarkTriangleIntersect(b *testing.B) {
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	o, d := math3d.V3(0.25, 0.25, -1), math3d.V3(0, 0, 1)

	for b.Loop() {
		_ = tri.Intersect(o, d)
	}
}

func BenchmarkBoxIntersect(b *testing.B) {
	box := NewBox(math3d.V3(0, 0, 0), math3d.V3(2, 2, 2))
	o, d := math3d.V3(0, 0, -5), math3d.V3(0, 0, 1)

	for b.Loop() {
		_ = box.Intersect(o, d)
	}
}
