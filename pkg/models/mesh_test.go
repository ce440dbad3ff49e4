package models

import (
	"math"
	"strings"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

const cubeOBJ = `# unit cube
o cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
vt 0 0
vt 1 0
vt 1 1
vn 0 0 -1
f 1/1 2/2 3/3 4
f 5 6 7 8
f -8 -7 -3 -4
`

func TestLoadOBJ(t *testing.T) {
	mesh, err := LoadOBJ(strings.NewReader(cubeOBJ), nil)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}

	if got := mesh.TriangleCount(); got != 6 {
		t.Errorf("TriangleCount = %d, want 6 (three quads)", got)
	}
	if mesh.Bounds.Min != math3d.V3(0, 0, 0) || mesh.Bounds.Max != math3d.V3(1, 1, 1) {
		t.Errorf("bounds = %v..%v", mesh.Bounds.Min, mesh.Bounds.Max)
	}

	first := mesh.Faces[0]
	if first.Surface != -1 {
		t.Errorf("Surface = %d, want -1", first.Surface)
	}
	v := mesh.Vertices[first.V[1]]
	if !v.HasUV || v.UV != math3d.V2(1, 1) {
		t.Errorf("vertex 2 uv = %v (has %v), want flipped (1, 1)", v.UV, v.HasUV)
	}

	// -8 -7 -3 -4 resolves to v1 v2 v6 v5.
	third := mesh.Faces[4]
	if got := mesh.Vertices[third.V[2]].Position; got != math3d.V3(1, 0, 1) {
		t.Errorf("negative index resolved to %v, want (1,0,1)", got)
	}
}

func TestLoadOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad float", "v 0 x 0\n"},
		{"short vertex", "v 0 0\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"degenerate face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOBJ(strings.NewReader(tt.src), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "line") {
				t.Errorf("error %q should carry a line number", err)
			}
		})
	}
}

func TestMeshTransformAndFit(t *testing.T) {
	mesh, err := LoadOBJ(strings.NewReader(cubeOBJ), nil)
	if err != nil {
		t.Fatal(err)
	}

	mesh.Transform(mesh.FitTransform(4))
	if c := mesh.Center(); c.Len() > 1e-9 {
		t.Errorf("center = %v, want origin", c)
	}
	if s := mesh.Size(); math.Abs(s.MaxComponent()-4) > 1e-9 {
		t.Errorf("size = %v, want 4", s)
	}
}

func TestMeshTriangle(t *testing.T) {
	mesh, err := LoadOBJ(strings.NewReader(cubeOBJ), nil)
	if err != nil {
		t.Fatal(err)
	}

	tri := mesh.Triangle(0)
	if tri.UV1 != math3d.V2(1, 1) {
		t.Errorf("UV1 = %v, want file coordinates", tri.UV1)
	}
	if tri.Normal != math3d.V3(0, 0, 1) {
		t.Errorf("Normal = %v", tri.Normal)
	}

	// Face 2 has no texcoords and keeps the default layout.
	tri = mesh.Triangle(2)
	if tri.UV1 != math3d.V2(1, 0) {
		t.Errorf("default UV1 = %v", tri.UV1)
	}
}

func TestSurfaceLookup(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Surfaces = []Surface{{Name: "red", Color: math3d.V3(1, 0, 0)}}

	if s := mesh.Surface(0); s == nil || s.Name != "red" {
		t.Errorf("Surface(0) = %v", s)
	}
	if mesh.Surface(-1) != nil || mesh.Surface(1) != nil {
		t.Error("out of range surfaces should be nil")
	}
}

func TestEmptyMeshFit(t *testing.T) {
	if got := NewMesh("empty").FitTransform(2); got != math3d.Identity() {
		t.Errorf("FitTransform on empty mesh = %v", got)
	}
}
