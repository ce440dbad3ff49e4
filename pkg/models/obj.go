package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/lumen/pkg/math3d"
)

// LoadOBJFile loads a Wavefront OBJ file.
func LoadOBJFile(path string, log *zap.Logger) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := LoadOBJ(f, log)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// LoadOBJ parses OBJ geometry: v, vt and f statements. Polygons are
// fan-triangulated and negative indices count back from the latest vertex.
// Statements the ray tracer has no use for are skipped; unknown keywords
// are logged at warn level.
func LoadOBJ(r io.Reader, log *zap.Logger) (*Mesh, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := objParser{
		mesh:  NewMesh("obj"),
		index: make(map[[2]int]int),
		log:   log,
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if err := p.statement(fields[0], fields[1:]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	p.mesh.CalculateBounds()
	return p.mesh, nil
}

type objParser struct {
	mesh      *Mesh
	positions []math3d.Vec3
	texcoords []math3d.Vec2
	index     map[[2]int]int // (position, texcoord) -> vertex
	log       *zap.Logger
}

func (p *objParser) statement(keyword string, args []string) error {
	switch keyword {
	case "v":
		v, err := parseFloats(args, 3)
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		p.positions = append(p.positions, math3d.V3(v[0], v[1], v[2]))
	case "vt":
		v, err := parseFloats(args, 2)
		if err != nil {
			return fmt.Errorf("texcoord: %w", err)
		}
		// OBJ puts v=0 at the bottom; texel rows start at the top.
		p.texcoords = append(p.texcoords, math3d.V2(v[0], 1-v[1]))
	case "f":
		return p.face(args)
	case "vn", "o", "g", "s", "usemtl", "mtllib", "l", "vp":
		p.log.Debug("ignoring obj statement", zap.String("keyword", keyword))
	default:
		p.log.Warn("unhandled obj keyword", zap.String("keyword", keyword))
	}
	return nil
}

func (p *objParser) face(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(args))
	}
	corners := make([]int, len(args))
	for i, ref := range args {
		v, err := p.vertex(ref)
		if err != nil {
			return fmt.Errorf("face vertex %q: %w", ref, err)
		}
		corners[i] = v
	}
	for i := 1; i+1 < len(corners); i++ {
		p.mesh.Faces = append(p.mesh.Faces, Face{
			V:       [3]int{corners[0], corners[i], corners[i+1]},
			Surface: -1,
		})
	}
	return nil
}

// vertex resolves a "v", "v/vt", "v//vn" or "v/vt/vn" reference.
func (p *objParser) vertex(ref string) (int, error) {
	parts := strings.Split(ref, "/")
	pi, err := resolveIndex(parts[0], len(p.positions))
	if err != nil {
		return 0, err
	}
	ti := -1
	if len(parts) > 1 && parts[1] != "" {
		ti, err = resolveIndex(parts[1], len(p.texcoords))
		if err != nil {
			return 0, err
		}
	}

	key := [2]int{pi, ti}
	if v, ok := p.index[key]; ok {
		return v, nil
	}
	vert := Vertex{Position: p.positions[pi]}
	if ti >= 0 {
		vert.UV = p.texcoords[ti]
		vert.HasUV = true
	}
	p.mesh.Vertices = append(p.mesh.Vertices, vert)
	p.index[key] = len(p.mesh.Vertices) - 1
	return len(p.mesh.Vertices) - 1, nil
}

// resolveIndex converts a 1-based or negative OBJ index into a 0-based one.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index: %w", err)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, fmt.Errorf("index 0 is invalid")
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %s out of range (%d defined)", s, count)
	}
	return i, nil
}

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
