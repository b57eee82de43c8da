// Package export writes board meshes to disk: one binary STL per part and
// a JSON manifest carrying the part names and colors that STL cannot.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/boardsolid/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ManifestName is the manifest file written next to the STL files.
const ManifestName = "manifest.json"

// Part describes one exported mesh.
type Part struct {
	Name      string     `json:"name"`
	File      string     `json:"file,omitempty"` // empty when the mesh had no triangles
	Color     [3]float32 `json:"color"`
	Triangles int        `json:"triangles"`
}

// Manifest lists the exported parts in output order.
type Manifest struct {
	Parts    []Part   `json:"parts"`
	Warnings []string `json:"warnings,omitempty"`
}

// Triangles converts a flat mesh to sdfx triangles.
func Triangles(m *kernel.Mesh) []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		c := m.Triangle(i)
		var t sdf.Triangle3
		for j := 0; j < 3; j++ {
			t[j] = v3.Vec{X: float64(c[j][0]), Y: float64(c[j][1]), Z: float64(c[j][2])}
		}
		out = append(out, &t)
	}
	return out
}

// WriteSTL writes m as a binary STL file.
func WriteSTL(path string, m *kernel.Mesh) error {
	if err := render.SaveSTL(path, Triangles(m)); err != nil {
		return fmt.Errorf("export: %s: %w", path, err)
	}
	return nil
}

// FileName returns the STL file name of the i-th part. Characters that
// are unsafe in file names are replaced.
func FileName(i int, partName string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, partName)
	return fmt.Sprintf("%03d_%s.stl", i, safe)
}

// WriteAll writes every non-empty mesh to dir, then the manifest. dir is
// created if needed.
func WriteAll(dir string, meshes []*kernel.Mesh, warnings []string) (Manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("export: %w", err)
	}
	man := Manifest{Parts: make([]Part, 0, len(meshes)), Warnings: warnings}
	for i, m := range meshes {
		p := Part{Name: m.PartName, Color: m.Color, Triangles: m.TriangleCount()}
		if !m.IsEmpty() {
			p.File = FileName(i, m.PartName)
			if err := WriteSTL(filepath.Join(dir, p.File), m); err != nil {
				return Manifest{}, err
			}
		}
		man.Parts = append(man.Parts, p)
	}

	data, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("export: manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), data, 0o644); err != nil {
		return Manifest{}, fmt.Errorf("export: manifest: %w", err)
	}
	return man, nil
}
