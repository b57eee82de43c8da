// Package tessellate converts the colored output solids of a board build
// into triangle meshes using a geometry kernel. One mesh is produced per
// output solid, in output order.
package tessellate

import (
	"fmt"

	"github.com/chazu/boardsolid/pkg/board"
	"github.com/chazu/boardsolid/pkg/kernel"
)

// PartName returns the mesh name for an output solid: its kind and key.
func PartName(s board.ColoredSolid) string {
	return string(s.Kind) + ":" + s.Key
}

// Tessellate meshes every solid with k. The solids are read-only here and
// remain owned by the caller. A solid that was clipped or drilled away
// entirely yields an empty mesh rather than an error.
func Tessellate(solids []board.ColoredSolid, k kernel.Kernel) ([]*kernel.Mesh, error) {
	meshes := make([]*kernel.Mesh, 0, len(solids))
	for _, s := range solids {
		m, err := Solid(s, k)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// Solid meshes one output solid and stamps its name and color.
func Solid(s board.ColoredSolid, k kernel.Kernel) (*kernel.Mesh, error) {
	if s.Solid == nil {
		return nil, fmt.Errorf("tessellate: %s has no solid", PartName(s))
	}
	mesh, err := k.ToMesh(s.Solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for %s: %w", PartName(s), err)
	}
	mesh.PartName = PartName(s)
	mesh.Color = s.Color.Float32()
	return mesh, nil
}

// Bounds returns the axis-aligned bounds of all vertices across meshes.
// ok is false when there are no vertices.
func Bounds(meshes []*kernel.Mesh) (min, max [3]float32, ok bool) {
	for _, m := range meshes {
		for i := 0; i+2 < len(m.Vertices); i += 3 {
			v := [3]float32{m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]}
			if !ok {
				min, max, ok = v, v, true
				continue
			}
			for j := 0; j < 3; j++ {
				if v[j] < min[j] {
					min[j] = v[j]
				}
				if v[j] > max[j] {
					max[j] = v[j]
				}
			}
		}
	}
	return min, max, ok
}
