// Package sdfx is the default board kernel, built on the
// github.com/deadsy/sdfx signed-distance CAD library.
//
// Booleans only compose distance functions, so they are cheap and never
// fail; the cost moves to point evaluation and to the marching cubes pass
// in ToMesh. Cylinder segment counts are ignored since the surfaces are
// exact.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/boardsolid/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r2"
)

var _ kernel.Kernel = (*SdfxKernel)(nil)
var _ kernel.Sampler = (*sdfxSolid)(nil)

const (
	defaultMeshCells = 200
	// maxMeshCells bounds the resolution WithCellSize can ask for.
	maxMeshCells = 2000
)

type sdfxSolid struct {
	s sdf.SDF3
}

func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	return [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}, [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
}

// Inside reports whether the point lies strictly inside the solid.
func (s *sdfxSolid) Inside(x, y, z float64) bool {
	return s.s.Evaluate(v3.Vec{X: x, Y: y, Z: z}) < 0
}

// Option configures an SdfxKernel.
type Option func(*SdfxKernel)

// WithMeshCells sets the marching cubes resolution along the longest axis
// of each solid.
func WithMeshCells(n int) Option {
	return func(k *SdfxKernel) {
		if n > 0 {
			k.meshCells = n
		}
	}
}

// WithCellSize asks for cells no larger than size millimetres. A solid
// then gets at least the WithMeshCells resolution and more when it is long
// enough, up to maxMeshCells. Thin copper needs this on large boards.
func WithCellSize(size float64) Option {
	return func(k *SdfxKernel) {
		if size > 0 {
			k.cellSize = size
		}
	}
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	meshCells int
	cellSize  float64
}

// New returns an SdfxKernel.
func New(opts ...Option) *SdfxKernel {
	k := &SdfxKernel{meshCells: defaultMeshCells}
	for _, o := range opts {
		o(k)
	}
	return k
}

func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// must turns an sdfx constructor error into a panic. The board pipeline
// validates dimensions before it reaches the kernel, so a failure here is
// a programming error.
func must(s sdf.SDF3, err error, what string) kernel.Solid {
	if err != nil {
		panic(fmt.Sprintf("sdfx: %s: %v", what, err))
	}
	return wrap(s)
}

// Box creates a box with the given dimensions centered at the origin.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	return must(s, err, "box")
}

// Cylinder creates a cylinder along Z. segments is ignored.
func (k *SdfxKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	return must(s, err, "cylinder")
}

// Extrude sweeps a closed outline along Z, centered on z=0. Outline
// orientation does not matter to the distance function.
func (k *SdfxKernel) Extrude(outline []r2.Vec, height float64) (kernel.Solid, error) {
	if len(outline) < 3 {
		return nil, kernel.ErrTooFewPoints
	}
	if height <= 0 {
		return nil, fmt.Errorf("sdfx: extrusion height %g must be positive", height)
	}
	vertices := make([]v2.Vec, len(outline))
	for i, p := range outline {
		vertices[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	profile, err := sdf.Polygon2D(vertices)
	if err != nil {
		return nil, fmt.Errorf("sdfx: outline: %w", err)
	}
	return wrap(sdf.Extrude3D(profile, height)), nil
}

// Union returns the union of the given solids. sdfx unions any number of
// operands in one node, so the cutout tools never nest.
func (k *SdfxKernel) Union(solids ...kernel.Solid) kernel.Solid {
	switch len(solids) {
	case 0:
		return nil
	case 1:
		return wrap(unwrap(solids[0]))
	}
	parts := make([]sdf.SDF3, len(solids))
	for i, s := range solids {
		parts[i] = unwrap(s)
	}
	return wrap(sdf.Union3D(parts...))
}

// Difference returns a minus b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid. A zero offset adds no transform node.
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	if x == 0 && y == 0 && z == 0 {
		return wrap(unwrap(s))
	}
	return wrap(sdf.Transform3D(unwrap(s), sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})))
}

// Rotate applies X, then Y, then Z rotations in degrees. Most pads are
// unrotated, so a zero rotation adds no transform node.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	if x == 0 && y == 0 && z == 0 {
		return wrap(unwrap(s))
	}
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	m := sdf.RotateZ(rad(z)).Mul(sdf.RotateY(rad(y))).Mul(sdf.RotateX(rad(x)))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// cells returns the marching cubes resolution for s.
func (k *SdfxKernel) cells(s kernel.Solid) int {
	n := k.meshCells
	if k.cellSize <= 0 {
		return n
	}
	min, max := s.BoundingBox()
	longest := math.Max(max[0]-min[0], math.Max(max[1]-min[1], max[2]-min[2]))
	if want := int(math.Ceil(longest / k.cellSize)); want > n {
		n = want
	}
	if n > maxMeshCells {
		n = maxMeshCells
	}
	return n
}

// ToMesh tessellates a solid with uniform marching cubes. Each triangle
// gets its own three vertices so the flat face normal holds across it.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	tris := render.ToTriangles(unwrap(s), render.NewMarchingCubesUniform(k.cells(s)))

	m := &kernel.Mesh{
		Vertices: make([]float32, 0, len(tris)*9),
		Normals:  make([]float32, 0, len(tris)*9),
		Indices:  make([]uint32, 0, len(tris)*3),
	}
	for _, tri := range tris {
		n := tri.Normal()
		for _, v := range tri {
			m.Indices = append(m.Indices, uint32(len(m.Vertices)/3))
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		}
	}
	return m, nil
}
