//go:build manifold

// Package manifold is the exact-mesh board kernel, backed by the Manifold
// C library (https://github.com/elalish/manifold). Unlike the sdfx backend
// it honors cylinder segment counts and its booleans produce watertight
// meshes directly, so STL export needs no surface extraction pass.
//
// Needs libmanifoldc installed. Build with: go build -tags=manifold
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/chazu/boardsolid/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	_ kernel.Kernel   = (*ManifoldKernel)(nil)
	_ kernel.Releaser = (*manifoldSolid)(nil)
)

type manifoldSolid struct {
	ptr *C.ManifoldManifold
}

func (s *manifoldSolid) BoundingBox() (min, max [3]float64) {
	box := C.manifold_bounding_box(C.manifold_alloc_box(), s.ptr)
	defer C.manifold_delete_box(box)
	min = [3]float64{
		float64(C.manifold_box_min_x(box)),
		float64(C.manifold_box_min_y(box)),
		float64(C.manifold_box_min_z(box)),
	}
	max = [3]float64{
		float64(C.manifold_box_max_x(box)),
		float64(C.manifold_box_max_y(box)),
		float64(C.manifold_box_max_z(box)),
	}
	return min, max
}

// Release frees the native manifold. It is safe to call more than once.
func (s *manifoldSolid) Release() {
	free(s)
	runtime.SetFinalizer(s, nil)
}

func free(s *manifoldSolid) {
	if s.ptr != nil {
		C.manifold_delete_manifold(s.ptr)
		s.ptr = nil
	}
}

// newSolid takes ownership of ptr. The board pipeline releases solids
// through kernel.Arena; the finalizer only catches solids that escape it.
func newSolid(ptr *C.ManifoldManifold) *manifoldSolid {
	s := &manifoldSolid{ptr: ptr}
	runtime.SetFinalizer(s, free)
	return s
}

func native(s kernel.Solid) *C.ManifoldManifold {
	return s.(*manifoldSolid).ptr
}

// ManifoldKernel implements kernel.Kernel using the Manifold C library.
type ManifoldKernel struct{}

// New returns the Manifold backend. The error is always nil when the
// library is linked in; it exists to match the stub built without the
// manifold tag.
func New() (kernel.Kernel, error) {
	return &ManifoldKernel{}, nil
}

const centered = C.int(1)

func (k *ManifoldKernel) Box(x, y, z float64) kernel.Solid {
	return newSolid(C.manifold_cube(C.manifold_alloc_manifold(),
		C.double(x), C.double(y), C.double(z), centered))
}

// Cylinder builds a straight barrel approximated by segments facets.
func (k *ManifoldKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	r := C.double(radius)
	return newSolid(C.manifold_cylinder(C.manifold_alloc_manifold(),
		C.double(height), r, r, C.int(segments), centered))
}

// Extrude sweeps a closed counter-clockwise outline along Z. Manifold
// extrudes from z=0 upwards, so the result is shifted down by half the
// height to match the centered convention.
func (k *ManifoldKernel) Extrude(outline []r2.Vec, height float64) (kernel.Solid, error) {
	if len(outline) < 3 {
		return nil, kernel.ErrTooFewPoints
	}
	n := len(outline)
	pts := (*[1 << 28]C.ManifoldVec2)(C.malloc(C.size_t(n) * C.size_t(unsafe.Sizeof(C.ManifoldVec2{}))))[:n:n]
	defer C.free(unsafe.Pointer(&pts[0]))
	for i, p := range outline {
		pts[i] = C.ManifoldVec2{x: C.double(p.X), y: C.double(p.Y)}
	}

	simple := C.manifold_simple_polygon(C.manifold_alloc_simple_polygon(), &pts[0], C.size_t(n))
	defer C.manifold_delete_simple_polygon(simple)
	polys := C.manifold_polygons(C.manifold_alloc_polygons(), &simple, 1)
	defer C.manifold_delete_polygons(polys)

	ptr := C.manifold_extrude(C.manifold_alloc_manifold(), polys,
		C.double(height),
		C.int(0),    // slices
		C.double(0), // twist degrees
		C.double(1), // top scale x
		C.double(1), // top scale y
	)
	extruded := newSolid(ptr)
	defer extruded.Release()
	return k.Translate(extruded, 0, 0, -height/2), nil
}

// Union returns the boolean union of the given solids. Operands are
// merged pairwise in a balanced tree so each intermediate stays small;
// this matters for the single large union of all cutout tools.
func (k *ManifoldKernel) Union(solids ...kernel.Solid) kernel.Solid {
	switch len(solids) {
	case 0:
		return nil
	case 1:
		return solids[0]
	}
	level := solids
	owned := make([]bool, len(level)) // intermediates we may free
	for len(level) > 1 {
		next := make([]kernel.Solid, 0, (len(level)+1)/2)
		nextOwned := make([]bool, 0, cap(next))
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, k.union2(level[i], level[i+1]))
			nextOwned = append(nextOwned, true)
			for _, j := range []int{i, i + 1} {
				if owned[j] {
					level[j].(*manifoldSolid).Release()
				}
			}
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
			nextOwned = append(nextOwned, owned[len(level)-1])
		}
		level, owned = next, nextOwned
	}
	return level[0]
}

func (k *ManifoldKernel) union2(a, b kernel.Solid) kernel.Solid {
	return boolean(a, b, C.MANIFOLD_ADD)
}

// Difference returns a minus b.
func (k *ManifoldKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return boolean(a, b, C.MANIFOLD_SUBTRACT)
}

func (k *ManifoldKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return boolean(a, b, C.MANIFOLD_INTERSECT)
}

func boolean(a, b kernel.Solid, op C.ManifoldOpType) kernel.Solid {
	return newSolid(C.manifold_boolean(C.manifold_alloc_manifold(), native(a), native(b), op))
}

func (k *ManifoldKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return newSolid(C.manifold_translate(C.manifold_alloc_manifold(), native(s),
		C.double(x), C.double(y), C.double(z)))
}

// Rotate takes Euler angles in degrees, applied X, then Y, then Z.
func (k *ManifoldKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return newSolid(C.manifold_rotate(C.manifold_alloc_manifold(), native(s),
		C.double(x), C.double(y), C.double(z)))
}

// ToMesh copies the solid's MeshGL into a kernel.Mesh. A solid that a
// boolean emptied, such as a pad drilled away entirely, gives an empty mesh.
func (k *ManifoldKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	meshGL := C.manifold_get_meshgl(C.manifold_alloc_meshgl(), native(s))
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))
	if numVert == 0 || numTri == 0 {
		return &kernel.Mesh{}, nil
	}

	numProp := int(C.manifold_meshgl_num_prop(meshGL))
	props := make([]float32, numVert*numProp)
	C.manifold_meshgl_vert_properties((*C.float)(unsafe.Pointer(&props[0])), meshGL)

	indices := make([]uint32, numTri*3)
	C.manifold_meshgl_tri_verts((*C.uint32_t)(unsafe.Pointer(&indices[0])), meshGL)

	vertices, normals := splitProperties(props, numProp)
	if normals == nil {
		normals = vertexNormals(vertices, indices)
	}
	mesh := &kernel.Mesh{Vertices: vertices, Normals: normals, Indices: indices}
	if mesh.VertexCount() != numVert {
		return nil, fmt.Errorf("manifold: vertex count mismatch: got %d, expected %d",
			mesh.VertexCount(), numVert)
	}
	return mesh, nil
}

// splitProperties separates MeshGL's interleaved vertex properties.
// Position is always the first three properties; normals, when present,
// are the next three. normals is nil when the mesh carries none.
func splitProperties(props []float32, numProp int) (vertices, normals []float32) {
	n := len(props) / numProp
	vertices = make([]float32, n*3)
	if numProp >= 6 {
		normals = make([]float32, n*3)
	}
	for i := 0; i < n; i++ {
		p := props[i*numProp:]
		copy(vertices[i*3:i*3+3], p[:3])
		if normals != nil {
			copy(normals[i*3:i*3+3], p[3:6])
		}
	}
	return vertices, normals
}

// vertexNormals averages the face normals around each vertex. Board
// solids are mostly flat faces, so this only matters on arcs.
func vertexNormals(vertices []float32, indices []uint32) []float32 {
	acc := make([]float64, len(vertices))
	at := func(i uint32) (float64, float64, float64) {
		return float64(vertices[i*3]), float64(vertices[i*3+1]), float64(vertices[i*3+2])
	}
	for t := 0; t+2 < len(indices); t += 3 {
		tri := indices[t : t+3]
		ax, ay, az := at(tri[0])
		bx, by, bz := at(tri[1])
		cx, cy, cz := at(tri[2])
		ux, uy, uz := bx-ax, by-ay, bz-az
		vx, vy, vz := cx-ax, cy-ay, cz-az
		nx, ny, nz := uy*vz-uz*vy, uz*vx-ux*vz, ux*vy-uy*vx
		for _, i := range tri {
			acc[i*3] += nx
			acc[i*3+1] += ny
			acc[i*3+2] += nz
		}
	}
	normals := make([]float32, len(vertices))
	for i := 0; i+2 < len(acc); i += 3 {
		l := math.Sqrt(acc[i]*acc[i] + acc[i+1]*acc[i+1] + acc[i+2]*acc[i+2])
		if l > 1e-12 {
			normals[i] = float32(acc[i] / l)
			normals[i+1] = float32(acc[i+1] / l)
			normals[i+2] = float32(acc[i+2] / l)
		}
	}
	return normals
}
