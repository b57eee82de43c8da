// Package kernel defines the abstract boolean-geometry kernel interface.
// Implementations (sdfx, manifold) provide primitive construction,
// extrusion and boolean operations behind this interface so the board
// pipeline can swap backends without touching its own logic.
package kernel

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrTooFewPoints is returned by Extrude when the outline cannot enclose
// any area.
var ErrTooFewPoints = errors.New("kernel: outline needs at least 3 points")

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Releaser is implemented by solids that hold resources outside the Go
// heap. Release must be idempotent.
type Releaser interface {
	Release()
}

// Sampler is implemented by solids that can answer point membership
// queries directly, without tessellation.
type Sampler interface {
	Inside(x, y, z float64) bool
}

// Kernel is the abstract geometry kernel interface.
//
// Every primitive is centered on the origin. Cylinders and extrusions run
// along Z, spanning [-height/2, height/2]. Angles are in degrees.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid
	// Extrude sweeps a closed counter-clockwise outline along Z.
	Extrude(outline []r2.Vec, height float64) (Solid, error)

	// Boolean operations. Union of zero solids is nil.
	Union(solids ...Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}

// Release frees s if its backend requires explicit lifetimes.
func Release(s Solid) {
	if r, ok := s.(Releaser); ok {
		r.Release()
	}
}

// Overlaps reports whether the bounding boxes of a and b intersect.
func Overlaps(a, b Solid) bool {
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	for i := 0; i < 3; i++ {
		if amax[i] < bmin[i] || bmax[i] < amin[i] {
			return false
		}
	}
	return true
}
