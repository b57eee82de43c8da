package kernel

import "gonum.org/v1/gonum/spatial/r2"

// Arena owns solids for the duration of one unit of work. Every solid
// produced through Arena.Kernel is tracked; solids that outlive the unit
// are removed with Keep, and solids superseded by newer versions are
// handed back with Retire. Release frees everything still owned.
//
// The usual shape is:
//
//	a := kernel.NewArena()
//	defer a.Release()
//	k := a.Kernel(backend)
//	... build with k, returning early on error ...
//	a.Keep(result)
//	a.Retire(previous)
type Arena struct {
	owned map[Solid]struct{}
	order []Solid
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{owned: make(map[Solid]struct{})}
}

// Track takes ownership of s and returns it. Nil solids are ignored.
func (a *Arena) Track(s Solid) Solid {
	if s == nil {
		return nil
	}
	if _, ok := a.owned[s]; !ok {
		a.owned[s] = struct{}{}
		a.order = append(a.order, s)
	}
	return s
}

// Keep gives up ownership of the given solids.
func (a *Arena) Keep(solids ...Solid) {
	for _, s := range solids {
		if s != nil {
			delete(a.owned, s)
		}
	}
}

// Retire hands superseded solids to the arena so they are freed on Release.
func (a *Arena) Retire(solids ...Solid) {
	for _, s := range solids {
		a.Track(s)
	}
}

// Len returns the number of solids currently owned.
func (a *Arena) Len() int {
	return len(a.owned)
}

// Release frees every owned solid in tracking order and empties the arena.
func (a *Arena) Release() {
	for _, s := range a.order {
		if _, ok := a.owned[s]; ok {
			Release(s)
		}
	}
	a.owned = make(map[Solid]struct{})
	a.order = nil
}

// Kernel returns k wrapped so that every solid it produces is tracked.
func (a *Arena) Kernel(k Kernel) Kernel {
	return &trackingKernel{k: k, a: a}
}

type trackingKernel struct {
	k Kernel
	a *Arena
}

var _ Kernel = (*trackingKernel)(nil)

func (t *trackingKernel) Box(x, y, z float64) Solid {
	return t.a.Track(t.k.Box(x, y, z))
}

func (t *trackingKernel) Cylinder(height, radius float64, segments int) Solid {
	return t.a.Track(t.k.Cylinder(height, radius, segments))
}

func (t *trackingKernel) Extrude(outline []r2.Vec, height float64) (Solid, error) {
	s, err := t.k.Extrude(outline, height)
	if err != nil {
		return nil, err
	}
	return t.a.Track(s), nil
}

func (t *trackingKernel) Union(solids ...Solid) Solid {
	u := t.k.Union(solids...)
	// A single-operand union may hand back its input.
	for _, s := range solids {
		if s == u {
			return u
		}
	}
	return t.a.Track(u)
}

func (t *trackingKernel) Difference(a, b Solid) Solid {
	return t.a.Track(t.k.Difference(a, b))
}

func (t *trackingKernel) Intersection(a, b Solid) Solid {
	return t.a.Track(t.k.Intersection(a, b))
}

func (t *trackingKernel) Translate(s Solid, x, y, z float64) Solid {
	return t.a.Track(t.k.Translate(s, x, y, z))
}

func (t *trackingKernel) Rotate(s Solid, x, y, z float64) Solid {
	return t.a.Track(t.k.Rotate(s, x, y, z))
}

func (t *trackingKernel) ToMesh(s Solid) (*Mesh, error) {
	return t.k.ToMesh(s)
}
