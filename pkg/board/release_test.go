package board

import (
	"testing"

	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/kernel"
	"github.com/chazu/boardsolid/pkg/kernel/sdfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// countingKernel wraps a backend and tracks which of its solids are still
// alive, the way a backend with explicit lifetimes would.
type countingKernel struct {
	k    kernel.Kernel
	live map[*countedSolid]bool
}

func newCountingKernel() *countingKernel {
	return &countingKernel{k: sdfx.New(), live: make(map[*countedSolid]bool)}
}

type countedSolid struct {
	s kernel.Solid
	c *countingKernel
}

func (s *countedSolid) BoundingBox() (min, max [3]float64) { return s.s.BoundingBox() }

func (s *countedSolid) Inside(x, y, z float64) bool {
	return s.s.(kernel.Sampler).Inside(x, y, z)
}

func (s *countedSolid) Release() { delete(s.c.live, s) }

func (c *countingKernel) wrap(s kernel.Solid) kernel.Solid {
	if s == nil {
		return nil
	}
	w := &countedSolid{s: s, c: c}
	c.live[w] = true
	return w
}

func unwrapCounted(s kernel.Solid) kernel.Solid {
	if w, ok := s.(*countedSolid); ok {
		return w.s
	}
	return s
}

func (c *countingKernel) Box(x, y, z float64) kernel.Solid { return c.wrap(c.k.Box(x, y, z)) }

func (c *countingKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	return c.wrap(c.k.Cylinder(height, radius, segments))
}

func (c *countingKernel) Extrude(outline []r2.Vec, height float64) (kernel.Solid, error) {
	s, err := c.k.Extrude(outline, height)
	if err != nil {
		return nil, err
	}
	return c.wrap(s), nil
}

func (c *countingKernel) Union(solids ...kernel.Solid) kernel.Solid {
	if len(solids) == 1 {
		return solids[0]
	}
	in := make([]kernel.Solid, len(solids))
	for i, s := range solids {
		in[i] = unwrapCounted(s)
	}
	return c.wrap(c.k.Union(in...))
}

func (c *countingKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return c.wrap(c.k.Difference(unwrapCounted(a), unwrapCounted(b)))
}

func (c *countingKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return c.wrap(c.k.Intersection(unwrapCounted(a), unwrapCounted(b)))
}

func (c *countingKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return c.wrap(c.k.Translate(unwrapCounted(s), x, y, z))
}

func (c *countingKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return c.wrap(c.k.Rotate(unwrapCounted(s), x, y, z))
}

func (c *countingKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	return c.k.ToMesh(unwrapCounted(s))
}

func TestBuildReleasesIntermediates(t *testing.T) {
	k := newCountingKernel()
	elements := mixedBoard()
	res, err := Build(k, elements[:len(elements)-1], quietOptions())
	require.NoError(t, err)

	// Only the outputs survive: no clip volume, pour mask or cutout tools.
	assert.Len(t, k.live, len(res.Solids))
	for _, s := range res.Solids {
		assert.True(t, k.live[s.Solid.(*countedSolid)], "%s %s released early", s.Kind, s.Key)
	}

	res.Release()
	assert.Empty(t, k.live)
}

func TestFailedBuildReleasesEverything(t *testing.T) {
	k := newCountingKernel()
	_, err := Build(k, mixedBoard(), quietOptions())
	var u *UnsupportedShapeError
	require.ErrorAs(t, err, &u)
	assert.Empty(t, k.live)
}

func TestBuilderReleasesAsItGoes(t *testing.T) {
	k := newCountingKernel()
	elements := mixedBoard()
	b := NewBuilder(k, elements[:len(elements)-1], quietOptions())
	for {
		done, err := b.Step(1)
		require.NoError(t, err)
		// Nothing beyond what the accumulator references is alive.
		assert.Len(t, k.live, len(b.acc.solids()), "after %s", b.State())
		if done {
			break
		}
	}
	b.Close()
	assert.Empty(t, k.live)
}

func TestBuilderFailureReleases(t *testing.T) {
	k := newCountingKernel()
	b := NewBuilder(k, []circuit.Element{
		circuit.Board{Width: 10, Height: 10},
		circuit.Pad{Shape: circuit.ShapeCircle, Radius: 1, Layer: circuit.LayerTop},
		circuit.Cutout{Shape: "hexagon"},
	}, quietOptions())

	_, err := b.Step(2)
	require.NoError(t, err)
	assert.NotEmpty(t, k.live)

	_, err = b.Step(10)
	require.Error(t, err)
	assert.Empty(t, k.live)
}
