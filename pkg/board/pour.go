package board

import (
	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/geom"
	"github.com/chazu/boardsolid/pkg/kernel"
	"github.com/chazu/boardsolid/pkg/primitive"
)

// pourSolid builds a copper pour at its layer height, clipped to the board.
func (e *Env) pourSolid(k kernel.Kernel, acc Accumulator, p circuit.CopperPour) (kernel.Solid, error) {
	ct := e.Options.CopperThickness
	var s kernel.Solid
	var err error
	placed := false
	switch p.Shape {
	case circuit.ShapeRect:
		s, err = primitive.Cuboid(k, p.Width, p.Height, ct)
		placed = true
	case circuit.ShapePolygon:
		s, err = primitive.Polygon(k, circuit.Vecs(p.Points), ct)
	case circuit.ShapeBrep:
		if p.Brep == nil {
			return nil, degenerate("brep pour without brep_shape")
		}
		inner := make([][]geom.Vertex, len(p.Brep.InnerRings))
		for i, r := range p.Brep.InnerRings {
			inner[i] = r.Vertices
		}
		s, err = primitive.Brep(k, p.Brep.OuterRing.Vertices, inner, ct, e.Options.ArcResolution)
	default:
		return nil, unsupported(circuit.TypeCopperPour, p.Key(), p.Shape)
	}
	if err != nil {
		return nil, err
	}
	z, err := e.layerZ(p.Layer, acc.Thickness)
	if err != nil {
		return nil, err
	}
	if placed {
		s = primitive.Place(k, s, p.Center.X, p.Center.Y, z, p.Rotation)
	} else {
		s = primitive.Place(k, s, 0, 0, z, 0)
	}
	return k.Intersection(s, acc.Clip), nil
}

// addPour appends one copper pour, cut at every drill when configured.
func (e *Env) addPour(k kernel.Kernel, acc Accumulator, p circuit.CopperPour) (Accumulator, error) {
	s, err := e.pourSolid(k, acc, p)
	if err != nil {
		return acc, err
	}
	if e.Options.CutPoursAtHoles {
		if !acc.pourMaskDone {
			acc.PourMask = e.drillUnion(k, acc.Thickness)
			acc.pourMaskDone = true
		}
		if acc.PourMask != nil && kernel.Overlaps(s, acc.PourMask) {
			s = k.Difference(s, acc.PourMask)
		}
	}
	acc.Pours = append(acc.Pours, PourPart{Part: Part{Key: p.Key(), Solid: s}, Masked: p.CoveredWithSolderMask})
	return acc, nil
}

// drillUnion unions the board drills of every plated hole, hole and via in
// the input. Elements that cannot be drilled are left out here and
// reported when their own phase runs.
func (e *Env) drillUnion(k kernel.Kernel, t float64) kernel.Solid {
	var drills []kernel.Solid
	for _, h := range e.Input.PlatedHoles {
		if g, err := e.platedHole(k, h, t, false); err == nil {
			drills = append(drills, g.drill)
		}
	}
	for _, h := range e.Input.Holes {
		if d, err := e.holeDrill(k, h, t); err == nil {
			drills = append(drills, d)
		}
	}
	for _, v := range e.Input.Vias {
		if d, err := e.viaDrill(k, v, t); err == nil {
			drills = append(drills, d)
		}
	}
	return k.Union(drills...)
}
