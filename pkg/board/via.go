package board

import (
	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/kernel"
	"github.com/chazu/boardsolid/pkg/primitive"
)

func checkVia(v circuit.Via) error {
	if !(v.HoleDiameter > 0) {
		return degenerate("via hole diameter %.4f", v.HoleDiameter)
	}
	if !(v.OuterDiameter > v.HoleDiameter) {
		return degenerate("via outer diameter %.4f does not exceed hole diameter %.4f", v.OuterDiameter, v.HoleDiameter)
	}
	return nil
}

// viaDrill builds the bore of a via in board coordinates.
func (e *Env) viaDrill(k kernel.Kernel, v circuit.Via, t float64) (kernel.Solid, error) {
	if err := checkVia(v); err != nil {
		return nil, err
	}
	d, err := primitive.Cylinder(k, v.HoleDiameter, e.Options.cutDepth(t), e.Options.InnerSegments)
	if err != nil {
		return nil, err
	}
	return primitive.Place(k, d, v.X, v.Y, 0, 0), nil
}

// viaCopper builds a via's barrel and end rings, minus its bore, centered
// on the origin.
func (e *Env) viaCopper(k kernel.Kernel, v circuit.Via, t float64) (kernel.Solid, error) {
	segs := e.Options.OuterSegments
	barrel, err := primitive.Cylinder(k, e.barrelSize(v.HoleDiameter, v.OuterDiameter), e.Options.copperSpan(t), segs)
	if err != nil {
		return nil, err
	}
	top, bottom, err := e.rings(k, func(d float64) (kernel.Solid, error) {
		return primitive.Annulus(k, v.OuterDiameter, v.HoleDiameter, d, segs)
	}, t)
	if err != nil {
		return nil, err
	}
	bore, err := primitive.Cylinder(k, v.HoleDiameter, e.Options.cutDepth(t), e.Options.InnerSegments)
	if err != nil {
		return nil, err
	}
	return k.Difference(k.Union(barrel, top, bottom), bore), nil
}

// addVia drills a via through the board and existing copper and appends
// its clipped copper. A via whose outer diameter does not exceed its hole
// is rejected before any geometry is built.
func (e *Env) addVia(k kernel.Kernel, acc Accumulator, v circuit.Via) (Accumulator, error) {
	drill, err := e.viaDrill(k, v, acc.Thickness)
	if err != nil {
		return acc, err
	}
	copper, err := e.viaCopper(k, v, acc.Thickness)
	if err != nil {
		return acc, err
	}
	copper = primitive.Place(k, copper, v.X, v.Y, 0, 0)
	acc = drillThrough(k, acc, drill)
	acc.Vias = append(acc.Vias, Part{Key: v.Key(), Solid: k.Intersection(copper, acc.Clip)})
	return acc, nil
}
