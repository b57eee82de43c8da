package board

import (
	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/kernel"
	"github.com/chazu/boardsolid/pkg/primitive"
)

// layerZ returns the copper z center for a layer.
func (e *Env) layerZ(layer circuit.Layer, t float64) (float64, error) {
	switch layer {
	case circuit.LayerTop:
		return e.Options.copperZ(t, true), nil
	case circuit.LayerBottom:
		return e.Options.copperZ(t, false), nil
	default:
		return 0, degenerate("layer %q is not top or bottom", layer)
	}
}

// padSolid builds an SMT pad at its copper height, clipped to the board.
func (e *Env) padSolid(k kernel.Kernel, acc Accumulator, p circuit.Pad) (kernel.Solid, error) {
	ct := e.Options.CopperThickness
	var s kernel.Solid
	var err error
	switch p.Shape {
	case circuit.ShapeRect, circuit.ShapeRotatedRect:
		s, err = primitive.RoundedRect(k, p.Width, p.Height, p.CornerRadius, ct)
	case circuit.ShapeCircle:
		s, err = primitive.Cylinder(k, 2*p.Radius, ct, e.Options.OuterSegments)
	case circuit.ShapePolygon:
		s, err = primitive.Polygon(k, circuit.Vecs(p.Points), ct)
	default:
		return nil, unsupported(circuit.TypePad, p.Key(), p.Shape)
	}
	if err != nil {
		return nil, err
	}
	z, err := e.layerZ(p.Layer, acc.Thickness)
	if err != nil {
		return nil, err
	}
	if p.Shape == circuit.ShapePolygon {
		// Points are already absolute.
		s = primitive.Place(k, s, 0, 0, z, 0)
	} else {
		s = primitive.Place(k, s, p.X, p.Y, z, p.Rotation)
	}
	return k.Intersection(s, acc.Clip), nil
}

// addPad appends one pad.
func (e *Env) addPad(k kernel.Kernel, acc Accumulator, p circuit.Pad) (Accumulator, error) {
	s, err := e.padSolid(k, acc, p)
	if err != nil {
		return acc, err
	}
	acc.Pads = append(acc.Pads, Part{Key: p.Key(), Solid: s})
	return acc, nil
}
