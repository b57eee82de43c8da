package board

import (
	"errors"
	"math"

	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/geom"
	"github.com/chazu/boardsolid/pkg/kernel"
	"github.com/chazu/boardsolid/pkg/primitive"
)

// holeGeometry is what a hole contributes: a drill subtracted from the
// board and other copper, and for plated holes a copper solid. noCopper
// says why a plated hole that should carry copper has none.
type holeGeometry struct {
	drill    kernel.Solid
	copper   kernel.Solid
	noCopper error
}

// slot builds an elongated bore or pad. Ovals are elliptical; every other
// elongated shape is a pill.
func (e *Env) slot(k kernel.Kernel, shape circuit.Shape, w, h, depth float64, segments int) (kernel.Solid, error) {
	if shape == circuit.ShapeOval {
		return primitive.Oval(k, w, h, depth, segments)
	}
	return primitive.Pill(k, w, h, depth, segments)
}

// bore builds a centered bore of the given shape: a cylinder of diameter d
// for circles, a slot of w by h otherwise. grow is added to every
// dimension.
func (e *Env) bore(k kernel.Kernel, shape circuit.Shape, d, w, h, grow, depth float64) (kernel.Solid, error) {
	switch shape {
	case circuit.ShapeCircle, "":
		return primitive.Cylinder(k, d+grow, depth, e.Options.InnerSegments)
	case circuit.ShapePill, circuit.ShapeOval, circuit.ShapeRotatedPill:
		return e.slot(k, shape, w+grow, h+grow, depth, e.Options.InnerSegments)
	default:
		return nil, errUnknownBore
	}
}

var errUnknownBore = degenerate("unknown bore shape")

// barrelSize limits a plated barrel to the pad around it.
func (e *Env) barrelSize(hole, outer float64) float64 {
	return math.Min(outer, hole+2*e.Options.PlatingThickness)
}

// rings returns the top and bottom copper layers of a centered pad profile.
func (e *Env) rings(k kernel.Kernel, build func(depth float64) (kernel.Solid, error), t float64) (top, bottom kernel.Solid, err error) {
	ct := e.Options.CopperThickness
	if top, err = build(ct); err != nil {
		return nil, nil, err
	}
	if bottom, err = build(ct); err != nil {
		return nil, nil, err
	}
	top = k.Translate(top, 0, 0, e.Options.copperZ(t, true))
	bottom = k.Translate(bottom, 0, 0, e.Options.copperZ(t, false))
	return top, bottom, nil
}

// platedHole builds the drill and, when withCopper is set, the clipped
// copper of a plated hole in board coordinates. Copper is nil when the
// annular ring has no width.
func (e *Env) platedHole(k kernel.Kernel, h circuit.PlatedHole, t float64, withCopper bool) (holeGeometry, error) {
	key := h.Key()
	depth := e.Options.cutDepth(t)
	span := e.Options.copperSpan(t)
	var g holeGeometry

	switch h.Shape {
	case circuit.ShapeCircle:
		if !(h.HoleDiameter > 0) {
			return g, degenerate("hole diameter %.4f", h.HoleDiameter)
		}
		drill, err := primitive.Cylinder(k, h.HoleDiameter, depth, e.Options.InnerSegments)
		if err != nil {
			return g, err
		}
		g.drill = drill
		if h.OuterDiameter < h.HoleDiameter {
			g.noCopper = degenerate("no copper: outer diameter %.4f below hole diameter %.4f", h.OuterDiameter, h.HoleDiameter)
		} else if withCopper && h.OuterDiameter-h.HoleDiameter > geom.Eps {
			segs := e.Options.OuterSegments
			barrel, err := primitive.Cylinder(k, e.barrelSize(h.HoleDiameter, h.OuterDiameter), span, segs)
			if err != nil {
				return g, err
			}
			top, bottom, err := e.rings(k, func(d float64) (kernel.Solid, error) {
				return primitive.Cylinder(k, h.OuterDiameter, d, segs)
			}, t)
			if err != nil {
				return g, err
			}
			g.copper = k.Difference(k.Union(barrel, top, bottom), drill)
		}

	case circuit.ShapePill, circuit.ShapeOval, circuit.ShapeRotatedPill:
		if !(h.HoleWidth > 0) || !(h.HoleHeight > 0) {
			return g, degenerate("hole size %.4f x %.4f", h.HoleWidth, h.HoleHeight)
		}
		drill, err := e.slot(k, h.Shape, h.HoleWidth, h.HoleHeight, depth, e.Options.InnerSegments)
		if err != nil {
			return g, err
		}
		g.drill = drill
		ringW, ringH := h.OuterWidth-h.HoleWidth, h.OuterHeight-h.HoleHeight
		if ringW < 0 || ringH < 0 {
			g.noCopper = degenerate("no copper: outer size %.4f x %.4f below hole size %.4f x %.4f",
				h.OuterWidth, h.OuterHeight, h.HoleWidth, h.HoleHeight)
		} else if withCopper && math.Min(ringW, ringH) > geom.Eps {
			segs := e.Options.OuterSegments
			barrel, err := e.slot(k, h.Shape,
				e.barrelSize(h.HoleWidth, h.OuterWidth), e.barrelSize(h.HoleHeight, h.OuterHeight), span, segs)
			if err != nil {
				return g, err
			}
			top, bottom, err := e.rings(k, func(d float64) (kernel.Solid, error) {
				return e.slot(k, h.Shape, h.OuterWidth, h.OuterHeight, d, segs)
			}, t)
			if err != nil {
				return g, err
			}
			g.copper = k.Difference(k.Union(barrel, top, bottom), drill)
		}

	case circuit.ShapeCircularHoleWithRectPad, circuit.ShapePillHoleWithRectPad, circuit.ShapeRotatedPillHoleWithRectPad:
		if !(h.RectPadWidth > 0) || !(h.RectPadHeight > 0) {
			return g, degenerate("rect pad size %.4f x %.4f", h.RectPadWidth, h.RectPadHeight)
		}
		boreShape := circuit.ShapeCircle
		if h.Shape != circuit.ShapeCircularHoleWithRectPad {
			boreShape = circuit.ShapePill
		}
		// The bore turns about its own center, then shifts by the offset.
		offsetBore := func(grow, d float64) (kernel.Solid, error) {
			b, err := e.bore(k, boreShape, h.HoleDiameter, h.HoleWidth, h.HoleHeight, grow, d)
			if err != nil {
				return nil, err
			}
			return k.Translate(k.Rotate(b, 0, 0, h.HoleRotation), h.HoleOffsetX, h.HoleOffsetY, 0), nil
		}
		drill, err := offsetBore(0, depth)
		if err != nil {
			return g, err
		}
		g.drill = drill
		if withCopper {
			// Pad-to-pad fill through the board plus both surface pads.
			fill, err := primitive.RoundedRect(k, h.RectPadWidth, h.RectPadHeight, h.RectBorderRadius, t)
			if err != nil {
				return g, err
			}
			top, bottom, err := e.rings(k, func(d float64) (kernel.Solid, error) {
				return primitive.RoundedRect(k, h.RectPadWidth, h.RectPadHeight, h.RectBorderRadius, d)
			}, t)
			if err != nil {
				return g, err
			}
			pad := k.Rotate(k.Union(fill, top, bottom), 0, 0, h.RectRotation)
			barrel, err := offsetBore(2*e.Options.PlatingThickness, span)
			if err != nil {
				return g, err
			}
			g.copper = k.Difference(k.Union(pad, barrel), drill)
		}

	case circuit.ShapeHoleWithPolygonPad:
		outline := circuit.Vecs(h.PadOutline)
		margin := e.Options.PolygonPadHoleMargin
		boardHole, err := e.bore(k, h.HoleShape, h.HoleDiameter, h.HoleWidth, h.HoleHeight, 2*margin, depth)
		if errors.Is(err, errUnknownBore) {
			return g, unsupported(circuit.TypePlatedHole, key, h.HoleShape)
		}
		if err != nil {
			return g, err
		}
		g.drill = k.Translate(boardHole, h.HoleOffsetX, h.HoleOffsetY, 0)
		if withCopper {
			pad, err := primitive.Polygon(k, outline, span)
			if err != nil {
				return g, err
			}
			shrink := -2 * margin
			if h.HoleShape == circuit.ShapeCircle || h.HoleShape == "" {
				shrink = math.Max(shrink, -h.HoleDiameter/2)
			} else {
				shrink = math.Max(shrink, -math.Min(h.HoleWidth, h.HoleHeight)/2)
			}
			copperHole, err := e.bore(k, h.HoleShape, h.HoleDiameter, h.HoleWidth, h.HoleHeight, shrink, depth)
			if err != nil {
				return g, err
			}
			copperHole = k.Translate(copperHole, h.HoleOffsetX, h.HoleOffsetY, 0)
			g.copper = k.Difference(pad, copperHole)
		}

	default:
		return g, unsupported(circuit.TypePlatedHole, key, h.Shape)
	}

	g.drill = primitive.Place(k, g.drill, h.X, h.Y, 0, h.Rotation)
	if g.copper != nil {
		g.copper = primitive.Place(k, g.copper, h.X, h.Y, 0, h.Rotation)
	}
	return g, nil
}

// holeDrill builds the drill of a non-plated hole in board coordinates.
func (e *Env) holeDrill(k kernel.Kernel, h circuit.Hole, t float64) (kernel.Solid, error) {
	depth := e.Options.cutDepth(t)
	var d kernel.Solid
	var err error
	switch h.Shape {
	case circuit.ShapeCircle:
		d, err = primitive.Cylinder(k, h.HoleDiameter, depth, e.Options.InnerSegments)
	case circuit.ShapePill, circuit.ShapeOval, circuit.ShapeRotatedPill:
		d, err = e.slot(k, h.Shape, h.HoleWidth, h.HoleHeight, depth, e.Options.InnerSegments)
	default:
		return nil, unsupported(circuit.TypeHole, h.Key(), h.Shape)
	}
	if err != nil {
		return nil, err
	}
	return primitive.Place(k, d, h.X, h.Y, 0, h.Rotation), nil
}

// drillThrough subtracts a drill from the board, from every pad, and from
// every plated-hole copper it overlaps.
func drillThrough(k kernel.Kernel, acc Accumulator, drill kernel.Solid) Accumulator {
	acc.Board = k.Difference(acc.Board, drill)
	for i, p := range acc.Pads {
		if kernel.Overlaps(p.Solid, drill) {
			acc.Pads[i].Solid = k.Difference(p.Solid, drill)
		}
	}
	for i, p := range acc.PlatedCopper {
		if kernel.Overlaps(p.Solid, drill) {
			acc.PlatedCopper[i].Solid = k.Difference(p.Solid, drill)
		}
	}
	return acc
}

// addPlatedHole drills one plated hole and appends its copper. A hole
// whose copper cannot be built is still drilled and reported as partial.
func (e *Env) addPlatedHole(k kernel.Kernel, acc Accumulator, h circuit.PlatedHole) (Accumulator, error) {
	g, err := e.platedHole(k, h, acc.Thickness, true)
	if err != nil {
		return acc, err
	}
	acc = drillThrough(k, acc, g.drill)
	if g.copper != nil {
		acc.PlatedCopper = append(acc.PlatedCopper, Part{Key: h.Key(), Solid: k.Intersection(g.copper, acc.Clip)})
	}
	if g.noCopper != nil {
		return acc, partial(g.noCopper)
	}
	return acc, nil
}

// addHole drills one non-plated hole.
func (e *Env) addHole(k kernel.Kernel, acc Accumulator, h circuit.Hole) (Accumulator, error) {
	d, err := e.holeDrill(k, h, acc.Thickness)
	if err != nil {
		return acc, err
	}
	return drillThrough(k, acc, d), nil
}
