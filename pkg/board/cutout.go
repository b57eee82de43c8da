package board

import (
	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/kernel"
	"github.com/chazu/boardsolid/pkg/primitive"
)

// cutoutTool builds the prism removed by a cutout. It is taller than the
// board so the cut goes all the way through.
func (e *Env) cutoutTool(k kernel.Kernel, c circuit.Cutout, t float64) (kernel.Solid, error) {
	depth := e.Options.cutDepth(t)
	switch c.Shape {
	case circuit.ShapeRect:
		s, err := primitive.RoundedRect(k, c.Width, c.Height, c.CornerRadius, depth)
		if err != nil {
			return nil, err
		}
		return primitive.Place(k, s, c.Center.X, c.Center.Y, 0, c.Rotation), nil
	case circuit.ShapeCircle:
		s, err := primitive.Cylinder(k, 2*c.Radius, depth, e.Options.OuterSegments)
		if err != nil {
			return nil, err
		}
		return primitive.Place(k, s, c.Center.X, c.Center.Y, 0, 0), nil
	case circuit.ShapePolygon:
		return primitive.Polygon(k, circuit.Vecs(c.Points), depth)
	default:
		return nil, unsupported(circuit.TypeCutout, c.Key(), c.Shape)
	}
}

// addCutout queues one cutout tool. The board is not touched until
// carveCutouts runs at the end of the phase.
func (e *Env) addCutout(k kernel.Kernel, acc Accumulator, c circuit.Cutout) (Accumulator, error) {
	tool, err := e.cutoutTool(k, c, acc.Thickness)
	if err != nil {
		return acc, err
	}
	acc.CutoutTools = append(acc.CutoutTools, tool)
	return acc, nil
}

// carveCutouts subtracts the union of all queued tools from the board in a
// single boolean and clears the queue.
func carveCutouts(k kernel.Kernel, acc Accumulator) Accumulator {
	if len(acc.CutoutTools) == 0 {
		return acc
	}
	acc.Board = k.Difference(acc.Board, k.Union(acc.CutoutTools...))
	acc.CutoutTools = nil
	return acc
}
