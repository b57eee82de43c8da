package board

import (
	"fmt"

	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/geom"
	"github.com/chazu/boardsolid/pkg/kernel"
	"github.com/chazu/boardsolid/pkg/primitive"
	"gonum.org/v1/gonum/spatial/r2"
)

// shellSpec is the resolved source of the board shell: a panel, a board
// outline or a board rectangle.
type shellSpec struct {
	key       string
	outline   []r2.Vec // counter-clockwise, absolute; nil for a rectangle
	center    r2.Vec
	width     float64
	height    float64
	thickness float64
	material  circuit.Material
}

// resolveShell picks the authoritative shell definition. A panel wins over
// any board; boards inside it only lend their thickness and material.
func resolveShell(set circuit.Set) (shellSpec, error) {
	if len(set.Boards) == 0 && len(set.Panels) == 0 {
		return shellSpec{}, ErrNoBoard
	}
	if errs := circuit.Validate(set); len(errs) > 0 {
		r := circuit.ValidationResult{}
		for _, e := range errs {
			if e.Severity == circuit.SeverityError {
				r.Errors = append(r.Errors, e)
			}
		}
		if !r.OK() {
			return shellSpec{}, fmt.Errorf("%w: %w", ErrInvalidBoard, r.Err())
		}
	}

	first, hasBoard := set.Board()
	if p, ok := set.Panel(); ok {
		spec := shellSpec{
			key:       p.Key(),
			center:    p.Center.Vec(),
			width:     p.Width,
			height:    p.Height,
			thickness: p.Thickness,
			material:  p.Material,
		}
		if spec.thickness == 0 {
			spec.thickness = circuit.DefaultThickness
			if hasBoard {
				spec.thickness = first.EffectiveThickness()
			}
		}
		if spec.material == "" && hasBoard {
			spec.material = first.Material
		}
		return spec, nil
	}

	spec := shellSpec{
		key:       first.Key(),
		center:    first.Center.Vec(),
		width:     first.Width,
		height:    first.Height,
		thickness: first.EffectiveThickness(),
		material:  first.Material,
	}
	if len(first.Outline) > 0 {
		pts := geom.Dedupe(circuit.Vecs(first.Outline))
		if len(pts) < 3 {
			return shellSpec{}, fmt.Errorf("%w: outline has %d distinct points", ErrInvalidBoard, len(pts))
		}
		spec.outline = geom.EnsureCCW(pts)
	}
	return spec, nil
}

// buildShell returns the board solid and its clip volume. The clip volume
// is the same profile grown laterally by ClipMargin and vertically by
// ClipZMargin on each side.
func buildShell(k kernel.Kernel, spec shellSpec, o Options) (shell, clip kernel.Solid, err error) {
	t := spec.thickness
	clipT := t + 2*o.ClipZMargin
	if spec.outline != nil {
		shell, err = primitive.Polygon(k, spec.outline, t)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: outline: %w", ErrInvalidBoard, err)
		}
		clip, err = primitive.Polygon(k, geom.Offset(spec.outline, o.ClipMargin), clipT)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: clip outline: %w", ErrInvalidBoard, err)
		}
		return shell, clip, nil
	}

	shell, err = primitive.Cuboid(k, spec.width, spec.height, t)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}
	clip, err = primitive.Cuboid(k, spec.width+2*o.ClipMargin, spec.height+2*o.ClipMargin, clipT)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}
	shell = primitive.Place(k, shell, spec.center.X, spec.center.Y, 0, 0)
	clip = primitive.Place(k, clip, spec.center.X, spec.center.Y, 0, 0)
	return shell, clip, nil
}

// initialize builds the shell and clip volume into a fresh accumulator.
func (e *Env) initialize(k kernel.Kernel, acc Accumulator) (Accumulator, error) {
	spec, err := resolveShell(e.Input)
	if err != nil {
		return acc, err
	}
	shell, clip, err := buildShell(k, spec, e.Options)
	if err != nil {
		return acc, err
	}
	acc.BoardKey = spec.key
	acc.Board = shell
	acc.Clip = clip
	acc.Thickness = spec.thickness
	acc.Material = spec.material
	return acc, nil
}
