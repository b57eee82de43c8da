// Package primitive builds the parametric solids the board pipeline is made
// of: cuboids, cylinders, rounded rectangles, pills, ovals, extruded
// polygons, ring-based outlines and annuli.
//
// Every builder returns a solid centered on the origin with its depth along
// Z. Callers position results with Place.
package primitive

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/boardsolid/pkg/geom"
	"github.com/chazu/boardsolid/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r2"
)

// Segment counts for round features. Outward-facing copper gets the fine
// count; cuts whose walls are hidden inside the board use the coarse one.
const (
	OuterSegments  = 64
	InnerSegments  = 16
	CornerSegments = 8
)

// ErrTooFewPoints is returned for polygon outlines with fewer than three
// distinct points.
var ErrTooFewPoints = kernel.ErrTooFewPoints

// ErrBadDimension is returned when a size parameter is zero, negative or
// not a number.
var ErrBadDimension = errors.New("primitive: dimensions must be positive")

func positive(vals ...float64) bool {
	for _, v := range vals {
		if !(v > 0) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func badDimension(shape string, vals ...float64) error {
	return fmt.Errorf("%s %v: %w", shape, vals, ErrBadDimension)
}

// Place rotates s about Z by rotation degrees, then moves it to (x, y, z).
// Zero rotations and offsets are skipped.
func Place(k kernel.Kernel, s kernel.Solid, x, y, z, rotation float64) kernel.Solid {
	if rotation != 0 {
		s = k.Rotate(s, 0, 0, rotation)
	}
	if x != 0 || y != 0 || z != 0 {
		s = k.Translate(s, x, y, z)
	}
	return s
}

// Cuboid returns a w by h by depth box.
func Cuboid(k kernel.Kernel, w, h, depth float64) (kernel.Solid, error) {
	if !positive(w, h, depth) {
		return nil, badDimension("cuboid", w, h, depth)
	}
	return k.Box(w, h, depth), nil
}

// Cylinder returns a cylinder of diameter d.
func Cylinder(k kernel.Kernel, d, depth float64, segments int) (kernel.Solid, error) {
	if !positive(d, depth) {
		return nil, badDimension("cylinder", d, depth)
	}
	return k.Cylinder(depth, d/2, segments), nil
}

// RoundedRect returns a w by h prism whose vertical edges are rounded to
// geom.ClampRadius(r, w, h). It is a plain cuboid when that radius is not
// positive.
func RoundedRect(k kernel.Kernel, w, h, r, depth float64) (kernel.Solid, error) {
	if !positive(w, h, depth) {
		return nil, badDimension("rounded rect", w, h, depth)
	}
	if geom.ClampRadius(r, w, h) <= 0 {
		return k.Box(w, h, depth), nil
	}
	return k.Extrude(geom.RoundedRect(w, h, r, CornerSegments), depth)
}

// Pill returns a stadium-shaped prism: a rectangle joined to two end-cap
// cylinders along its longer axis. It collapses to a single cylinder when w
// and h are equal.
func Pill(k kernel.Kernel, w, h, depth float64, segments int) (kernel.Solid, error) {
	if !positive(w, h, depth) {
		return nil, badDimension("pill", w, h, depth)
	}
	if math.Abs(w-h) < geom.Eps {
		return k.Cylinder(depth, w/2, segments), nil
	}
	r := math.Min(w, h) / 2
	straight := math.Abs(w - h)
	var body, capA, capB kernel.Solid
	if w > h {
		body = k.Box(straight, h, depth)
		capA = k.Translate(k.Cylinder(depth, r, segments), -straight/2, 0, 0)
		capB = k.Translate(k.Cylinder(depth, r, segments), straight/2, 0, 0)
	} else {
		body = k.Box(w, straight, depth)
		capA = k.Translate(k.Cylinder(depth, r, segments), 0, -straight/2, 0)
		capB = k.Translate(k.Cylinder(depth, r, segments), 0, straight/2, 0)
	}
	return k.Union(body, capA, capB), nil
}

// Oval returns an elliptical prism with axis lengths w and h. It collapses
// to a cylinder when they are equal.
func Oval(k kernel.Kernel, w, h, depth float64, segments int) (kernel.Solid, error) {
	if !positive(w, h, depth) {
		return nil, badDimension("oval", w, h, depth)
	}
	if math.Abs(w-h) < geom.Eps {
		return k.Cylinder(depth, w/2, segments), nil
	}
	return k.Extrude(geom.Ellipse(w, h, segments), depth)
}

// Polygon extrudes an outline given in either winding. Outlines with fewer
// than three distinct points yield ErrTooFewPoints and no solid.
func Polygon(k kernel.Kernel, pts []r2.Vec, depth float64) (kernel.Solid, error) {
	pts = geom.Dedupe(pts)
	if len(pts) < 3 {
		return nil, ErrTooFewPoints
	}
	if !positive(depth) {
		return nil, badDimension("polygon", depth)
	}
	if math.Abs(geom.SignedArea(pts)) < geom.Eps {
		return nil, fmt.Errorf("polygon has no area: %w", ErrTooFewPoints)
	}
	return k.Extrude(geom.EnsureCCW(pts), depth)
}

// Brep extrudes a ring-based outline: the expanded outer ring minus every
// expanded inner ring. Inner rings that expand to fewer than three points
// are ignored. resolution is the arc resolution passed to geom.ExpandRing.
func Brep(k kernel.Kernel, outer []geom.Vertex, inner [][]geom.Vertex, depth, resolution float64) (kernel.Solid, error) {
	body, err := Polygon(k, geom.ExpandRing(outer, resolution), depth)
	if err != nil {
		return nil, fmt.Errorf("outer ring: %w", err)
	}
	var holes []kernel.Solid
	for _, ring := range inner {
		// Taller than the body so the subtraction leaves no skin.
		h, err := Polygon(k, geom.ExpandRing(ring, resolution), depth*2)
		if err != nil {
			continue
		}
		holes = append(holes, h)
	}
	if len(holes) == 0 {
		return body, nil
	}
	return k.Difference(body, k.Union(holes...)), nil
}

// Annulus returns a ring of outer diameter outer with a bore of diameter
// inner. The bore is cut with InnerSegments.
func Annulus(k kernel.Kernel, outer, inner, depth float64, segments int) (kernel.Solid, error) {
	if !positive(outer, inner, depth) || inner >= outer {
		return nil, badDimension("annulus", outer, inner, depth)
	}
	ring := k.Cylinder(depth, outer/2, segments)
	bore := k.Cylinder(depth*2, inner/2, InnerSegments)
	return k.Difference(ring, bore), nil
}
