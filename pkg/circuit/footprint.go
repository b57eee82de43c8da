package circuit

import (
	"math"

	"github.com/akavel/polyclip-go"
	"github.com/chazu/boardsolid/pkg/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// footprintSegments is the facet count used for round footprints. The
// overlap test only needs a coarse shape.
const footprintSegments = 16

func contour(pts []r2.Vec) polyclip.Contour {
	c := make(polyclip.Contour, len(pts))
	for i, p := range pts {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return c
}

func placed(pts []r2.Vec, x, y, deg float64) polyclip.Polygon {
	return polyclip.Polygon{contour(geom.Translate(geom.Rotate(pts, deg), x, y))}
}

func rect(w, h float64) []r2.Vec {
	return geom.RoundedRect(w, h, 0, 0)
}

// shellFootprints returns the 2D outline of every shell the input builds:
// the panel when there is one, otherwise each board.
func shellFootprints(s Set) []polyclip.Polygon {
	if p, ok := s.Panel(); ok {
		return []polyclip.Polygon{placed(rect(p.Width, p.Height), p.Center.X, p.Center.Y, 0)}
	}
	var out []polyclip.Polygon
	for _, b := range s.Boards {
		if len(b.Outline) >= 3 {
			out = append(out, polyclip.Polygon{contour(Vecs(b.Outline))})
			continue
		}
		out = append(out, placed(rect(b.Width, b.Height), b.Center.X, b.Center.Y, 0))
	}
	return out
}

// padFootprint returns the pad's outline, or false when the shape cannot
// be resolved. Unknown shapes are reported by validateElements.
func padFootprint(p Pad) (polyclip.Polygon, bool) {
	switch p.Shape {
	case ShapeRect, ShapeRotatedRect:
		return placed(rect(p.Width, p.Height), p.X, p.Y, p.Rotation), p.Width > 0 && p.Height > 0
	case ShapeCircle:
		return placed(geom.Circle(p.Radius, footprintSegments), p.X, p.Y, 0), p.Radius > 0
	case ShapePolygon:
		return polyclip.Polygon{contour(Vecs(p.Points))}, len(p.Points) >= 3
	}
	return nil, false
}

func cutoutFootprint(c Cutout) (polyclip.Polygon, bool) {
	switch c.Shape {
	case ShapeRect:
		return placed(rect(c.Width, c.Height), c.Center.X, c.Center.Y, c.Rotation), c.Width > 0 && c.Height > 0
	case ShapeCircle:
		return placed(geom.Circle(c.Radius, footprintSegments), c.Center.X, c.Center.Y, 0), c.Radius > 0
	case ShapePolygon:
		return polyclip.Polygon{contour(Vecs(c.Points))}, len(c.Points) >= 3
	}
	return nil, false
}

// pourFootprint uses only the outer boundary of a brep pour; inner rings
// cannot move it off the board.
func pourFootprint(p CopperPour) (polyclip.Polygon, bool) {
	switch p.Shape {
	case ShapeRect:
		return placed(rect(p.Width, p.Height), p.Center.X, p.Center.Y, p.Rotation), p.Width > 0 && p.Height > 0
	case ShapePolygon:
		return polyclip.Polygon{contour(Vecs(p.Points))}, len(p.Points) >= 3
	case ShapeBrep:
		if p.Brep == nil {
			return nil, false
		}
		outer := geom.ExpandRing(p.Brep.OuterRing.Vertices, geom.DefaultArcResolution)
		return polyclip.Polygon{contour(outer)}, len(outer) >= 3
	}
	return nil, false
}

// area returns the total absolute area of the polygon's contours.
func area(p polyclip.Polygon) float64 {
	a := 0.0
	for _, c := range p {
		pts := make([]r2.Vec, len(c))
		for i, q := range c {
			pts[i] = r2.Vec{X: q.X, Y: q.Y}
		}
		a += math.Abs(geom.SignedArea(pts))
	}
	return a
}

// onShell reports whether fp overlaps any shell with positive area. A
// vertex strictly inside the other outline or a proper edge crossing
// settles it; polygons that only share boundary fall through to the
// clipped area, which is zero for mere contact.
func onShell(fp polyclip.Polygon, shells []polyclip.Polygon) bool {
	box := fp.BoundingBox()
	for _, sh := range shells {
		if !box.Overlaps(sh.BoundingBox()) {
			continue
		}
		if overlaps(fp, sh) || area(fp.Construct(polyclip.INTERSECTION, sh)) > geom.Eps {
			return true
		}
	}
	return false
}

func overlaps(a, b polyclip.Polygon) bool {
	for _, ca := range a {
		for _, cb := range b {
			if anyInside(ca, cb) || anyInside(cb, ca) || crosses(ca, cb) {
				return true
			}
		}
	}
	return false
}

// anyInside reports whether some vertex of c lies strictly inside outline,
// further than geom.Eps from its boundary.
func anyInside(c, outline polyclip.Contour) bool {
	for _, p := range c {
		if strictlyInside(p, outline) {
			return true
		}
	}
	return false
}

func strictlyInside(p polyclip.Point, c polyclip.Contour) bool {
	for i := range c {
		if segmentDistance(p, c[i], c[(i+1)%len(c)]) <= geom.Eps {
			return false
		}
	}
	return c.Contains(p)
}

func segmentDistance(p, a, b polyclip.Point) float64 {
	ab := r2.Vec{X: b.X - a.X, Y: b.Y - a.Y}
	ap := r2.Vec{X: p.X - a.X, Y: p.Y - a.Y}
	t := 0.0
	if l := r2.Dot(ab, ab); l > 0 {
		t = math.Max(0, math.Min(1, r2.Dot(ap, ab)/l))
	}
	return r2.Norm(r2.Sub(ap, r2.Scale(t, ab)))
}

// crosses reports whether an edge of a properly crosses an edge of b, each
// passing strictly through the other.
func crosses(a, b polyclip.Contour) bool {
	side := func(p, q, r polyclip.Point) float64 {
		return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
	}
	for i := range a {
		p1, p2 := a[i], a[(i+1)%len(a)]
		for j := range b {
			q1, q2 := b[j], b[(j+1)%len(b)]
			d1, d2 := side(q1, q2, p1), side(q1, q2, p2)
			d3, d4 := side(p1, p2, q1), side(p1, p2, q2)
			if d1*d2 < -geom.Eps && d3*d4 < -geom.Eps {
				return true
			}
		}
	}
	return false
}

// validateFootprints warns about copper and cutouts that lie entirely off
// the board. Copper there is clipped away to nothing and such a cutout
// removes nothing.
func validateFootprints(s Set) []ValidationWarning {
	shells := shellFootprints(s)
	if len(shells) == 0 {
		return nil
	}
	var warnings []ValidationWarning
	check := func(typ, key string, fp polyclip.Polygon, ok bool, msg string) {
		if ok && !onShell(fp, shells) {
			warnings = append(warnings, ValidationWarning{Type: typ, Key: key, Message: msg})
		}
	}
	for _, p := range s.Pads {
		fp, ok := padFootprint(p)
		check(TypePad, p.Key(), fp, ok, "pad lies outside the board and will be clipped away")
	}
	for _, p := range s.CopperPours {
		fp, ok := pourFootprint(p)
		check(TypeCopperPour, p.Key(), fp, ok, "pour lies outside the board and will be clipped away")
	}
	for _, c := range s.Cutouts {
		fp, ok := cutoutFootprint(c)
		check(TypeCutout, c.Key(), fp, ok, "cutout lies outside the board and removes nothing")
	}
	return warnings
}
