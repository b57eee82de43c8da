// Package geom holds the planar geometry used to build board profiles:
// winding normalization, rounded rectangles, circles and ellipses,
// polygon offsetting, and expansion of bulge-encoded arc rings.
//
// All outlines are closed implicitly; the first point is never repeated
// at the end.
package geom

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

// Eps is the length below which two points are considered coincident.
const Eps = 1e-9

// ClampRadius returns the corner radius that a w by h rectangle can carry:
// min(r, w/2, h/2), or 0 when r is not positive.
func ClampRadius(r, w, h float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Min(r, math.Min(w/2, h/2))
}

// SignedArea returns the shoelace area of the outline. It is positive for
// counter-clockwise winding.
func SignedArea(pts []r2.Vec) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += r2.Cross(pts[i], pts[j])
	}
	return a / 2
}

// EnsureCCW returns the outline in counter-clockwise order. The input is
// never modified.
func EnsureCCW(pts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(pts))
	copy(out, pts)
	if SignedArea(out) < 0 {
		Reverse(out)
	}
	return out
}

// Reverse reverses pts in place.
func Reverse(pts []r2.Vec) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// Translate returns pts shifted by (dx, dy).
func Translate(pts []r2.Vec, dx, dy float64) []r2.Vec {
	d := r2.Vec{X: dx, Y: dy}
	out := make([]r2.Vec, len(pts))
	for i, p := range pts {
		out[i] = r2.Add(p, d)
	}
	return out
}

// Rotate returns pts rotated counter-clockwise about the origin by deg
// degrees.
func Rotate(pts []r2.Vec, deg float64) []r2.Vec {
	out := make([]r2.Vec, len(pts))
	if deg == 0 {
		copy(out, pts)
		return out
	}
	alpha := deg * math.Pi / 180
	for i, p := range pts {
		out[i] = r2.Rotate(p, alpha, r2.Vec{})
	}
	return out
}

// Dedupe drops consecutive coincident points, including a closing point
// equal to the first one.
func Dedupe(pts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && coincident(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && coincident(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func coincident(a, b r2.Vec) bool {
	return scalar.EqualWithinAbs(a.X, b.X, Eps) && scalar.EqualWithinAbs(a.Y, b.Y, Eps)
}

// Circle returns a counter-clockwise regular polygon inscribed in a circle
// of radius r.
func Circle(r float64, segments int) []r2.Vec {
	return Ellipse(2*r, 2*r, segments)
}

// Ellipse returns a counter-clockwise polygon approximating an ellipse with
// the given axis lengths, centered at the origin.
func Ellipse(w, h float64, segments int) []r2.Vec {
	if segments < 3 {
		segments = 3
	}
	out := make([]r2.Vec, segments)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(segments)
		out[i] = r2.Vec{X: w / 2 * math.Cos(a), Y: h / 2 * math.Sin(a)}
	}
	return out
}

// RoundedRect returns a counter-clockwise w by h rectangle centered at the
// origin with corners rounded to ClampRadius(r, w, h). Each corner arc uses
// cornerSegments segments. A non-positive effective radius yields the four
// plain corners.
func RoundedRect(w, h, r float64, cornerSegments int) []r2.Vec {
	r = ClampRadius(r, w, h)
	hw, hh := w/2, h/2
	if r <= 0 {
		return []r2.Vec{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	}
	if cornerSegments < 1 {
		cornerSegments = 1
	}
	corners := []struct {
		c     r2.Vec
		start float64
	}{
		{r2.Vec{X: hw - r, Y: -hh + r}, -math.Pi / 2},
		{r2.Vec{X: hw - r, Y: hh - r}, 0},
		{r2.Vec{X: -hw + r, Y: hh - r}, math.Pi / 2},
		{r2.Vec{X: -hw + r, Y: -hh + r}, math.Pi},
	}
	out := make([]r2.Vec, 0, 4*(cornerSegments+1))
	for _, cn := range corners {
		for i := 0; i <= cornerSegments; i++ {
			a := cn.start + math.Pi/2*float64(i)/float64(cornerSegments)
			out = append(out, r2.Add(cn.c, r2.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)}))
		}
	}
	return Dedupe(out)
}

// maxMiter bounds how far a sharp vertex may travel when offsetting,
// as a multiple of the offset distance.
const maxMiter = 8

// Offset moves every edge of a counter-clockwise outline outward by d
// (inward for negative d) using miter joins. It is intended for small
// distances relative to the feature size.
func Offset(pts []r2.Vec, d float64) []r2.Vec {
	n := len(pts)
	if n < 3 || d == 0 {
		out := make([]r2.Vec, n)
		copy(out, pts)
		return out
	}
	out := make([]r2.Vec, n)
	for i := range pts {
		prev := pts[(i+n-1)%n]
		cur := pts[i]
		next := pts[(i+1)%n]
		n0 := outwardNormal(prev, cur)
		n1 := outwardNormal(cur, next)
		denom := 1 + r2.Dot(n0, n1)
		var m r2.Vec
		if denom < Eps {
			m = n0
		} else {
			m = r2.Scale(1/denom, r2.Add(n0, n1))
		}
		if l := r2.Norm(m); l > maxMiter {
			m = r2.Scale(maxMiter/l, m)
		}
		out[i] = r2.Add(cur, r2.Scale(d, m))
	}
	return out
}

// outwardNormal is the right-hand unit normal of a->b, which points out of
// a counter-clockwise outline.
func outwardNormal(a, b r2.Vec) r2.Vec {
	e := r2.Sub(b, a)
	l := r2.Norm(e)
	if l < Eps {
		return r2.Vec{}
	}
	return r2.Vec{X: e.Y / l, Y: -e.X / l}
}

// Stadium returns a counter-clockwise w by h pill outline centered at the
// origin: a rectangle closed by two semicircles on its shorter sides. Each
// cap uses capSegments segments.
func Stadium(w, h float64, capSegments int) []r2.Vec {
	return RoundedRect(w, h, math.Min(w, h)/2, capSegments)
}
