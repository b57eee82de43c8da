package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultArcResolution is the largest angle, in radians, spanned by one
// segment of an expanded arc.
const DefaultArcResolution = 2 * math.Pi / 64

// Vertex is a ring vertex. A non-zero Bulge turns the edge to the next
// vertex into a circular arc: Bulge = tan(angle/4), positive for a
// counter-clockwise sweep.
type Vertex struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Bulge float64 `json:"bulge,omitempty"`
}

// ExpandRing converts a closed ring of bulge vertices into plain outline
// points. Straight edges contribute only their start vertex.
func ExpandRing(ring []Vertex, resolution float64) []r2.Vec {
	out := make([]r2.Vec, 0, len(ring))
	for i, v := range ring {
		p1 := r2.Vec{X: v.X, Y: v.Y}
		out = append(out, p1)
		next := ring[(i+1)%len(ring)]
		p2 := r2.Vec{X: next.X, Y: next.Y}
		out = append(out, ArcPoints(p1, p2, v.Bulge, resolution)...)
	}
	return Dedupe(out)
}

// ArcPoints returns the interior points of the arc from p1 to p2 encoded by
// bulge, excluding both endpoints. The number of points grows with the
// swept angle, one segment per resolution radians.
func ArcPoints(p1, p2 r2.Vec, bulge, resolution float64) []r2.Vec {
	if math.Abs(bulge) < Eps {
		return nil
	}
	chord := r2.Sub(p2, p1)
	c := r2.Norm(chord)
	if c < Eps {
		return nil
	}
	if resolution <= 0 {
		resolution = DefaultArcResolution
	}
	theta := 4 * math.Atan(bulge)

	// The center sits on the left normal of the chord at a signed distance
	// of c(1-b^2)/(4b) from its midpoint.
	mid := r2.Scale(0.5, r2.Add(p1, p2))
	left := r2.Vec{X: -chord.Y / c, Y: chord.X / c}
	h := c * (1 - bulge*bulge) / (4 * bulge)
	center := r2.Add(mid, r2.Scale(h, left))
	radius := c * (1 + bulge*bulge) / (4 * math.Abs(bulge))

	start := math.Atan2(p1.Y-center.Y, p1.X-center.X)
	segs := int(math.Ceil(math.Abs(theta) / resolution))
	if segs < 2 {
		return nil
	}
	out := make([]r2.Vec, 0, segs-1)
	for i := 1; i < segs; i++ {
		a := start + theta*float64(i)/float64(segs)
		out = append(out, r2.Vec{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)})
	}
	return out
}
