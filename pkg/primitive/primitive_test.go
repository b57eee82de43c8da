package primitive

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/boardsolid/pkg/geom"
	"github.com/chazu/boardsolid/pkg/kernel"
	"github.com/chazu/boardsolid/pkg/kernel/sdfx"
	"gonum.org/v1/gonum/spatial/r2"
)

func inside(t *testing.T, s kernel.Solid, x, y, z float64) bool {
	t.Helper()
	sm, ok := s.(kernel.Sampler)
	if !ok {
		t.Fatalf("%T does not support point queries", s)
	}
	return sm.Inside(x, y, z)
}

func extent(s kernel.Solid) [3]float64 {
	min, max := s.BoundingBox()
	return [3]float64{max[0] - min[0], max[1] - min[1], max[2] - min[2]}
}

func TestDimensionsMustBePositive(t *testing.T) {
	k := sdfx.New()
	tests := []struct {
		name  string
		build func() (kernel.Solid, error)
	}{
		{"cuboid zero width", func() (kernel.Solid, error) { return Cuboid(k, 0, 1, 1) }},
		{"cylinder negative", func() (kernel.Solid, error) { return Cylinder(k, -1, 1, 8) }},
		{"rounded rect nan", func() (kernel.Solid, error) { return RoundedRect(k, math.NaN(), 1, 0, 1) }},
		{"pill zero depth", func() (kernel.Solid, error) { return Pill(k, 2, 1, 0, 8) }},
		{"oval zero height", func() (kernel.Solid, error) { return Oval(k, 2, 0, 1, 8) }},
		{"annulus inverted", func() (kernel.Solid, error) { return Annulus(k, 1, 1.5, 1, 8) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.build()
			if !errors.Is(err, ErrBadDimension) {
				t.Fatalf("err = %v, want ErrBadDimension", err)
			}
			if s != nil {
				t.Error("expected no solid")
			}
		})
	}
}

func TestRoundedRectClamp(t *testing.T) {
	k := sdfx.New()

	plain, err := RoundedRect(k, 4, 2, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !inside(t, plain, 1.95, 0.95, 0) {
		t.Error("zero radius should keep the square corner")
	}

	negative, err := RoundedRect(k, 4, 2, -3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !inside(t, negative, 1.95, 0.95, 0) {
		t.Error("negative radius should keep the square corner")
	}

	// Requested 5, effective min(5, 2, 1) = 1: the short sides are round.
	round, err := RoundedRect(k, 4, 2, 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if inside(t, round, 1.9, 0.9, 0) {
		t.Error("clamped corner should be rounded away")
	}
	if !inside(t, round, 1.5, 0, 0) {
		t.Error("(1.5,0) should be inside the rounded rect")
	}
	if e := extent(round); math.Abs(e[0]-4) > 0.01 || math.Abs(e[1]-2) > 0.01 {
		t.Errorf("extent = %v, want 4x2", e)
	}
}

func TestPill(t *testing.T) {
	k := sdfx.New()

	wide, err := Pill(k, 4, 2, 1, OuterSegments)
	if err != nil {
		t.Fatal(err)
	}
	if e := extent(wide); math.Abs(e[0]-4) > 0.01 || math.Abs(e[1]-2) > 0.01 {
		t.Errorf("wide pill extent = %v, want 4x2", e)
	}
	if !inside(t, wide, 1.9, 0, 0) {
		t.Error("(1.9,0) should be inside the end cap")
	}
	if inside(t, wide, 1.9, 0.9, 0) {
		t.Error("(1.9,0.9) should be outside the rounded end")
	}

	tall, err := Pill(k, 1, 3, 1, OuterSegments)
	if err != nil {
		t.Fatal(err)
	}
	if e := extent(tall); math.Abs(e[0]-1) > 0.01 || math.Abs(e[1]-3) > 0.01 {
		t.Errorf("tall pill extent = %v, want 1x3", e)
	}

	round, err := Pill(k, 2, 2, 1, OuterSegments)
	if err != nil {
		t.Fatal(err)
	}
	if inside(t, round, 0.9, 0.9, 0) {
		t.Error("equal sides should give a cylinder")
	}
}

func TestOval(t *testing.T) {
	k := sdfx.New()
	o, err := Oval(k, 4, 2, 1, OuterSegments)
	if err != nil {
		t.Fatal(err)
	}
	if !inside(t, o, 1.8, 0, 0) {
		t.Error("(1.8,0) should be inside the oval")
	}
	if inside(t, o, 1.5, 0.8, 0) {
		t.Error("(1.5,0.8) should be outside the oval")
	}
}

func TestPolygon(t *testing.T) {
	k := sdfx.New()

	t.Run("too few points", func(t *testing.T) {
		s, err := Polygon(k, []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}}, 1)
		if !errors.Is(err, ErrTooFewPoints) {
			t.Fatalf("err = %v, want ErrTooFewPoints", err)
		}
		if s != nil {
			t.Error("expected no solid")
		}
	})

	t.Run("collinear", func(t *testing.T) {
		_, err := Polygon(k, []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, 1)
		if !errors.Is(err, ErrTooFewPoints) {
			t.Fatalf("err = %v, want ErrTooFewPoints", err)
		}
	})

	t.Run("clockwise input", func(t *testing.T) {
		cw := []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 0}}
		s, err := Polygon(k, cw, 1)
		if err != nil {
			t.Fatal(err)
		}
		if !inside(t, s, 1, 1, 0) {
			t.Error("(1,1) should be inside")
		}
		if inside(t, s, 3, 1, 0) {
			t.Error("(3,1) should be outside")
		}
	})
}

func TestBrep(t *testing.T) {
	k := sdfx.New()
	outer := []geom.Vertex{{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}}
	inner := [][]geom.Vertex{
		{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0.5, Y: 0.5}, {X: -0.5, Y: 0.5}},
		{{X: 1, Y: 1}, {X: 1.2, Y: 1.2}}, // ignored
	}
	s, err := Brep(k, outer, inner, 1, geom.DefaultArcResolution)
	if err != nil {
		t.Fatal(err)
	}
	if inside(t, s, 0, 0, 0) {
		t.Error("inner ring should be cut out")
	}
	if !inside(t, s, 1.5, 0, 0) {
		t.Error("(1.5,0) should be copper")
	}

	bulged := []geom.Vertex{{X: -2, Y: -2, Bulge: 1}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}}
	s, err = Brep(k, bulged, nil, 1, geom.DefaultArcResolution)
	if err != nil {
		t.Fatal(err)
	}
	if !inside(t, s, 0, -3.5, 0) {
		t.Error("the bulged edge should extend below y=-2")
	}

	if _, err := Brep(k, outer[:2], nil, 1, 0); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("degenerate outer ring err = %v, want ErrTooFewPoints", err)
	}
}

func TestAnnulus(t *testing.T) {
	k := sdfx.New()
	a, err := Annulus(k, 2, 1, 0.1, OuterSegments)
	if err != nil {
		t.Fatal(err)
	}
	if inside(t, a, 0, 0, 0) {
		t.Error("bore should be empty")
	}
	if !inside(t, a, 0.75, 0, 0) {
		t.Error("ring should contain (0.75,0)")
	}
	if inside(t, a, 1.1, 0, 0) {
		t.Error("(1.1,0) is beyond the outer diameter")
	}
}

func TestPlace(t *testing.T) {
	k := sdfx.New()
	b := k.Box(4, 1, 1)
	placed := Place(k, b, 10, 5, 0, 90)
	min, max := placed.BoundingBox()
	if math.Abs(min[0]-9.5) > 0.01 || math.Abs(max[1]-7) > 0.01 {
		t.Errorf("placed bounds = %v..%v, want x from 9.5 and y to 7", min, max)
	}
	if Place(k, b, 0, 0, 0, 0) != b {
		t.Error("identity placement should return the input")
	}
}
