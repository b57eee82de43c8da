package sdfx

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/boardsolid/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r2"
)

func near(a, b [3]float64, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestPlate(t *testing.T) {
	k := New()
	plate := k.Box(50, 30, 1.6)
	min, max := plate.BoundingBox()
	if !near(min, [3]float64{-25, -15, -0.8}, 0.01) || !near(max, [3]float64{25, 15, 0.8}, 0.01) {
		t.Errorf("plate bounds = %v..%v", min, max)
	}

	mesh, err := k.ToMesh(plate)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("plate mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 || mesh.VertexCount() != len(mesh.Indices) {
		t.Fatalf("indices %d, triangles %d, vertices %d", len(mesh.Indices), mesh.TriangleCount(), mesh.VertexCount())
	}
}

func TestDrilledPlate(t *testing.T) {
	k := New(WithMeshCells(64))
	plate := k.Box(10, 10, 1.6)
	drilled := k.Difference(plate, k.Cylinder(2, 1.5, 32))

	plain, err := k.ToMesh(plate)
	if err != nil {
		t.Fatalf("ToMesh(plate) failed: %v", err)
	}
	holed, err := k.ToMesh(drilled)
	if err != nil {
		t.Fatalf("ToMesh(drilled) failed: %v", err)
	}
	if holed.TriangleCount() <= plain.TriangleCount() {
		t.Fatalf("drilled plate has %d triangles, plain plate %d", holed.TriangleCount(), plain.TriangleCount())
	}

	s := drilled.(kernel.Sampler)
	if s.Inside(0, 0, 0) {
		t.Error("bore center should be empty")
	}
	if !s.Inside(3, 0, 0) {
		t.Error("board beyond the bore should be solid")
	}
}

func TestAnnularRing(t *testing.T) {
	k := New()
	ring := k.Difference(k.Cylinder(0.035, 1, 32), k.Cylinder(1, 0.5, 32)).(kernel.Sampler)
	for _, c := range []struct {
		x    float64
		want bool
	}{{0, false}, {0.4, false}, {0.75, true}, {1.1, false}} {
		if got := ring.Inside(c.x, 0, 0); got != c.want {
			t.Errorf("Inside(%g, 0, 0) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestUnionCutoutTools(t *testing.T) {
	k := New()
	tools := []kernel.Solid{
		k.Box(2, 2, 2),
		k.Translate(k.Box(2, 2, 2), 4, 0, 0),
		k.Translate(k.Cylinder(2, 1, 0), 0, 4, 0),
	}
	u := k.Union(tools...)
	min, max := u.BoundingBox()
	if !near(min, [3]float64{-1, -1, -1}, 0.01) || !near(max, [3]float64{5, 5, 1}, 0.01) {
		t.Errorf("union bounds = %v..%v", min, max)
	}
	for _, p := range [][3]float64{{0, 0, 0}, {4, 0, 0}, {0, 4, 0}} {
		if !u.(kernel.Sampler).Inside(p[0], p[1], p[2]) {
			t.Errorf("%v should be inside the union", p)
		}
	}

	if k.Union() != nil {
		t.Error("Union() of nothing should be nil")
	}
	single := k.Union(tools[0])
	if single == tools[0] {
		t.Error("single-operand union should return a new handle")
	}
}

func TestIntersectionClip(t *testing.T) {
	k := New()
	copper := k.Box(20, 2, 0.035)
	clip := k.Box(10, 10, 10)
	clipped := k.Intersection(copper, clip).(kernel.Sampler)
	if !clipped.Inside(4, 0, 0) {
		t.Error("copper inside the outline should survive")
	}
	if clipped.Inside(8, 0, 0) {
		t.Error("copper beyond the outline should be clipped")
	}
}

func TestTransforms(t *testing.T) {
	k := New()
	pad := k.Box(4, 1, 0.035)

	moved := k.Translate(pad, 10, -5, 0.8)
	min, max := moved.BoundingBox()
	if !near(min, [3]float64{8, -5.5, 0.7825}, 0.01) || !near(max, [3]float64{12, -4.5, 0.8175}, 0.01) {
		t.Errorf("translated bounds = %v..%v", min, max)
	}

	turned := k.Rotate(pad, 0, 0, 90)
	min, max = turned.BoundingBox()
	if math.Abs((max[0]-min[0])-1) > 0.1 || math.Abs((max[1]-min[1])-4) > 0.1 {
		t.Errorf("rotated extent = %f x %f, want 1 x 4", max[0]-min[0], max[1]-min[1])
	}

	for name, s := range map[string]kernel.Solid{
		"translate": k.Translate(pad, 0, 0, 0),
		"rotate":    k.Rotate(pad, 0, 0, 0),
	} {
		if s == pad {
			t.Errorf("identity %s should return a new handle", name)
		}
		if unwrap(s) != unwrap(pad) {
			t.Errorf("identity %s should not add a transform", name)
		}
	}
}

func TestExtrudeOutline(t *testing.T) {
	k := New()
	// L-shaped board: the notch at (7.5, 7.5) must stay empty.
	outline := []r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 10}}
	s, err := k.Extrude(outline, 1.6)
	if err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}
	min, max := s.BoundingBox()
	if math.Abs(min[2]+0.8) > 0.01 || math.Abs(max[2]-0.8) > 0.01 {
		t.Errorf("extrusion Z extent = [%f, %f], want [-0.8, 0.8]", min[2], max[2])
	}
	sm := s.(kernel.Sampler)
	if !sm.Inside(2, 2, 0) {
		t.Error("(2,2,0) should be inside the L")
	}
	if sm.Inside(7.5, 7.5, 0) {
		t.Error("(7.5,7.5,0) lies in the notch and should be outside")
	}
	if sm.Inside(2, 2, 1) {
		t.Error("(2,2,1) is above the board and should be outside")
	}
}

func TestExtrudeErrors(t *testing.T) {
	k := New()
	if _, err := k.Extrude([]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 1}}, 1); !errors.Is(err, kernel.ErrTooFewPoints) {
		t.Errorf("two points: error = %v, want ErrTooFewPoints", err)
	}
	square := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	if _, err := k.Extrude(square, 0); err == nil {
		t.Error("zero height: expected an error")
	}
}

func TestCellSize(t *testing.T) {
	plate := New().Box(100, 50, 1.6)
	cases := []struct {
		name string
		k    *SdfxKernel
		want int
	}{
		{"default", New(), defaultMeshCells},
		{"cells", New(WithMeshCells(64)), 64},
		{"coarse size", New(WithMeshCells(64), WithCellSize(10)), 64},
		{"fine size", New(WithMeshCells(64), WithCellSize(0.25)), 400},
		{"capped", New(WithCellSize(0.001)), maxMeshCells},
		{"ignored", New(WithMeshCells(-1), WithCellSize(0)), defaultMeshCells},
	}
	for _, c := range cases {
		if got := c.k.cells(plate); got != c.want {
			t.Errorf("%s: cells = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestEstimateVolume(t *testing.T) {
	k := New()
	v, ok := kernel.EstimateVolume(k.Box(4, 2, 1), 0.1)
	if !ok {
		t.Fatal("sdfx solids should support sampling")
	}
	if math.Abs(v-8) > 1e-6 {
		t.Errorf("EstimateVolume = %f, want 8", v)
	}
}
