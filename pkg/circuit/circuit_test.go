package circuit

import (
	"strings"
	"testing"
)

func hasError(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityError && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func hasWarning(ws []ValidationWarning, substr string) bool {
	for _, w := range ws {
		if strings.Contains(w.Message, substr) {
			return true
		}
	}
	return false
}

func TestKeyIsElementDerived(t *testing.T) {
	a := Via{X: 1, Y: 2, HoleDiameter: 0.3, OuterDiameter: 0.6}
	b := Via{X: 1, Y: 2, HoleDiameter: 0.3, OuterDiameter: 0.6}
	c := Via{X: 1, Y: 2.5, HoleDiameter: 0.3, OuterDiameter: 0.6}

	if a.Key() != b.Key() {
		t.Error("equal records should share a key")
	}
	if a.Key() == c.Key() {
		t.Error("different records should have different keys")
	}
	if got := (Via{ID: "via_7"}).Key(); got != "via_7" {
		t.Errorf("Key() = %q, want the record ID", got)
	}

	// Same contents under another type tag must not collide.
	h := Hole{X: 1, Y: 2}
	v := Via{X: 1, Y: 2}
	if h.Key() == v.Key() {
		t.Error("keys of different element types collided")
	}
}

func TestPartition(t *testing.T) {
	elems := []Element{
		Pad{ID: "p1", Shape: ShapeRect, Layer: LayerTop},
		Board{ID: "b1", Width: 10, Height: 10},
		&Via{ID: "v1"},
		Pad{ID: "p2", Shape: ShapeCircle, Layer: LayerBottom},
		Hole{ID: "h1"},
		PlatedHole{ID: "ph1"},
		&Cutout{ID: "c1"},
		CopperPour{ID: "cp1"},
		Panel{ID: "panel"},
	}
	s := Partition(elems)

	if len(s.Pads) != 2 || s.Pads[0].ID != "p1" || s.Pads[1].ID != "p2" {
		t.Errorf("pads = %+v, want p1 then p2", s.Pads)
	}
	if len(s.Vias) != 1 || s.Vias[0].ID != "v1" {
		t.Errorf("vias = %+v", s.Vias)
	}
	if len(s.Cutouts) != 1 || len(s.Holes) != 1 || len(s.PlatedHoles) != 1 || len(s.CopperPours) != 1 {
		t.Errorf("unexpected partition %+v", s)
	}
	if b, ok := s.Board(); !ok || b.ID != "b1" {
		t.Errorf("Board() = %+v, %v", b, ok)
	}
	if p, ok := s.Panel(); !ok || p.ID != "panel" {
		t.Errorf("Panel() = %+v, %v", p, ok)
	}
	if s.Len() != len(elems) {
		t.Errorf("Len() = %d, want %d", s.Len(), len(elems))
	}
	if s.Unknown != 0 {
		t.Errorf("Unknown = %d, want 0", s.Unknown)
	}
}

func TestEffectiveThickness(t *testing.T) {
	if got := (Board{}).EffectiveThickness(); got != DefaultThickness {
		t.Errorf("EffectiveThickness() = %v, want %v", got, DefaultThickness)
	}
	if got := (Board{Thickness: 1.2}).EffectiveThickness(); got != 1.2 {
		t.Errorf("EffectiveThickness() = %v, want 1.2", got)
	}
}

func TestValidateStructure(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		wantErr string
	}{
		{"no board", Set{}, "no pcb_board"},
		{"negative thickness", Set{Boards: []Board{{Width: 10, Height: 10, Thickness: -1}}}, "thickness"},
		{"missing height", Set{Boards: []Board{{Width: 10}}}, "width and height"},
		{"short outline", Set{Boards: []Board{{Outline: []Point{{0, 0}, {1, 0}}}}}, "outline has 2 points"},
		{"panel without size", Set{Panels: []Panel{{Width: 10}}}, "panel height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.set)
			if !hasError(errs, tt.wantErr) {
				t.Errorf("Validate() = %v, want an error containing %q", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateStructureOK(t *testing.T) {
	valid := []Set{
		{Boards: []Board{{Width: 10, Height: 10, Thickness: 1.6}}},
		{Boards: []Board{{Outline: []Point{{0, 0}, {5, 0}, {0, 5}}}}},
		// Boards inside a panel do not need their own size.
		{Panels: []Panel{{Width: 100, Height: 50}}, Boards: []Board{{PanelID: "p"}}},
	}
	for i, s := range valid {
		if errs := Validate(s); len(errs) != 0 {
			t.Errorf("set %d: Validate() = %v, want no findings", i, errs)
		}
	}
}

func TestValidateAll(t *testing.T) {
	s := Set{
		Boards: []Board{{Width: 10, Height: 10}, {Width: 5, Height: 5}},
		PlatedHoles: []PlatedHole{
			{ID: "ok", Shape: ShapeCircle, HoleDiameter: 1, OuterDiameter: 2},
			{ID: "weird", Shape: "triangle"},
			{ID: "thin", Shape: ShapeCircle, HoleDiameter: 1, OuterDiameter: 0.5},
		},
		Vias:    []Via{{ID: "bad via", HoleDiameter: 1.5, OuterDiameter: 1.0}},
		Cutouts: []Cutout{{ID: "c", Shape: ShapePolygon, Points: []Point{{0, 0}, {1, 1}}}},
		Pads: []Pad{
			{ID: "dup", Shape: ShapeCircle, Radius: 1, Layer: LayerTop},
			{ID: "dup", Shape: ShapeCircle, Radius: 1, Layer: "inner1"},
		},
	}
	r := ValidateAll(s)

	if r.OK() {
		t.Fatal("unsupported shape should block the build")
	}
	if len(r.Errors) != 1 || !strings.Contains(r.Errors[0].Message, `unsupported shape "triangle"`) {
		t.Errorf("errors = %v, want only the unsupported shape", r.Errors)
	}
	if r.Err() == nil || !strings.Contains(r.Err().Error(), "weird") {
		t.Errorf("Err() = %v, want it to name the element", r.Err())
	}
	for _, want := range []string{
		"only the first is used",
		"outer diameter 0.5000 must be at least",
		"via outer diameter 1.0000 must exceed hole diameter 1.5000",
		"polygon has 2 points",
		`layer "inner1"`,
		"duplicate element key",
	} {
		if !hasWarning(r.Warnings, want) {
			t.Errorf("missing warning %q in %v", want, r.Warnings)
		}
	}
}

func TestCheckPlatedHole(t *testing.T) {
	outline := []Point{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	tests := []struct {
		name    string
		hole    PlatedHole
		wantSev Severity
		wantMsg string
	}{
		{"ok", PlatedHole{Shape: ShapeHoleWithPolygonPad, HoleShape: ShapeCircle, HoleDiameter: 0.8, PadOutline: outline}, 0, ""},
		{"short outline", PlatedHole{Shape: ShapeHoleWithPolygonPad, HoleDiameter: 0.8, PadOutline: outline[:2]}, SeverityWarning, "pad outline"},
		{"unknown bore", PlatedHole{Shape: ShapeHoleWithPolygonPad, HoleShape: "star", PadOutline: outline}, SeverityError, "unsupported"},
		{"circle without outer diameter", PlatedHole{Shape: ShapeCircle, HoleDiameter: 0.8}, SeverityWarning, "drilled without copper"},
		{"circle without bore", PlatedHole{Shape: ShapeCircle, OuterDiameter: 1.2}, SeverityWarning, "hole diameter 0.0000 must be positive"},
		{"short pill pad", PlatedHole{Shape: ShapePill, HoleWidth: 2, HoleHeight: 1, OuterWidth: 1.5, OuterHeight: 2}, SeverityWarning, "drilled without copper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sev, msg := checkPlatedHole(tt.hole)
			if !strings.Contains(msg, tt.wantMsg) || (tt.wantMsg == "") != (msg == "") {
				t.Fatalf("message = %q, want %q", msg, tt.wantMsg)
			}
			if msg != "" && sev != tt.wantSev {
				t.Errorf("severity = %v, want %v", sev, tt.wantSev)
			}
		})
	}
}
