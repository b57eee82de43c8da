package circuit

import (
	"strings"
	"testing"
)

const sampleCircuit = `[
  {"type": "pcb_board", "pcb_board_id": "board_0", "center": {"x": 0, "y": 0}, "width": 20, "height": 10, "thickness": 1.2, "material": "fr1"},
  {"type": "pcb_smtpad", "pcb_smtpad_id": "pad_1", "shape": "rect", "x": 1, "y": 2, "width": 1.5, "height": 0.6, "layer": "top"},
  {"type": "pcb_plated_hole", "id": "ph_1", "shape": "circle", "x": -3, "y": 0, "hole_diameter": 1, "outer_diameter": 2},
  {"type": "pcb_hole", "hole_shape": "circle", "x": 5, "y": 3, "hole_diameter": 3.2},
  {"type": "pcb_copper_pour", "shape": "brep", "layer": "bottom", "covered_with_solder_mask": true,
   "brep_shape": {"outer_ring": {"vertices": [{"x": 0, "y": 0}, {"x": 4, "y": 0, "bulge": 0.5}, {"x": 4, "y": 4}]}}},
  {"type": "pcb_trace", "pcb_trace_id": "t1", "route": []}
]`

func TestDecode(t *testing.T) {
	elements, err := Decode(strings.NewReader(sampleCircuit))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(elements) != 6 {
		t.Fatalf("expected 6 elements, got %d", len(elements))
	}

	b, ok := elements[0].(Board)
	if !ok {
		t.Fatalf("element 0 is %T, want Board", elements[0])
	}
	if b.ID != "board_0" || b.Thickness != 1.2 || b.Material != MaterialFR1 {
		t.Errorf("unexpected board %+v", b)
	}

	pad := elements[1].(Pad)
	if pad.Key() != "pad_1" || pad.Layer != LayerTop || pad.Width != 1.5 {
		t.Errorf("unexpected pad %+v", pad)
	}
	if ph := elements[2].(PlatedHole); ph.ID != "ph_1" || ph.OuterDiameter != 2 {
		t.Errorf("unexpected plated hole %+v", ph)
	}
	if h := elements[3].(Hole); h.Shape != ShapeCircle || h.HoleDiameter != 3.2 {
		t.Errorf("unexpected hole %+v", h)
	}

	pour := elements[4].(CopperPour)
	if pour.Brep == nil || len(pour.Brep.OuterRing.Vertices) != 3 {
		t.Fatalf("brep not decoded: %+v", pour)
	}
	if pour.Brep.OuterRing.Vertices[1].Bulge != 0.5 || !pour.CoveredWithSolderMask {
		t.Errorf("unexpected pour %+v", pour)
	}

	u, ok := elements[5].(Unknown)
	if !ok || u.ElementType() != "pcb_trace" || u.Key() != "t1" {
		t.Errorf("unexpected unknown record %#v", elements[5])
	}

	s := Partition(elements)
	if s.Len() != 5 || s.Unknown != 1 {
		t.Errorf("Partition: Len() = %d, Unknown = %d", s.Len(), s.Unknown)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"not an array", `{"type": "pcb_board"}`, "decode"},
		{"missing type", `[{"width": 1}]`, "record 0: missing type tag"},
		{"bad field", `[{"type": "pcb_via"}, {"type": "pcb_via", "x": "far"}]`, "record 1: pcb_via"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDecodeKeepsDerivedKeys(t *testing.T) {
	a, err := DecodeElement([]byte(`{"type": "pcb_via", "x": 1, "y": 2, "hole_diameter": 0.3, "outer_diameter": 0.6}`))
	if err != nil {
		t.Fatal(err)
	}
	want := Via{X: 1, Y: 2, HoleDiameter: 0.3, OuterDiameter: 0.6}
	if a.Key() != want.Key() {
		t.Errorf("decoded key %s differs from literal key %s", a.Key(), want.Key())
	}
}
