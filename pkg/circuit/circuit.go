// Package circuit defines the read-only board records the reconstruction
// engine consumes: the board or panel, plated and non-plated holes, SMT
// pads, vias, cutouts and copper pours.
//
// Records are plain values. Nothing in this module mutates them after
// construction.
package circuit

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// Type tags, as carried in the "type" field of serialized records.
const (
	TypeBoard      = "pcb_board"
	TypePanel      = "pcb_panel"
	TypePlatedHole = "pcb_plated_hole"
	TypeHole       = "pcb_hole"
	TypePad        = "pcb_smtpad"
	TypeVia        = "pcb_via"
	TypeCutout     = "pcb_cutout"
	TypeCopperPour = "pcb_copper_pour"
)

// Element is a typed input record.
type Element interface {
	// ElementType returns the record's type tag.
	ElementType() string
	// Key returns a stable identifier derived from the record itself,
	// never from its position in the input.
	Key() string
}

// Point is a 2D coordinate in millimetres.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec converts p to a gonum vector.
func (p Point) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Vecs converts a point list.
func Vecs(pts []Point) []r2.Vec {
	out := make([]r2.Vec, len(pts))
	for i, p := range pts {
		out[i] = p.Vec()
	}
	return out
}

// Layer is a copper side.
type Layer string

const (
	LayerTop    Layer = "top"
	LayerBottom Layer = "bottom"
)

// Material is a board substrate.
type Material string

const (
	MaterialFR4 Material = "fr4"
	MaterialFR1 Material = "fr1"
)

// keySpace namespaces derived element keys.
var keySpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/chazu/boardsolid/circuit"))

// deriveKey returns id when set, otherwise a name-based UUID of the
// record's type tag and serialized contents.
func deriveKey(id, typ string, v any) string {
	if id != "" {
		return id
	}
	data, err := json.Marshal(v)
	if err != nil {
		// Records are plain data; this only fails on NaN or Inf fields.
		data = []byte(fmt.Sprintf("%#v", v))
	}
	return uuid.NewSHA1(keySpace, append([]byte(typ+":"), data...)).String()
}
