package circuit

import "github.com/chazu/boardsolid/pkg/geom"

// Shape is the shape tag carried by holes, pads, cutouts and pours.
type Shape string

const (
	ShapeCircle                     Shape = "circle"
	ShapePill                       Shape = "pill"
	ShapeOval                       Shape = "oval"
	ShapeRotatedPill                Shape = "rotated_pill"
	ShapeHoleWithPolygonPad         Shape = "hole_with_polygon_pad"
	ShapeCircularHoleWithRectPad    Shape = "circular_hole_with_rect_pad"
	ShapePillHoleWithRectPad        Shape = "pill_hole_with_rect_pad"
	ShapeRotatedPillHoleWithRectPad Shape = "rotated_pill_hole_with_rect_pad"
	ShapeRect                       Shape = "rect"
	ShapeRotatedRect                Shape = "rotated_rect"
	ShapePolygon                    Shape = "polygon"
	ShapeBrep                       Shape = "brep"
)

// DefaultThickness is the board thickness used when a board or panel does
// not state one.
const DefaultThickness = 1.6

// Board is the physical board. A non-empty Outline is authoritative over
// Width and Height.
type Board struct {
	ID        string   `json:"id,omitempty"`
	PanelID   string   `json:"pcb_panel_id,omitempty"`
	Center    Point    `json:"center"`
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	Thickness float64  `json:"thickness,omitempty"`
	Material  Material `json:"material,omitempty"`
	NumLayers int      `json:"num_layers,omitempty"`
	Outline   []Point  `json:"outline,omitempty"`
}

func (Board) ElementType() string { return TypeBoard }
func (b Board) Key() string       { return deriveKey(b.ID, TypeBoard, b) }

// EffectiveThickness returns Thickness, or DefaultThickness when unset.
func (b Board) EffectiveThickness() float64 {
	if b.Thickness == 0 {
		return DefaultThickness
	}
	return b.Thickness
}

// Panel is a super-board holding several boards. When present it replaces
// the board outline.
type Panel struct {
	ID        string   `json:"id,omitempty"`
	Center    Point    `json:"center"`
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	Thickness float64  `json:"thickness,omitempty"`
	Material  Material `json:"material,omitempty"`
}

func (Panel) ElementType() string { return TypePanel }
func (p Panel) Key() string       { return deriveKey(p.ID, TypePanel, p) }

// PlatedHole is a through hole lined with copper.
//
// Circular shapes use HoleDiameter and OuterDiameter; elongated shapes use
// the width and height pairs. Rect-pad shapes carry the pad size in
// RectPadWidth and RectPadHeight and may shift the bore by HoleOffsetX/Y.
// HoleRotation turns the bore and RectRotation the pad about their own
// centers before the whole hole is placed by Rotation. Polygon-pad shapes carry PadOutline relative to (X, Y) and the bore
// shape in HoleShape.
type PlatedHole struct {
	ID               string  `json:"id,omitempty"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Shape            Shape   `json:"shape"`
	HoleDiameter     float64 `json:"hole_diameter,omitempty"`
	OuterDiameter    float64 `json:"outer_diameter,omitempty"`
	HoleWidth        float64 `json:"hole_width,omitempty"`
	HoleHeight       float64 `json:"hole_height,omitempty"`
	OuterWidth       float64 `json:"outer_width,omitempty"`
	OuterHeight      float64 `json:"outer_height,omitempty"`
	RectPadWidth     float64 `json:"rect_pad_width,omitempty"`
	RectPadHeight    float64 `json:"rect_pad_height,omitempty"`
	RectBorderRadius float64 `json:"rect_border_radius,omitempty"`
	HoleOffsetX      float64 `json:"hole_offset_x,omitempty"`
	HoleOffsetY      float64 `json:"hole_offset_y,omitempty"`
	Rotation         float64 `json:"ccw_rotation,omitempty"`
	HoleRotation     float64 `json:"hole_ccw_rotation,omitempty"`
	RectRotation     float64 `json:"rect_ccw_rotation,omitempty"`
	HoleShape        Shape   `json:"hole_shape,omitempty"`
	PadOutline       []Point `json:"pad_outline,omitempty"`
}

func (PlatedHole) ElementType() string { return TypePlatedHole }
func (h PlatedHole) Key() string       { return deriveKey(h.ID, TypePlatedHole, h) }

// Hole is a non-plated, structural hole. It never carries copper.
type Hole struct {
	ID           string  `json:"id,omitempty"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Shape        Shape   `json:"hole_shape"`
	HoleDiameter float64 `json:"hole_diameter,omitempty"`
	HoleWidth    float64 `json:"hole_width,omitempty"`
	HoleHeight   float64 `json:"hole_height,omitempty"`
	Rotation     float64 `json:"ccw_rotation,omitempty"`
}

func (Hole) ElementType() string { return TypeHole }
func (h Hole) Key() string       { return deriveKey(h.ID, TypeHole, h) }

// Pad is a surface-mount copper pad. Points of a polygon pad are absolute
// board coordinates.
type Pad struct {
	ID           string  `json:"id,omitempty"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Shape        Shape   `json:"shape"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Radius       float64 `json:"radius,omitempty"`
	CornerRadius float64 `json:"corner_radius,omitempty"`
	Rotation     float64 `json:"ccw_rotation,omitempty"`
	Points       []Point `json:"points,omitempty"`
	Layer        Layer   `json:"layer"`
}

func (Pad) ElementType() string { return TypePad }
func (p Pad) Key() string       { return deriveKey(p.ID, TypePad, p) }

// Via is a plated through hole connecting copper layers.
type Via struct {
	ID            string  `json:"id,omitempty"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	HoleDiameter  float64 `json:"hole_diameter"`
	OuterDiameter float64 `json:"outer_diameter"`
}

func (Via) ElementType() string { return TypeVia }
func (v Via) Key() string       { return deriveKey(v.ID, TypeVia, v) }

// Cutout is a region removed from the board. Rect and circle cutouts are
// placed at Center; polygon cutouts use absolute Points.
type Cutout struct {
	ID           string  `json:"id,omitempty"`
	BoardID      string  `json:"pcb_board_id,omitempty"`
	Shape        Shape   `json:"shape"`
	Center       Point   `json:"center"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Radius       float64 `json:"radius,omitempty"`
	CornerRadius float64 `json:"corner_radius,omitempty"`
	Rotation     float64 `json:"rotation,omitempty"`
	Points       []Point `json:"points,omitempty"`
}

func (Cutout) ElementType() string { return TypeCutout }
func (c Cutout) Key() string       { return deriveKey(c.ID, TypeCutout, c) }

// BrepVertex is a ring vertex whose Bulge describes the arc to the next
// vertex.
type BrepVertex = geom.Vertex

// Ring is a closed sequence of bulge vertices.
type Ring struct {
	Vertices []BrepVertex `json:"vertices"`
}

// BrepShape is an outer boundary ring with optional inner hole rings.
type BrepShape struct {
	OuterRing  Ring   `json:"outer_ring"`
	InnerRings []Ring `json:"inner_rings,omitempty"`
}

// CopperPour is a filled copper region.
type CopperPour struct {
	ID                    string     `json:"id,omitempty"`
	Shape                 Shape      `json:"shape"`
	Layer                 Layer      `json:"layer"`
	CoveredWithSolderMask bool       `json:"covered_with_solder_mask,omitempty"`
	Center                Point      `json:"center"`
	Width                 float64    `json:"width,omitempty"`
	Height                float64    `json:"height,omitempty"`
	Rotation              float64    `json:"rotation,omitempty"`
	Points                []Point    `json:"points,omitempty"`
	Brep                  *BrepShape `json:"brep_shape,omitempty"`
}

func (CopperPour) ElementType() string { return TypeCopperPour }
func (p CopperPour) Key() string       { return deriveKey(p.ID, TypeCopperPour, p) }
