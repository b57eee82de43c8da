// Package board reconstructs the 3D solid model of a printed circuit board
// from its circuit records.
//
// Work is split into units driven by a pure transition function,
// Env.Advance. Builder steps through those units incrementally for hosts
// that must stay responsive; Build runs them all at once.
package board

import (
	"log"

	"github.com/chazu/boardsolid/pkg/geom"
	"github.com/chazu/boardsolid/pkg/primitive"
)

// Default construction parameters, in millimetres.
const (
	DefaultClipMargin           = 0.01
	DefaultClipZMargin          = 0.1
	DefaultCutOvershoot         = 0.1
	DefaultCopperThickness      = 0.035
	DefaultSurfaceOffset        = 0.001
	DefaultPlatingThickness     = 0.025
	DefaultPolygonPadHoleMargin = 0.02
)

// Options tunes solid construction. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	// ClipMargin is the lateral outset of the clip volume.
	ClipMargin float64 `mapstructure:"clip_margin"`
	// ClipZMargin extends the clip volume above and below the board.
	ClipZMargin float64 `mapstructure:"clip_z_margin"`
	// CutOvershoot extends drills and cutouts beyond both board faces.
	CutOvershoot     float64 `mapstructure:"cut_overshoot"`
	CopperThickness  float64 `mapstructure:"copper_thickness"`
	SurfaceOffset    float64 `mapstructure:"surface_offset"`
	PlatingThickness float64 `mapstructure:"plating_thickness"`
	// PolygonPadHoleMargin grows the board drill and shrinks the copper
	// bore of polygon-pad holes.
	PolygonPadHoleMargin float64 `mapstructure:"polygon_pad_hole_margin"`

	OuterSegments int     `mapstructure:"outer_segments"`
	InnerSegments int     `mapstructure:"inner_segments"`
	ArcResolution float64 `mapstructure:"arc_resolution"`

	// CutPoursAtHoles subtracts every hole and via drill from copper pours.
	CutPoursAtHoles bool `mapstructure:"cut_pours_at_holes"`

	// Logger receives skip warnings. Nil means log.Default().
	Logger *log.Logger `mapstructure:"-"`
}

// DefaultOptions returns the standard construction parameters.
func DefaultOptions() Options {
	return Options{
		ClipMargin:           DefaultClipMargin,
		ClipZMargin:          DefaultClipZMargin,
		CutOvershoot:         DefaultCutOvershoot,
		CopperThickness:      DefaultCopperThickness,
		SurfaceOffset:        DefaultSurfaceOffset,
		PlatingThickness:     DefaultPlatingThickness,
		PolygonPadHoleMargin: DefaultPolygonPadHoleMargin,
		OuterSegments:        primitive.OuterSegments,
		InnerSegments:        primitive.InnerSegments,
		ArcResolution:        geom.DefaultArcResolution,
		CutPoursAtHoles:      true,
	}
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// copperZ returns the z center of copper on the given face of a board of
// thickness t. top selects the upper face.
func (o Options) copperZ(t float64, top bool) float64 {
	z := t/2 + o.SurfaceOffset + o.CopperThickness/2
	if !top {
		return -z
	}
	return z
}

// copperSpan is the height from the bottom of bottom copper to the top of
// top copper.
func (o Options) copperSpan(t float64) float64 {
	return t + 2*(o.SurfaceOffset+o.CopperThickness)
}

// cutDepth is the height of drills and cutout tools.
func (o Options) cutDepth(t float64) float64 {
	return t + 2*o.CutOvershoot
}
