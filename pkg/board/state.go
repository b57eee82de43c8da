package board

import (
	"fmt"
	"slices"

	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/kernel"
)

// Phase is a stage of the reconstruction. Phases run in declaration order.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhasePads
	PhaseCopperPours
	PhasePlatedHoles
	PhaseHoles
	PhaseCutouts
	PhaseVias
	PhaseFinalizing
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhasePads:
		return "processing_pads"
	case PhaseCopperPours:
		return "processing_copper_pours"
	case PhasePlatedHoles:
		return "processing_plated_holes"
	case PhaseHoles:
		return "processing_holes"
	case PhaseCutouts:
		return "processing_cutouts"
	case PhaseVias:
		return "processing_vias"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the scheduler position: a phase and a cursor into that phase's
// element list. The zero State is the start of a build.
type State struct {
	Phase Phase
	Index int
}

// Done reports whether the build has finished.
func (s State) Done() bool { return s.Phase >= PhaseDone }

func (s State) String() string {
	return fmt.Sprintf("%s[%d]", s.Phase, s.Index)
}

// Kind classifies an output solid.
type Kind string

const (
	KindBoard      Kind = "board"
	KindPlatedHole Kind = "plated_hole"
	KindPad        Kind = "pad"
	KindVia        Kind = "via"
	KindCopperPour Kind = "copper_pour"
)

// ColoredSolid is one output part.
type ColoredSolid struct {
	Key   string
	Kind  Kind
	Solid kernel.Solid
	Color Color
}

// Part is a keyed solid under construction.
type Part struct {
	Key   string
	Solid kernel.Solid
}

// PourPart is a copper pour under construction.
type PourPart struct {
	Part
	Masked bool
}

// Accumulator is the committed work of a build. Advance never modifies the
// accumulator it is given; it returns a new one.
type Accumulator struct {
	BoardKey  string
	Board     kernel.Solid // working board solid
	Clip      kernel.Solid // clip volume, never output
	Thickness float64
	Material  circuit.Material

	Pads         []Part
	Pours        []PourPart
	PlatedCopper []Part
	Vias         []Part

	// CutoutTools collects cutout prisms until the cutout phase ends.
	CutoutTools []kernel.Solid
	// PourMask is the union of all drills, built on the first pour and
	// dropped when the pour phase ends.
	PourMask     kernel.Solid
	pourMaskDone bool

	Warnings []Warning
	Results  []ColoredSolid
}

// clone copies the slices of a so element replacement does not leak into
// the original.
func (a Accumulator) clone() Accumulator {
	a.Pads = slices.Clone(a.Pads)
	a.Pours = slices.Clone(a.Pours)
	a.PlatedCopper = slices.Clone(a.PlatedCopper)
	a.Vias = slices.Clone(a.Vias)
	a.CutoutTools = slices.Clone(a.CutoutTools)
	a.Warnings = slices.Clone(a.Warnings)
	a.Results = slices.Clone(a.Results)
	return a
}

// solids lists every solid a references.
func (a Accumulator) solids() []kernel.Solid {
	var out []kernel.Solid
	add := func(s kernel.Solid) {
		if s != nil {
			out = append(out, s)
		}
	}
	add(a.Board)
	add(a.Clip)
	add(a.PourMask)
	for _, p := range a.Pads {
		add(p.Solid)
	}
	for _, p := range a.Pours {
		add(p.Solid)
	}
	for _, p := range a.PlatedCopper {
		add(p.Solid)
	}
	for _, p := range a.Vias {
		add(p.Solid)
	}
	for _, s := range a.CutoutTools {
		add(s)
	}
	return out
}

// releaseSuperseded frees the solids of prev that next no longer
// references.
func releaseSuperseded(prev, next Accumulator) {
	live := make(map[kernel.Solid]bool)
	for _, s := range next.solids() {
		live[s] = true
	}
	arena := kernel.NewArena()
	for _, s := range prev.solids() {
		if !live[s] {
			arena.Retire(s)
		}
	}
	arena.Release()
}

// releaseAll frees every solid a references.
func releaseAll(a Accumulator) {
	arena := kernel.NewArena()
	arena.Retire(a.solids()...)
	arena.Release()
}
