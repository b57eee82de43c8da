package circuit

// Set holds input elements grouped by type, each group in input order.
type Set struct {
	Boards      []Board
	Panels      []Panel
	PlatedHoles []PlatedHole
	Holes       []Hole
	Pads        []Pad
	Vias        []Via
	Cutouts     []Cutout
	CopperPours []CopperPour

	// Unknown counts elements of types the engine does not build.
	Unknown int
}

// Partition groups elements by type in a single pass. Both value and
// pointer records are accepted.
func Partition(elements []Element) Set {
	var s Set
	for _, e := range elements {
		switch v := e.(type) {
		case Board:
			s.Boards = append(s.Boards, v)
		case *Board:
			s.Boards = append(s.Boards, *v)
		case Panel:
			s.Panels = append(s.Panels, v)
		case *Panel:
			s.Panels = append(s.Panels, *v)
		case PlatedHole:
			s.PlatedHoles = append(s.PlatedHoles, v)
		case *PlatedHole:
			s.PlatedHoles = append(s.PlatedHoles, *v)
		case Hole:
			s.Holes = append(s.Holes, v)
		case *Hole:
			s.Holes = append(s.Holes, *v)
		case Pad:
			s.Pads = append(s.Pads, v)
		case *Pad:
			s.Pads = append(s.Pads, *v)
		case Via:
			s.Vias = append(s.Vias, v)
		case *Via:
			s.Vias = append(s.Vias, *v)
		case Cutout:
			s.Cutouts = append(s.Cutouts, v)
		case *Cutout:
			s.Cutouts = append(s.Cutouts, *v)
		case CopperPour:
			s.CopperPours = append(s.CopperPours, v)
		case *CopperPour:
			s.CopperPours = append(s.CopperPours, *v)
		default:
			s.Unknown++
		}
	}
	return s
}

// Panel returns the authoritative panel, if any.
func (s Set) Panel() (Panel, bool) {
	if len(s.Panels) == 0 {
		return Panel{}, false
	}
	return s.Panels[0], true
}

// Board returns the authoritative board, if any.
func (s Set) Board() (Board, bool) {
	if len(s.Boards) == 0 {
		return Board{}, false
	}
	return s.Boards[0], true
}

// Len returns the number of buildable elements, boards and panels
// included.
func (s Set) Len() int {
	return len(s.Boards) + len(s.Panels) + len(s.PlatedHoles) + len(s.Holes) +
		len(s.Pads) + len(s.Vias) + len(s.Cutouts) + len(s.CopperPours)
}
