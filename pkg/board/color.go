package board

import "github.com/chazu/boardsolid/pkg/circuit"

// Color is an RGB triple with components in [0, 1].
type Color [3]float64

// Float32 converts c for mesh output.
func (c Color) Float32() [3]float32 {
	return [3]float32{float32(c[0]), float32(c[1]), float32(c[2])}
}

var (
	ColorFR4         = Color{0.05, 0.30, 0.15}
	ColorFR1         = Color{0.80, 0.55, 0.30}
	ColorCopper      = Color{0.90, 0.60, 0.20}
	ColorMaskedPour  = Color{0.10, 0.45, 0.20}
	ColorExposedPour = ColorCopper
)

// BoardColor returns the body color for a substrate. Unknown materials
// render as FR-4.
func BoardColor(m circuit.Material) Color {
	switch m {
	case circuit.MaterialFR1:
		return ColorFR1
	default:
		return ColorFR4
	}
}

// PourColor returns the color of a copper pour.
func PourColor(masked bool) Color {
	if masked {
		return ColorMaskedPour
	}
	return ColorExposedPour
}

// colorize attaches colors to the finished parts in output order: board,
// plated-hole copper, pads, vias, copper pours.
func colorize(acc Accumulator) []ColoredSolid {
	out := make([]ColoredSolid, 0, 1+len(acc.PlatedCopper)+len(acc.Pads)+len(acc.Vias)+len(acc.Pours))
	out = append(out, ColoredSolid{
		Key:   acc.BoardKey,
		Kind:  KindBoard,
		Solid: acc.Board,
		Color: BoardColor(acc.Material),
	})
	for _, p := range acc.PlatedCopper {
		out = append(out, ColoredSolid{Key: p.Key, Kind: KindPlatedHole, Solid: p.Solid, Color: ColorCopper})
	}
	for _, p := range acc.Pads {
		out = append(out, ColoredSolid{Key: p.Key, Kind: KindPad, Solid: p.Solid, Color: ColorCopper})
	}
	for _, p := range acc.Vias {
		out = append(out, ColoredSolid{Key: p.Key, Kind: KindVia, Solid: p.Solid, Color: ColorCopper})
	}
	for _, p := range acc.Pours {
		out = append(out, ColoredSolid{Key: p.Key, Kind: KindCopperPour, Solid: p.Solid, Color: PourColor(p.Masked)})
	}
	return out
}
