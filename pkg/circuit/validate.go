package circuit

import (
	"errors"
	"fmt"
	"math"
)

// Severity indicates whether a validation finding blocks a build or is
// merely informational.
type Severity int

const (
	SeverityError   Severity = iota // blocks the build
	SeverityWarning                 // element will be skipped or adjusted
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Type     string   // element type tag, empty for input-level findings
	Key      string   // element key, empty for input-level findings
	Message  string   // human-readable description
	Severity Severity // error or warning
}

func (e ValidationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s %s: %s", e.Severity, e.Type, e.Key, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Type    string
	Key     string
	Message string
}

func (w ValidationWarning) String() string {
	if w.Key == "" {
		return w.Message
	}
	return fmt.Sprintf("%s %s: %s", w.Type, w.Key, w.Message)
}

// ValidationResult bundles errors (blocking) and warnings (advisory) from
// all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether no blocking finding was made.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Err joins all blocking findings into one error, or returns nil.
func (r ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Validate runs the structural checks on the board or panel definition.
// An empty slice means a shell can be built. It never mutates s.
func Validate(s Set) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validatePresence(s)...)
	errs = append(errs, validatePanel(s)...)
	errs = append(errs, validateBoards(s)...)
	return errs
}

// ValidateAll runs the structural checks, the per-element geometric checks
// and the placement advisories, and returns the findings separated by
// severity.
func ValidateAll(s Set) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(s) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{Type: e.Type, Key: e.Key, Message: e.Message})
			continue
		}
		result.Errors = append(result.Errors, e)
	}

	for _, e := range validateElements(s) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{Type: e.Type, Key: e.Key, Message: e.Message})
			continue
		}
		result.Errors = append(result.Errors, e)
	}
	result.Warnings = append(result.Warnings, validateDuplicateKeys(s)...)
	result.Warnings = append(result.Warnings, validateFootprints(s)...)
	return result
}

func validatePresence(s Set) []ValidationError {
	var errs []ValidationError
	if len(s.Boards) == 0 && len(s.Panels) == 0 {
		errs = append(errs, ValidationError{
			Message:  "input has no pcb_board or pcb_panel",
			Severity: SeverityError,
		})
	}
	if len(s.Panels) > 1 {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("%d panels given, only the first is used", len(s.Panels)),
			Severity: SeverityWarning,
		})
	}
	if len(s.Panels) == 0 && len(s.Boards) > 1 {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("%d boards given without a panel, only the first is used", len(s.Boards)),
			Severity: SeverityWarning,
		})
	}
	return errs
}

func validatePanel(s Set) []ValidationError {
	p, ok := s.Panel()
	if !ok {
		return nil
	}
	var errs []ValidationError
	add := func(msg string) {
		errs = append(errs, ValidationError{Type: TypePanel, Key: p.Key(), Message: msg, Severity: SeverityError})
	}
	if !(p.Width > 0) {
		add(fmt.Sprintf("panel width is %.4f, must be positive", p.Width))
	}
	if !(p.Height > 0) {
		add(fmt.Sprintf("panel height is %.4f, must be positive", p.Height))
	}
	if p.Thickness < 0 || math.IsNaN(p.Thickness) {
		add(fmt.Sprintf("panel thickness is %.4f, must be positive", p.Thickness))
	}
	return errs
}

func validateBoards(s Set) []ValidationError {
	var errs []ValidationError
	_, panel := s.Panel()
	for i, b := range s.Boards {
		add := func(msg string) {
			errs = append(errs, ValidationError{Type: TypeBoard, Key: b.Key(), Message: msg, Severity: SeverityError})
		}
		if b.Thickness < 0 || math.IsNaN(b.Thickness) {
			add(fmt.Sprintf("board thickness is %.4f, must be positive", b.Thickness))
		}
		// Only the board that becomes the shell needs a usable outline.
		if panel || i > 0 {
			continue
		}
		switch {
		case len(b.Outline) > 0 && len(b.Outline) < 3:
			add(fmt.Sprintf("board outline has %d points, need at least 3", len(b.Outline)))
		case len(b.Outline) == 0:
			if !(b.Width > 0) || !(b.Height > 0) {
				add(fmt.Sprintf("board without outline needs positive width and height, got %.4f x %.4f", b.Width, b.Height))
			}
		}
	}
	return errs
}

// validateElements reports unknown shape tags as errors and degenerate
// parameters as warnings, mirroring how the builder treats them.
func validateElements(s Set) []ValidationError {
	var errs []ValidationError
	report := func(typ, key string, sev Severity, msg string) {
		errs = append(errs, ValidationError{Type: typ, Key: key, Message: msg, Severity: sev})
	}

	for _, h := range s.PlatedHoles {
		sev, msg := checkPlatedHole(h)
		if msg != "" {
			report(TypePlatedHole, h.Key(), sev, msg)
		}
	}
	for _, h := range s.Holes {
		sev, msg := checkHole(h)
		if msg != "" {
			report(TypeHole, h.Key(), sev, msg)
		}
	}
	for _, p := range s.Pads {
		sev, msg := checkPad(p)
		if msg != "" {
			report(TypePad, p.Key(), sev, msg)
		}
	}
	for _, v := range s.Vias {
		if !(v.HoleDiameter > 0) || !(v.OuterDiameter > v.HoleDiameter) {
			report(TypeVia, v.Key(), SeverityWarning,
				fmt.Sprintf("via outer diameter %.4f must exceed hole diameter %.4f", v.OuterDiameter, v.HoleDiameter))
		}
	}
	for _, c := range s.Cutouts {
		sev, msg := checkCutout(c)
		if msg != "" {
			report(TypeCutout, c.Key(), sev, msg)
		}
	}
	for _, p := range s.CopperPours {
		sev, msg := checkPour(p)
		if msg != "" {
			report(TypeCopperPour, p.Key(), sev, msg)
		}
	}
	return errs
}

func unknownShape(shape Shape) (Severity, string) {
	return SeverityError, fmt.Sprintf("unsupported shape %q", shape)
}

func checkPlatedHole(h PlatedHole) (Severity, string) {
	switch h.Shape {
	case ShapeCircle:
		if !(h.HoleDiameter > 0) {
			return SeverityWarning, fmt.Sprintf("hole diameter %.4f must be positive", h.HoleDiameter)
		}
		if h.OuterDiameter < h.HoleDiameter {
			return SeverityWarning, fmt.Sprintf("outer diameter %.4f must be at least hole diameter %.4f; the bore is drilled without copper", h.OuterDiameter, h.HoleDiameter)
		}
	case ShapePill, ShapeOval, ShapeRotatedPill:
		if !(h.HoleWidth > 0) || !(h.HoleHeight > 0) {
			return SeverityWarning, "hole width and height must be positive"
		}
		if h.OuterWidth < h.HoleWidth || h.OuterHeight < h.HoleHeight {
			return SeverityWarning, "outer size must be at least the hole size; the bore is drilled without copper"
		}
	case ShapeCircularHoleWithRectPad:
		if !(h.HoleDiameter > 0) || !(h.RectPadWidth > 0) || !(h.RectPadHeight > 0) {
			return SeverityWarning, "hole diameter and rect pad size must be positive"
		}
	case ShapePillHoleWithRectPad, ShapeRotatedPillHoleWithRectPad:
		if !(h.HoleWidth > 0) || !(h.HoleHeight > 0) || !(h.RectPadWidth > 0) || !(h.RectPadHeight > 0) {
			return SeverityWarning, "hole size and rect pad size must be positive"
		}
	case ShapeHoleWithPolygonPad:
		if len(h.PadOutline) < 3 {
			return SeverityWarning, fmt.Sprintf("pad outline has %d points, need at least 3", len(h.PadOutline))
		}
		switch h.HoleShape {
		case ShapeCircle, "":
			if !(h.HoleDiameter > 0) {
				return SeverityWarning, "hole diameter must be positive"
			}
		case ShapePill, ShapeOval, ShapeRotatedPill:
			if !(h.HoleWidth > 0) || !(h.HoleHeight > 0) {
				return SeverityWarning, "hole width and height must be positive"
			}
		default:
			return unknownShape(h.HoleShape)
		}
	default:
		return unknownShape(h.Shape)
	}
	return 0, ""
}

func checkHole(h Hole) (Severity, string) {
	switch h.Shape {
	case ShapeCircle:
		if !(h.HoleDiameter > 0) {
			return SeverityWarning, "hole diameter must be positive"
		}
	case ShapePill, ShapeOval, ShapeRotatedPill:
		if !(h.HoleWidth > 0) || !(h.HoleHeight > 0) {
			return SeverityWarning, "hole width and height must be positive"
		}
	default:
		return unknownShape(h.Shape)
	}
	return 0, ""
}

func checkPad(p Pad) (Severity, string) {
	switch p.Shape {
	case ShapeRect, ShapeRotatedRect:
		if !(p.Width > 0) || !(p.Height > 0) {
			return SeverityWarning, "pad width and height must be positive"
		}
	case ShapeCircle:
		if !(p.Radius > 0) {
			return SeverityWarning, "pad radius must be positive"
		}
	case ShapePolygon:
		if len(p.Points) < 3 {
			return SeverityWarning, fmt.Sprintf("polygon has %d points, need at least 3", len(p.Points))
		}
	default:
		return unknownShape(p.Shape)
	}
	if p.Layer != LayerTop && p.Layer != LayerBottom {
		return SeverityWarning, fmt.Sprintf("layer %q is not top or bottom", p.Layer)
	}
	return 0, ""
}

func checkCutout(c Cutout) (Severity, string) {
	switch c.Shape {
	case ShapeRect:
		if !(c.Width > 0) || !(c.Height > 0) {
			return SeverityWarning, "cutout width and height must be positive"
		}
	case ShapeCircle:
		if !(c.Radius > 0) {
			return SeverityWarning, "cutout radius must be positive"
		}
	case ShapePolygon:
		if len(c.Points) < 3 {
			return SeverityWarning, fmt.Sprintf("polygon has %d points, need at least 3", len(c.Points))
		}
	default:
		return unknownShape(c.Shape)
	}
	return 0, ""
}

func checkPour(p CopperPour) (Severity, string) {
	switch p.Shape {
	case ShapeRect:
		if !(p.Width > 0) || !(p.Height > 0) {
			return SeverityWarning, "pour width and height must be positive"
		}
	case ShapePolygon:
		if len(p.Points) < 3 {
			return SeverityWarning, fmt.Sprintf("polygon has %d points, need at least 3", len(p.Points))
		}
	case ShapeBrep:
		if p.Brep == nil || len(p.Brep.OuterRing.Vertices) < 3 {
			return SeverityWarning, "brep outer ring needs at least 3 vertices"
		}
	default:
		return unknownShape(p.Shape)
	}
	if p.Layer != LayerTop && p.Layer != LayerBottom {
		return SeverityWarning, fmt.Sprintf("layer %q is not top or bottom", p.Layer)
	}
	return 0, ""
}

// validateDuplicateKeys warns when two elements of the same type share a
// key, since cached results keyed on them would collide.
func validateDuplicateKeys(s Set) []ValidationWarning {
	var warnings []ValidationWarning
	seen := make(map[string]bool)
	check := func(typ, key string) {
		id := typ + "/" + key
		if seen[id] {
			warnings = append(warnings, ValidationWarning{Type: typ, Key: key, Message: "duplicate element key"})
			return
		}
		seen[id] = true
	}
	for _, e := range s.PlatedHoles {
		check(TypePlatedHole, e.Key())
	}
	for _, e := range s.Holes {
		check(TypeHole, e.Key())
	}
	for _, e := range s.Pads {
		check(TypePad, e.Key())
	}
	for _, e := range s.Vias {
		check(TypeVia, e.Key())
	}
	for _, e := range s.Cutouts {
		check(TypeCutout, e.Key())
	}
	for _, e := range s.CopperPours {
		check(TypeCopperPour, e.Key())
	}
	return warnings
}
