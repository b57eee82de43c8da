package board

import (
	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/kernel"
)

// Env is the fixed context of a build: the kernel, the partitioned input
// and the options. It holds no mutable state.
type Env struct {
	Kernel  kernel.Kernel
	Input   circuit.Set
	Options Options
}

// NewEnv partitions elements and returns the build context.
func NewEnv(k kernel.Kernel, elements []circuit.Element, opts Options) *Env {
	return &Env{Kernel: k, Input: circuit.Partition(elements), Options: opts}
}

// phaseLen returns the number of work units in a phase.
func (e *Env) phaseLen(p Phase) int {
	switch p {
	case PhaseInitializing, PhaseFinalizing:
		return 1
	case PhasePads:
		return len(e.Input.Pads)
	case PhaseCopperPours:
		return len(e.Input.CopperPours)
	case PhasePlatedHoles:
		return len(e.Input.PlatedHoles)
	case PhaseHoles:
		return len(e.Input.Holes)
	case PhaseCutouts:
		return len(e.Input.Cutouts)
	case PhaseVias:
		return len(e.Input.Vias)
	default:
		return 0
	}
}

// normalize moves s past exhausted and empty phases.
func (e *Env) normalize(s State) State {
	for !s.Done() && s.Index >= e.phaseLen(s.Phase) {
		s = State{Phase: s.Phase + 1}
	}
	return s
}

// Units returns the total number of Advance calls a build takes.
func (e *Env) Units() int {
	n := 0
	for p := PhaseInitializing; p < PhaseDone; p++ {
		n += e.phaseLen(p)
	}
	return n
}

// Advance performs one unit of work: build the shell, process one
// element, or finalize. It returns the next state and a new accumulator;
// acc itself is left untouched and stays valid.
//
// Every intermediate solid created during the call is released before it
// returns, on every path. Solids of acc that the new accumulator no longer
// references are not released here; that is the owner's job once it
// commits the new accumulator.
//
// Degenerate elements are recorded as warnings and skipped; a plated hole
// whose copper alone is degenerate is drilled bare and warned about. Unsupported
// shapes and an invalid board are returned as errors, with acc unchanged.
// Advancing a done state is a no-op.
func (e *Env) Advance(s State, acc Accumulator) (State, Accumulator, error) {
	s = e.normalize(s)
	if s.Done() {
		return s, acc, nil
	}

	arena := kernel.NewArena()
	defer arena.Release()
	k := arena.Kernel(e.Kernel)

	next, err := e.unit(k, s, acc.clone())
	if err != nil {
		if s.Phase == PhaseInitializing || isFatal(err) {
			return s, acc, err
		}
		if !isPartial(err) {
			next = acc.clone()
		}
		next = e.warn(next, s, err)
	}
	next = e.endOfPhase(k, s, next)

	arena.Keep(next.solids()...)
	return e.normalize(State{Phase: s.Phase, Index: s.Index + 1}), next, nil
}

// unit dispatches the work for state s.
func (e *Env) unit(k kernel.Kernel, s State, acc Accumulator) (Accumulator, error) {
	switch s.Phase {
	case PhaseInitializing:
		return e.initialize(k, acc)
	case PhasePads:
		return e.addPad(k, acc, e.Input.Pads[s.Index])
	case PhaseCopperPours:
		return e.addPour(k, acc, e.Input.CopperPours[s.Index])
	case PhasePlatedHoles:
		return e.addPlatedHole(k, acc, e.Input.PlatedHoles[s.Index])
	case PhaseHoles:
		return e.addHole(k, acc, e.Input.Holes[s.Index])
	case PhaseCutouts:
		return e.addCutout(k, acc, e.Input.Cutouts[s.Index])
	case PhaseVias:
		return e.addVia(k, acc, e.Input.Vias[s.Index])
	case PhaseFinalizing:
		acc.Results = colorize(acc)
		acc.Clip = nil
		return acc, nil
	}
	return acc, nil
}

// endOfPhase runs the work that closes a phase after its last element.
func (e *Env) endOfPhase(k kernel.Kernel, s State, acc Accumulator) Accumulator {
	if s.Index != e.phaseLen(s.Phase)-1 {
		return acc
	}
	switch s.Phase {
	case PhaseCopperPours:
		acc.PourMask = nil
	case PhaseCutouts:
		acc = carveCutouts(k, acc)
	}
	return acc
}

// warn records and logs a skipped element.
func (e *Env) warn(acc Accumulator, s State, err error) Accumulator {
	typ, key := e.element(s)
	w := Warning{Type: typ, Key: key, Err: asDegenerate(err)}
	acc.Warnings = append(acc.Warnings, w)
	e.Options.logger().Printf("board: %s", w)
	return acc
}

// element names the input element processed in state s.
func (e *Env) element(s State) (typ, key string) {
	switch s.Phase {
	case PhasePads:
		return circuit.TypePad, e.Input.Pads[s.Index].Key()
	case PhaseCopperPours:
		return circuit.TypeCopperPour, e.Input.CopperPours[s.Index].Key()
	case PhasePlatedHoles:
		return circuit.TypePlatedHole, e.Input.PlatedHoles[s.Index].Key()
	case PhaseHoles:
		return circuit.TypeHole, e.Input.Holes[s.Index].Key()
	case PhaseCutouts:
		return circuit.TypeCutout, e.Input.Cutouts[s.Index].Key()
	case PhaseVias:
		return circuit.TypeVia, e.Input.Vias[s.Index].Key()
	}
	return s.Phase.String(), ""
}
