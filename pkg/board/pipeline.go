package board

import (
	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/kernel"
)

// Result is the output of a batch build.
type Result struct {
	Solids   []ColoredSolid
	Warnings []Warning
}

// Release frees every output solid.
func (r Result) Release() {
	arena := kernel.NewArena()
	for _, s := range r.Solids {
		arena.Retire(s.Solid)
	}
	arena.Release()
}

// Build runs the whole reconstruction without yielding. It performs the
// same sequence of Advance calls as a Builder does, so its output matches
// any incremental run over the same input.
func Build(k kernel.Kernel, elements []circuit.Element, opts Options) (Result, error) {
	env := NewEnv(k, elements, opts)
	var s State
	var acc Accumulator
	for !s.Done() {
		next, nacc, err := env.Advance(s, acc)
		if err != nil {
			releaseAll(acc)
			return Result{}, err
		}
		releaseSuperseded(acc, nacc)
		s, acc = next, nacc
	}
	return Result{Solids: acc.Results, Warnings: acc.Warnings}, nil
}
