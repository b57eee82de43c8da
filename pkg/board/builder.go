package board

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/kernel"
)

// Builder runs a reconstruction incrementally. It owns the working board
// solid and every part built so far; nothing else may modify them.
//
// A Builder is not safe for concurrent use. While a Drive is running,
// Step and Drive on the same builder return ErrAlreadyRunning.
type Builder struct {
	env     *Env
	state   State
	acc     Accumulator
	err     error
	running atomic.Bool
}

// NewBuilder returns a builder for the given elements. No geometry is
// built until the first Step.
func NewBuilder(k kernel.Kernel, elements []circuit.Element, opts Options) *Builder {
	return &Builder{env: NewEnv(k, elements, opts)}
}

// Step advances through up to n units of work and reports whether the
// build is done. A unit is one element, or the shell and finalize steps.
// Stepping a finished builder is a no-op that reports true. While a Drive
// is running, Step returns ErrAlreadyRunning and does nothing.
//
// After a fatal error all committed work is released and every later
// call returns an error wrapping ErrBuilderFailed.
func (b *Builder) Step(n int) (bool, error) {
	if b.running.Load() {
		return false, ErrAlreadyRunning
	}
	return b.step(n)
}

func (b *Builder) step(n int) (bool, error) {
	if b.err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuilderFailed, b.err)
	}
	if n < 1 {
		n = 1
	}
	for i := 0; i < n && !b.state.Done(); i++ {
		next, acc, err := b.env.Advance(b.state, b.acc)
		if err != nil {
			b.fail(err)
			return false, err
		}
		releaseSuperseded(b.acc, acc)
		b.state, b.acc = next, acc
	}
	return b.state.Done(), nil
}

func (b *Builder) fail(err error) {
	releaseAll(b.acc)
	b.acc = Accumulator{}
	b.err = err
}

// State returns the current scheduler position.
func (b *Builder) State() State { return b.state }

// Progress returns the number of completed and total units of work.
func (b *Builder) Progress() (done, total int) {
	total = b.env.Units()
	if b.state.Done() {
		return total, total
	}
	for p := PhaseInitializing; p < b.state.Phase; p++ {
		done += b.env.phaseLen(p)
	}
	return done + b.state.Index, total
}

// Err returns the fatal error that stopped the builder, if any.
func (b *Builder) Err() error { return b.err }

// Warnings returns the elements skipped so far.
func (b *Builder) Warnings() []Warning { return slices.Clone(b.acc.Warnings) }

// Results returns the colored output solids in output order: board,
// plated-hole copper, pads, vias, copper pours.
func (b *Builder) Results() ([]ColoredSolid, error) {
	if b.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuilderFailed, b.err)
	}
	if !b.state.Done() {
		return nil, ErrNotDone
	}
	return slices.Clone(b.acc.Results), nil
}

// Preview returns the board body as it stands, building the shell first
// if no step has run yet. Before the build is done it is a stand-in for
// the full result.
func (b *Builder) Preview() (ColoredSolid, error) {
	if b.state.Phase == PhaseInitializing {
		if _, err := b.Step(1); err != nil {
			return ColoredSolid{}, err
		}
	}
	if b.err != nil {
		return ColoredSolid{}, fmt.Errorf("%w: %w", ErrBuilderFailed, b.err)
	}
	return ColoredSolid{
		Key:   b.acc.BoardKey,
		Kind:  KindBoard,
		Solid: b.acc.Board,
		Color: BoardColor(b.acc.Material),
	}, nil
}

// Close releases every solid the builder owns, results included, and
// retires the builder. Call it once the output has been converted, for
// example to meshes.
func (b *Builder) Close() {
	releaseAll(b.acc)
	b.acc = Accumulator{}
	if b.err == nil {
		b.err = ErrClosed
	}
}
