// Package engine runs board reconstructions on behalf of an interactive
// host. Each request builds in its own goroutine under a time limit; a
// newer request supersedes and cancels the one before it.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chazu/boardsolid/pkg/board"
	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/kernel"
)

// Engine owns a geometry kernel and construction options and serializes
// build requests by generation. It is safe for concurrent use.
type Engine struct {
	kernel  kernel.Kernel
	options board.Options

	// Timeout bounds a single build. Zero means DefaultTimeout.
	Timeout time.Duration
	// Progress, when set, is called from the build goroutine after every
	// unit of work with the request generation.
	Progress func(gen uint64, done, total int)

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

// NewEngine returns an engine building with k and opts.
func NewEngine(k kernel.Kernel, opts board.Options) *Engine {
	return &Engine{kernel: k, options: opts}
}

// Build reconstructs the board described by elements and waits for the
// result.
//
// Return semantics:
//   - On success: returns the colored solids and skip warnings; the caller
//     owns the solids and should Release the result when done.
//   - On an input error (no board, invalid board, unsupported shape):
//     returns the error from the board package.
//   - On timeout, supersession or a backend panic: returns ErrTimeout,
//     ErrSuperseded or a wrapped ErrPanic. Partial work is released.
func (e *Engine) Build(elements []circuit.Element) (board.Result, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	e.mu.Lock()
	e.generation++
	gen := e.generation
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	e.cancel = cancel
	e.mu.Unlock()
	defer cancel()

	ch := make(chan buildResult, 1)

	go func() {
		b := board.NewBuilder(e.kernel, elements, e.options)
		defer func() {
			if r := recover(); r != nil {
				b.Close()
				ch <- buildResult{err: fmt.Errorf("%w: %v", ErrPanic, r)}
			}
		}()

		res, err := e.build(ctx, gen, b)
		ch <- buildResult{result: res, err: err}
	}()

	return waitWithTimeout(ch, gen, timeout, &e.mu, &e.generation)
}

// Generation returns the number of the latest request.
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// build drives b to completion and hands its output over. On any error
// the builder is closed so nothing it built outlives the request.
func (e *Engine) build(ctx context.Context, gen uint64, b *board.Builder) (board.Result, error) {
	var progress func(board.State)
	if e.Progress != nil {
		progress = func(board.State) {
			done, total := b.Progress()
			e.Progress(gen, done, total)
		}
	}
	if err := b.DriveFunc(ctx, progress); err != nil {
		b.Close()
		return board.Result{}, err
	}
	solids, err := b.Results()
	if err != nil {
		b.Close()
		return board.Result{}, err
	}
	// The builder is dropped without Close: the solids now belong to the
	// result.
	return board.Result{Solids: solids, Warnings: b.Warnings()}, nil
}
