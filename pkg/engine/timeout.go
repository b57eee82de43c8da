package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chazu/boardsolid/pkg/board"
)

// DefaultTimeout is the limit for a single build.
const DefaultTimeout = 30 * time.Second

var (
	// ErrTimeout is returned when a build exceeds its time limit.
	ErrTimeout = errors.New("engine: build timed out")
	// ErrSuperseded is returned when a newer request started before a
	// build finished.
	ErrSuperseded = errors.New("engine: build superseded by newer request")
	// ErrPanic wraps a panic raised by the geometry backend.
	ErrPanic = errors.New("engine: panic during build")
)

// buildResult is passed from the build goroutine through a channel.
type buildResult struct {
	result board.Result
	err    error
}

// waitWithTimeout waits for a result from ch, but returns ErrTimeout if the
// build exceeds timeout. It uses a generation counter to discard stale
// results from previous requests; their solids are released.
//
// On timeout the goroutine may still be running; its result is drained
// and released when it eventually completes.
func waitWithTimeout(
	ch <-chan buildResult,
	gen uint64,
	timeout time.Duration,
	mu *sync.Mutex,
	currentGen *uint64,
) (board.Result, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			res.result.Release()
			return board.Result{}, ErrSuperseded
		}
		if errors.Is(res.err, context.DeadlineExceeded) {
			return board.Result{}, fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		return res.result, res.err

	case <-timer.C:
		go func() {
			res := <-ch
			res.result.Release()
		}()
		return board.Result{}, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}
