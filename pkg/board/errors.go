package board

import (
	"errors"
	"fmt"

	"github.com/chazu/boardsolid/pkg/circuit"
)

var (
	// ErrDegenerate marks an element whose parameters cannot produce
	// geometry. Such elements are skipped with a Warning.
	ErrDegenerate = errors.New("degenerate geometry")

	// ErrNoBoard is returned when the input has neither a board nor a panel.
	ErrNoBoard = errors.New("board: input has no board or panel")

	// ErrInvalidBoard wraps structural problems with the board or panel.
	ErrInvalidBoard = errors.New("board: invalid board definition")

	// ErrBuilderFailed is returned by a Builder after a fatal error.
	ErrBuilderFailed = errors.New("board: builder failed")

	// ErrClosed is the cause reported by a builder after Close.
	ErrClosed = errors.New("board: builder closed")

	// ErrNotDone is returned by Results before the build has finished.
	ErrNotDone = errors.New("board: build not finished")

	// ErrAlreadyRunning is returned by Drive and Step while a drive of the
	// same builder is in progress.
	ErrAlreadyRunning = errors.New("board: drive already running")
)

// UnsupportedShapeError reports an element whose shape tag the engine does
// not implement. It is fatal: the input violates its contract.
type UnsupportedShapeError struct {
	Type  string // element type tag
	Key   string
	Shape circuit.Shape
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("board: %s %s has unsupported shape %q", e.Type, e.Key, e.Shape)
}

func unsupported(typ, key string, shape circuit.Shape) error {
	return &UnsupportedShapeError{Type: typ, Key: key, Shape: shape}
}

// Warning records an element that was skipped, in whole or in part.
type Warning struct {
	Type string
	Key  string
	Err  error
}

func (w Warning) String() string {
	return fmt.Sprintf("skipping %s %s: %v", w.Type, w.Key, w.Err)
}

// degenerate formats a message wrapping ErrDegenerate.
func degenerate(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrDegenerate)
}

// partialError marks an element error raised after the element's other
// geometry was committed. The unit's work is kept.
type partialError struct{ err error }

func (e *partialError) Error() string { return e.err.Error() }
func (e *partialError) Unwrap() error { return e.err }

func partial(err error) error { return &partialError{err: err} }

func isPartial(err error) bool {
	var p *partialError
	return errors.As(err, &p)
}

// isFatal reports whether err must abort the build.
func isFatal(err error) bool {
	var u *UnsupportedShapeError
	return errors.As(err, &u)
}

// asDegenerate makes sure a non-fatal element error matches ErrDegenerate.
func asDegenerate(err error) error {
	if errors.Is(err, ErrDegenerate) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDegenerate, err)
}
