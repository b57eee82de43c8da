package board

import (
	"context"
	"testing"

	"github.com/chazu/boardsolid/pkg/circuit"
	"github.com/chazu/boardsolid/pkg/kernel/sdfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriveToCompletion(t *testing.T) {
	elements := mixedBoard()
	b := NewBuilder(sdfx.New(), elements[:len(elements)-1], quietOptions())
	defer b.Close()

	var seen []State
	err := b.DriveFunc(context.Background(), func(s State) { seen = append(seen, s) })
	require.NoError(t, err)

	_, total := b.Progress()
	assert.Len(t, seen, total)
	assert.True(t, seen[len(seen)-1].Done())

	out, err := b.Results()
	require.NoError(t, err)
	assert.Len(t, out, 6)
}

func TestDriveCancelled(t *testing.T) {
	b := NewBuilder(sdfx.New(), []circuit.Element{
		circuit.Board{Width: 10, Height: 10},
		circuit.Hole{Shape: circuit.ShapeCircle, HoleDiameter: 1},
	}, quietOptions())
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	err := b.DriveFunc(ctx, func(State) {
		steps++
		cancel()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, steps)
	assert.Equal(t, PhaseHoles, b.State().Phase)

	// Committed work is kept and the build resumes.
	require.NoError(t, b.Drive(context.Background()))
	assert.True(t, b.State().Done())
}

func TestDriveOverlap(t *testing.T) {
	b := NewBuilder(sdfx.New(), []circuit.Element{circuit.Board{Width: 10, Height: 10}}, quietOptions())
	defer b.Close()

	b.running.Store(true)
	assert.ErrorIs(t, b.Drive(context.Background()), ErrAlreadyRunning)
	assert.Equal(t, PhaseInitializing, b.State().Phase, "overlapping drive must not step")

	b.running.Store(false)
	require.NoError(t, b.Drive(context.Background()))
}

func TestDriveStopsOnFatalError(t *testing.T) {
	b := NewBuilder(sdfx.New(), mixedBoard(), quietOptions())
	defer b.Close()

	err := b.Drive(context.Background())
	var u *UnsupportedShapeError
	require.ErrorAs(t, err, &u)
	assert.ErrorIs(t, b.Drive(context.Background()), ErrBuilderFailed)
}

func TestStepDuringDrive(t *testing.T) {
	b := NewBuilder(sdfx.New(), []circuit.Element{
		circuit.Board{Width: 10, Height: 10},
		circuit.Hole{Shape: circuit.ShapeCircle, HoleDiameter: 1},
		circuit.Hole{Shape: circuit.ShapeCircle, X: 2, HoleDiameter: 1},
	}, quietOptions())
	defer b.Close()

	var stepErrs []error
	var states []State
	err := b.DriveFunc(context.Background(), func(s State) {
		before := b.State()
		_, err := b.Step(1)
		stepErrs = append(stepErrs, err)
		assert.Equal(t, before, b.State(), "Step during a drive must not advance")
		states = append(states, s)
	})
	require.NoError(t, err)

	_, total := b.Progress()
	require.Len(t, stepErrs, total)
	for i, err := range stepErrs {
		assert.ErrorIs(t, err, ErrAlreadyRunning, "unit %d", i)
	}
	assert.True(t, states[len(states)-1].Done())

	// Once the drive has returned, Step works again.
	done, err := b.Step(1)
	require.NoError(t, err)
	assert.True(t, done)
}
