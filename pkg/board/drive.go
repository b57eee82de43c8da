package board

import (
	"context"
	"runtime"
)

// Drive steps the builder one unit at a time until it is done, yielding
// the processor between units so other goroutines on a busy host keep
// running. It stops early when ctx is cancelled; work already committed is
// kept and a later Drive or Step resumes from there.
//
// Only one Drive may run on a builder at a time. An overlapping Drive or
// Step returns ErrAlreadyRunning without touching the builder.
func (b *Builder) Drive(ctx context.Context) error {
	return b.DriveFunc(ctx, nil)
}

// DriveFunc is Drive with a callback invoked after every unit.
func (b *Builder) DriveFunc(ctx context.Context, progress func(State)) error {
	if !b.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer b.running.Store(false)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := b.step(1)
		if err != nil {
			return err
		}
		if progress != nil {
			progress(b.state)
		}
		if done {
			return nil
		}
		runtime.Gosched()
	}
}
