package scheduler

import (
	"context"
	"sync/atomic"
)

type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Slot states. Submitted work starts out pending, is claimed by exactly one
// worker before its function runs, and can be revoked only while pending.
const (
	slotPending int32 = iota
	slotClaimed
	slotCancelled
)

// Future is the pending result of submitted work, plus a handle on the slot
// the work occupies until a worker claims it.
type Future[T any] struct {
	input  chan T
	cancel context.CancelFunc
	slot   *atomic.Int32
}

func NewFuture[T any](input chan T, cancel context.CancelFunc, slot *atomic.Int32) *Future[T] {
	return &Future[T]{
		input:  input,
		cancel: cancel,
		slot:   slot,
	}
}

// C returns the channel that receives exactly one result when the work
// completes, or a cancelled result if the slot was revoked first.
func (f *Future[T]) C() chan T {
	return f.input
}

// TryCancel revokes the slot if no worker has claimed it yet. When it
// returns true the work function will never run.
func (f *Future[T]) TryCancel() bool {
	revoked := f.slot.CompareAndSwap(slotPending, slotCancelled)
	if revoked {
		f.cancel()
	}
	return revoked
}

// Stop cancels the work's context. Work that is already running observes the
// cancellation through its context; work that has finished is unaffected.
func (f *Future[T]) Stop() {
	f.cancel()
}
