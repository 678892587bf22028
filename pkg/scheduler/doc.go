// Package scheduler implements a worker pool for executing async work with futures.
//
// The scheduler manages a fixed pool of workers that execute work functions
// concurrently. Work is submitted via AddWork and returns a Future that can
// be used to retrieve the result or cancel the work.
//
// # Core Components
//
// Scheduler:
//   - Manages a pool of N workers (configured at creation)
//   - Maintains a work queue for pending work requests
//   - Runs an event loop dispatching work to available workers
//   - Supports graceful shutdown via Close()
//
// Worker:
//   - Claims the work's slot, then executes the work function
//   - Returns to the worker pool after completion
//   - Recovers from panics and reports them as errors
//
// Future:
//   - Represents a pending result from submitted work
//   - Provides a channel to receive the result
//   - Supports cooperative cancellation via Stop()
//   - Supports preemptive cancellation via TryCancel()
//
// # Slot Mechanism
//
// Every submitted work occupies a slot with three states:
//
//	pending ──(worker claims)──► claimed
//	pending ──(TryCancel)──────► cancelled
//
// Exactly one of the two transitions wins. A worker claims the slot with a
// compare-and-swap immediately before invoking the work function; TryCancel
// revokes it the same way. Work whose slot was revoked never runs: the
// dispatcher settles its future with context.Canceled and no worker is spent
// on it. TryCancel on claimed work returns false, and the caller falls back
// to cooperative cancellation:
//
//	if !future.TryCancel() {
//	    future.Stop() // cancel the running work's context
//	}
//
// # Cancellation
//
// Each work request gets a context derived from the scheduler's main context.
//
// Cancellation hierarchy:
//   - future.TryCancel() → Revokes work that has not started yet
//   - future.Stop() → Cancels individual work's context
//   - scheduler.Close() → Cancels main context (all work)
//
// Work functions should check ctx.Done() to respond to cancellation.
//
// # Graceful Shutdown
//
// Close() cancels the main context, signals the event loop, and waits for
// in-flight workers to finish. Close() is idempotent (uses sync.Once), and
// AddWork after Close returns an already-settled future with
// context.Canceled.
//
// # Usage Example
//
//	sched := scheduler.NewScheduler(4)
//	defer sched.Close()
//
//	future := sched.AddWork(func(ctx context.Context) (any, error) {
//	    time.Sleep(100 * time.Millisecond)
//	    return "done", nil
//	})
//
//	result := <-future.C()
//	if result.Err != nil {
//	    log.Printf("Work failed: %v", result.Err)
//	}
package scheduler
