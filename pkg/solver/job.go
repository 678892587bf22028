package solver

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	srverrors "github.com/ddsimoes/optaplanner/pkg/errors"
	"github.com/ddsimoes/optaplanner/pkg/scheduler"
)

// ProblemFinder loads the problem instance for a submitted id.
type ProblemFinder[S any, ID comparable] func(ctx context.Context, id ID) (S, error)

// ExceptionHandler is notified at most once per job when solving fails.
// It must not panic.
type ExceptionHandler[ID comparable] func(id ID, err error)

// SolutionConsumer receives the final solution of a successful job. It runs
// on the worker goroutine, at most once, and never after a cancelled or
// failed outcome.
type SolutionConsumer[S any] func(solution S)

// Job tracks one submitted problem through its lifetime: scheduled on the
// pool, actively solving on a worker goroutine, and terminated. Any number
// of goroutines may query its status, wait for the final solution, or
// request early termination; the worker goroutine alone drives the status
// machine forward.
type Job[S any, ID comparable] struct {
	id       ID
	solver   Solver[S]
	finder   ProblemFinder[S, ID]
	consumer SolutionConsumer[S]
	onError  ExceptionHandler[ID]
	remove   func(id ID)

	status atomic.Int32

	// terminated is closed exactly once when cleanup finishes; cleanup
	// guards the close across the worker path and the preemptive-cancel
	// path. Anyone who observes the close also observes the final
	// solution, the recorded error, StatusTerminated and the
	// deregistration, in that order.
	terminated chan struct{}
	cleanup    sync.Once

	// slot is assigned once by the manager right after submission and
	// published through slotReady, so early-termination callers can
	// never observe a half-constructed job.
	slot      *scheduler.Future[scheduler.Result[any]]
	slotReady chan struct{}

	solution S
	err      error

	log *zap.SugaredLogger
}

func newJob[S any, ID comparable](
	id ID,
	sv Solver[S],
	finder ProblemFinder[S, ID],
	consumer SolutionConsumer[S],
	onError ExceptionHandler[ID],
	remove func(id ID),
) *Job[S, ID] {
	j := &Job[S, ID]{
		id:         id,
		solver:     sv,
		finder:     finder,
		consumer:   consumer,
		onError:    onError,
		remove:     remove,
		terminated: make(chan struct{}),
		slotReady:  make(chan struct{}),
		log:        zap.S().Named("solver_job"),
	}
	j.status.Store(int32(StatusScheduled))
	return j
}

// ProblemID returns the id the job was submitted under.
func (j *Job[S, ID]) ProblemID() ID {
	return j.id
}

// Status returns a snapshot of the job's current state. It never blocks.
// The job may move on concurrently, so the value can be stale by the time
// the caller acts on it.
func (j *Job[S, ID]) Status() Status {
	return Status(j.status.Load())
}

// setSlot installs the cancellable execution slot. Called exactly once by
// the manager, after the body has been handed to the scheduler.
func (j *Job[S, ID]) setSlot(f *scheduler.Future[scheduler.Result[any]]) {
	j.slot = f
	close(j.slotReady)
}

// solve is the execution body, invoked exactly once on a pool worker.
func (j *Job[S, ID]) solve(ctx context.Context) (result any, err error) {
	j.status.Store(int32(StatusActive))
	defer j.finish()
	// A panicking finder or solver must surface as the job's recorded
	// failure, not unwind past finish with the outcome unset. Registered
	// after finish so it records the error before the terminal transition.
	defer func() {
		if rec := recover(); rec != nil {
			result, err = nil, j.fail(fmt.Errorf("solver panicked: %v", rec))
		}
	}()

	problem, err := j.finder(ctx, j.id)
	if err != nil {
		return nil, j.fail(err)
	}

	solution, err := j.solver.Solve(ctx, problem)
	if err != nil {
		return nil, j.fail(err)
	}

	if j.consumer != nil {
		// Delivery runs on the worker goroutine, so consumer latency
		// delays the job's own completion signal. TODO hand delivery
		// off to a dedicated consumer goroutine.
		if err := j.deliver(solution); err != nil {
			return nil, j.fail(err)
		}
	}

	j.solution = solution
	return solution, nil
}

func (j *Job[S, ID]) deliver(solution S) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("final solution consumer panicked: %v", rec)
		}
	}()
	j.consumer(solution)
	return nil
}

// fail reports the failure once and records the wrapped error as the job's
// outcome.
func (j *Job[S, ID]) fail(cause error) error {
	j.log.Errorw("solving failed", "problemId", j.id, "error", cause)
	if j.onError != nil {
		j.onError(j.id, cause)
	}
	j.err = srverrors.NewExecutionError(j.id, cause)
	return j.err
}

// finish performs the terminal transition: deregister from the manager
// index, move the status to terminated, then release the completion signal.
// It is shared by the worker path and the preemptive-cancel path and runs
// at most once per job.
func (j *Job[S, ID]) finish() {
	j.cleanup.Do(func() {
		j.remove(j.id)
		j.status.Store(int32(StatusTerminated))
		close(j.terminated)
	})
}

// FinalSolution blocks until the job has terminated, then returns the final
// solution or the recorded failure. It is safe to call from any number of
// goroutines, before or after termination; every caller gets the same
// outcome. The error is srverrors.ErrJobCancelled when the job never ran,
// a *srverrors.ExecutionError when the body failed, or the caller's own
// context error when the wait itself is interrupted (the job is unaffected).
func (j *Job[S, ID]) FinalSolution(ctx context.Context) (S, error) {
	var zero S
	select {
	case <-j.terminated:
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	if j.err != nil {
		return zero, j.err
	}
	return j.solution, nil
}

// TerminateEarly requests early termination and blocks until the job can no
// longer produce effects. If the body has not started, its slot is revoked
// and the job terminates immediately without the solver ever running.
// Otherwise the solver is asked to stop cooperatively and the call waits for
// the worker's cleanup, so that after it returns the solution consumer will
// never be invoked again and Status reports terminated.
//
// It is idempotent and safe to call from any goroutine, but not from the
// job's own consumer or exception handler: those run on the worker
// goroutine this call may be waiting for.
func (j *Job[S, ID]) TerminateEarly(ctx context.Context) error {
	select {
	case <-j.slotReady:
	case <-ctx.Done():
		return ctx.Err()
	}

	if j.slot.TryCancel() {
		// The body never ran and never will. Record the outcome and
		// run the terminal transition ourselves.
		j.err = srverrors.ErrJobCancelled
		j.finish()
		return nil
	}

	// The job is actively solving or has already terminated. Request a
	// cooperative stop and don't return until the solution consumer
	// can't be called any more.
	j.solver.TerminateEarly()
	select {
	case <-j.terminated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
