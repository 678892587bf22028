package solver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	srverrors "github.com/ddsimoes/optaplanner/pkg/errors"
	"github.com/ddsimoes/optaplanner/pkg/scheduler"
)

// ErrManagerClosed is returned by Solve after Close has been called.
var ErrManagerClosed = errors.New("solver manager is closed")

// Manager owns the job index and the worker pool. It accepts problem
// submissions, hands their execution bodies to the pool, and tracks every
// in-flight job by problem id until the job deregisters itself on
// termination.
type Manager[S any, ID comparable] struct {
	factory Factory[S]
	pool    *scheduler.Scheduler
	onError ExceptionHandler[ID]

	mu     sync.Mutex
	jobs   map[ID]*Job[S, ID]
	closed bool

	log *zap.SugaredLogger
}

// NewManager creates a manager running at most parallelSolves solves
// concurrently. onError is invoked once per failed job; nil installs a
// handler that only logs.
func NewManager[S any, ID comparable](factory Factory[S], parallelSolves int, onError ExceptionHandler[ID]) *Manager[S, ID] {
	log := zap.S().Named("solver_manager")
	if onError == nil {
		onError = func(id ID, err error) {
			log.Errorw("job failed", "problemId", id, "error", err)
		}
	}
	return &Manager[S, ID]{
		factory: factory,
		pool:    scheduler.NewScheduler(parallelSolves),
		onError: onError,
		jobs:    make(map[ID]*Job[S, ID]),
		log:     log,
	}
}

// Solve submits a problem and returns its job handle. The problem instance
// is loaded lazily by finder on the worker goroutine.
func (m *Manager[S, ID]) Solve(id ID, finder ProblemFinder[S, ID]) (*Job[S, ID], error) {
	return m.solve(id, finder, nil)
}

// SolveAndListen is Solve with a consumer that receives the final solution
// on success.
func (m *Manager[S, ID]) SolveAndListen(id ID, finder ProblemFinder[S, ID], consumer SolutionConsumer[S]) (*Job[S, ID], error) {
	return m.solve(id, finder, consumer)
}

func (m *Manager[S, ID]) solve(id ID, finder ProblemFinder[S, ID], consumer SolutionConsumer[S]) (*Job[S, ID], error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrManagerClosed
	}
	if _, inFlight := m.jobs[id]; inFlight {
		m.mu.Unlock()
		return nil, srverrors.NewDuplicateJobError(id)
	}
	j := newJob(id, m.factory.Build(), finder, consumer, m.onError, m.removeJob)
	m.jobs[id] = j
	m.mu.Unlock()

	// The slot must be installed before any TerminateEarly call can act;
	// callers that arrive in between block on the job's slotReady signal.
	future := m.pool.AddWork(func(ctx context.Context) (any, error) {
		return j.solve(ctx)
	})
	j.setSlot(future)

	m.log.Debugw("job submitted", "problemId", id)
	return j, nil
}

// removeJob is handed to every job as its deregistration call.
func (m *Manager[S, ID]) removeJob(id ID) {
	m.mu.Lock()
	delete(m.jobs, id)
	m.mu.Unlock()
}

// Job returns the in-flight job for id, if any. Terminated jobs are
// deregistered and no longer found.
func (m *Manager[S, ID]) Job(id ID) (*Job[S, ID], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	return j, ok
}

// Status reports the status for id. Ids that are unknown or already
// deregistered report StatusTerminated.
func (m *Manager[S, ID]) Status(id ID) Status {
	j, ok := m.Job(id)
	if !ok {
		return StatusTerminated
	}
	return j.Status()
}

// TerminateEarly terminates the in-flight job for id. Unknown ids return a
// not-found error.
func (m *Manager[S, ID]) TerminateEarly(ctx context.Context, id ID) error {
	j, ok := m.Job(id)
	if !ok {
		return srverrors.NewJobNotFoundError(fmt.Sprintf("%v", id))
	}
	return j.TerminateEarly(ctx)
}

// Close terminates every in-flight job, waits for their cleanup, and shuts
// down the worker pool. The manager accepts no submissions afterwards.
func (m *Manager[S, ID]) Close() {
	m.mu.Lock()
	m.closed = true
	jobs := make([]*Job[S, ID], 0, len(m.jobs))
	for _, j := range m.jobs {
		jobs = append(jobs, j)
	}
	m.mu.Unlock()

	for _, j := range jobs {
		if err := j.TerminateEarly(context.Background()); err != nil {
			m.log.Warnw("terminating job on close", "problemId", j.ProblemID(), "error", err)
		}
	}
	m.pool.Close()
}
