package solver

import (
	"context"
	"sync/atomic"
)

// Solver runs one long-running solve over a problem instance.
//
// Solve blocks until the best solution is found, the solver honours a
// cooperative stop, or the context is cancelled. Implementations must poll
// the stop request at a reasonable cadence; a solver that ignores it can
// only be abandoned, never stopped.
type Solver[S any] interface {
	Solve(ctx context.Context, problem S) (S, error)

	// TerminateEarly requests a cooperative stop. It is non-blocking,
	// idempotent, and harmless before, during or after Solve.
	TerminateEarly()
}

// Factory builds one solver instance per job. Solver instances are not
// reused across jobs.
type Factory[S any] interface {
	Build() Solver[S]
}

type FactoryFunc[S any] func() Solver[S]

func (f FactoryFunc[S]) Build() Solver[S] {
	return f()
}

// TerminationFlag is the poll side of the cooperative stop protocol.
// Solvers embed it and check ShouldTerminate in their inner loop.
type TerminationFlag struct {
	stop atomic.Bool
}

func (f *TerminationFlag) TerminateEarly() {
	f.stop.Store(true)
}

func (f *TerminationFlag) ShouldTerminate() bool {
	return f.stop.Load()
}
