// Package solver manages the lifecycle of long-running solve jobs.
//
// A Job is the handle for one submitted problem: it carries the problem id,
// exposes the current status, waits for the final solution, and requests
// early termination. The Manager owns the job index and the worker pool and
// is the only way to create jobs.
//
// # Job Lifecycle
//
//	            submit                    worker picks up
//	 caller ──────────────► scheduled ───────────────────► active
//	                            │                             │
//	                            │ TerminateEarly              │ solve returns /
//	                            │ (slot revoked)              │ fails / stops
//	                            ▼                             ▼
//	                        terminated ◄──────────────── terminated
//
// Status moves forward only. The scheduled → terminated shortcut is taken
// when TerminateEarly wins the race for the execution slot before any worker
// claims it; the solver never runs in that case.
//
// # Termination
//
// TerminateEarly has two paths:
//
//  1. Preemptive: the job's slot on the pool is revoked (Future.TryCancel).
//     The body never runs, the job records ErrJobCancelled and terminates
//     immediately. No cooperation needed.
//  2. Cooperative: the body is already running (or done). The solver's
//     TerminateEarly is invoked — a request the solver polls internally —
//     and the call blocks until the worker's cleanup has finished. A running
//     solve cannot be killed forcibly; it may hold resources.
//
// Either way, when TerminateEarly returns the status is terminated and the
// solution consumer will never be invoked again.
//
// # Completion Signal
//
// Every job owns a one-shot completion signal, released exactly once when
// the terminal cleanup runs: deregister from the manager index, publish the
// terminated status, close the signal channel. Closing the channel is the
// release; every goroutine that observes it also observes the final
// solution or error, the terminated status, and the deregistration.
//
// # Outcome Delivery
//
// The outcome of a job is delivered at most once to each interested party:
//
//   - the SolutionConsumer, on the worker goroutine, only on success;
//   - every FinalSolution caller, after the completion signal, all of them
//     receiving the identical solution or error;
//   - the ExceptionHandler, exactly once, only on failure.
//
// Errors from the problem finder, the solver, or a panicking consumer are
// reported once to the handler and re-surfaced, wrapped in ExecutionError,
// to FinalSolution callers. A preemptively cancelled job surfaces
// ErrJobCancelled instead. A caller whose own context expires while waiting
// gets its context error; the job itself is unaffected.
//
// # Usage Example
//
//	manager := solver.NewManager[nqueens.Solution, string](factory, 4, nil)
//	defer manager.Close()
//
//	job, err := manager.SolveAndListen("p-1", loadProblem, func(s nqueens.Solution) {
//	    saveSolution(s)
//	})
//	if err != nil {
//	    return err
//	}
//
//	solution, err := job.FinalSolution(ctx)
package solver
