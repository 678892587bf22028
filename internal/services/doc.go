// Package services implements the business logic layer for the solver service.
//
// This package sits between the HTTP handlers and the solver core, owning
// the problem-id minting, the persistence hooks, and the outcome
// notification path.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	SolverService ──► solver.Manager ──► scheduler (worker pool)
//	    │                  │
//	    ▼                  ▼
//	  Store ◄───── problem finder / solution consumer
//	    │
//	  Notifier (webhook, optional)
//
// # Data Path of One Job
//
//  1. Submit stores the problem JSON under a fresh UUID and calls
//     SolveAndListen on the manager.
//  2. A pool worker loads the problem back through the service's finder
//     (ProblemStore.Get) and runs the solver.
//  3. On success the consumer persists the solution (SolutionStore.Save)
//     and, when configured, posts a JobEvent to the webhook. Both run on
//     the worker goroutine, bounded by persistTimeout.
//  4. On failure the manager's exception handler logs once and posts the
//     error outcome.
//
// Status and Solution queries are served from the manager while the job is
// in flight and from the store afterwards.
package services
