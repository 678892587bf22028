// Package store implements the data access layer for the solver service.
//
// This package provides persistent storage using DuckDB: submitted problem
// documents and their final solutions, plus a joined job listing.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│     ProblemStore      │     SolutionStore     │     JobStore    │
//	│          ▼            │           ▼           │        ▼        │
//	│       problems        │       solutions       │  problems LEFT  │
//	│                       │                       │  JOIN solutions │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Tables
//
// Created by local migrations (internal/store/migrations):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  problems          │  Submitted problem JSON, keyed by id        │
//	│  solutions         │  Final solution JSON, keyed by problem id   │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # Role in the Solve Lifecycle
//
// The store is both ends of a solve job's data path:
//
//   - ProblemStore.Get is the problem finder the execution body calls to
//     load its problem instance;
//   - SolutionStore.Save is invoked by the job's solution consumer, at most
//     once per job, on success only.
//
// Point lookups use const query strings; the job listing is built with
// squirrel and composed through ListOption filters (BySolved,
// BySubmittedAfter, pagination, sorting).
//
// # Usage Example
//
//	db, err := store.NewDB(cfg.Solver.DataFolder + "/solver.db")
//	if err != nil { ... }
//	if err := migrations.Run(ctx, db); err != nil { ... }
//	s := store.NewStore(db)
//
//	records, err := s.Jobs().List(ctx, store.BySolved(true), store.WithLimit(20))
package store
