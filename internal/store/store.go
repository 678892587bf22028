package store

import (
	"database/sql"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Store provides access to all storage repositories.
type Store struct {
	db        *sql.DB
	problems  *ProblemStore
	solutions *SolutionStore
	jobs      *JobStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		problems:  NewProblemStore(db),
		solutions: NewSolutionStore(db),
		jobs:      NewJobStore(db),
	}
}

// NewDB opens the DuckDB database at path; ":memory:" opens a transient
// in-memory database.
func NewDB(path string) (*sql.DB, error) {
	if path == ":memory:" {
		path = ""
	}
	return sql.Open("duckdb", path)
}

func (s *Store) Problems() *ProblemStore {
	return s.problems
}

func (s *Store) Solutions() *SolutionStore {
	return s.solutions
}

func (s *Store) Jobs() *JobStore {
	return s.jobs
}

func (s *Store) Close() error {
	return s.db.Close()
}
