package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/ddsimoes/optaplanner/internal/models"
	srverrors "github.com/ddsimoes/optaplanner/pkg/errors"
)

// SolutionStore persists terminal job outcomes. The solve job's solution
// consumer writes the final solution here exactly once per successful job;
// the exception handler records failures the same way.
type SolutionStore struct {
	db *sql.DB
}

func NewSolutionStore(db *sql.DB) *SolutionStore {
	return &SolutionStore{db: db}
}

// Get retrieves the terminal outcome for a problem id.
func (s *SolutionStore) Get(ctx context.Context, problemID string) (*models.Solution, error) {
	row := s.db.QueryRowContext(ctx, queryGetSolution, problemID)

	sol := models.Solution{ProblemID: problemID}
	var document, failure sql.NullString
	err := row.Scan(&document, &failure, &sol.SolvedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srverrors.NewSolutionNotFoundError(problemID)
	}
	if err != nil {
		return nil, err
	}
	if document.Valid {
		sol.Document = json.RawMessage(document.String)
	}
	sol.Error = failure.String
	return &sol, nil
}

// Save stores or replaces the final solution for a problem id.
func (s *SolutionStore) Save(ctx context.Context, problemID string, document json.RawMessage) error {
	_, err := s.db.ExecContext(ctx, queryUpsertSolution, problemID, string(document), nil)
	return err
}

// SaveFailure records a failed terminal outcome for a problem id.
func (s *SolutionStore) SaveFailure(ctx context.Context, problemID string, message string) error {
	_, err := s.db.ExecContext(ctx, queryUpsertSolution, problemID, nil, message)
	return err
}
