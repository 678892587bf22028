package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/ddsimoes/optaplanner/internal/models"
	srverrors "github.com/ddsimoes/optaplanner/pkg/errors"
)

// ProblemStore persists submitted problem documents. It backs the problem
// finder handed to solve jobs: the execution body loads its problem from
// here by id.
type ProblemStore struct {
	db *sql.DB
}

func NewProblemStore(db *sql.DB) *ProblemStore {
	return &ProblemStore{db: db}
}

// Get retrieves the problem document for id.
func (s *ProblemStore) Get(ctx context.Context, id string) (*models.Problem, error) {
	row := s.db.QueryRowContext(ctx, queryGetProblem, id)

	p := models.Problem{ID: id}
	var spec string
	err := row.Scan(&spec, &p.SubmittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srverrors.NewProblemNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}
	p.Spec = json.RawMessage(spec)
	return &p, nil
}

// Save stores or replaces the problem document.
func (s *ProblemStore) Save(ctx context.Context, id string, spec json.RawMessage) error {
	_, err := s.db.ExecContext(ctx, queryUpsertProblem, id, string(spec))
	return err
}

// Delete removes the problem document for id.
func (s *ProblemStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, queryDeleteProblem, id)
	return err
}
