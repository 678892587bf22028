package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ddsimoes/optaplanner/internal/models"
)

// JobStore lists submitted problems together with their solve state.
type JobStore struct {
	db *sql.DB
}

func NewJobStore(db *sql.DB) *JobStore {
	return &JobStore{db: db}
}

func (s *JobStore) List(ctx context.Context, opts ...ListOption) ([]models.JobRecord, error) {
	builder := sq.Select(
		"problems.id",
		"problems.submitted_at",
		"solutions.solved_at",
	).From("problems").
		LeftJoin("solutions ON problems.id = solutions.problem_id")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.JobRecord
	for rows.Next() {
		var rec models.JobRecord
		var solvedAt sql.NullTime
		if err := rows.Scan(&rec.ProblemID, &rec.SubmittedAt, &solvedAt); err != nil {
			return nil, err
		}
		if solvedAt.Valid {
			t := solvedAt.Time
			rec.SolvedAt = &t
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (s *JobStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("problems").
		LeftJoin("solutions ON problems.id = solutions.problem_id")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

// BySolved filters on whether a final solution has been persisted.
func BySolved(solved bool) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if solved {
			return b.Where("solutions.problem_id IS NOT NULL")
		}
		return b.Where("solutions.problem_id IS NULL")
	}
}

// BySubmittedAfter keeps problems submitted strictly after t.
func BySubmittedAfter(t time.Time) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Gt{"problems.submitted_at": t})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("problems.submitted_at", "problems.id")
	}
}
