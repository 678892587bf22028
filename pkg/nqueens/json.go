package nqueens

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ddsimoes/optaplanner/pkg/solver"
)

// NewJSONFactory adapts the solver to the raw-JSON problem envelope the
// service layer works with: problems arrive as {"n": ...} documents and
// solutions leave as marshalled Solution values.
func NewJSONFactory() solver.Factory[json.RawMessage] {
	return solver.FactoryFunc[json.RawMessage](func() solver.Solver[json.RawMessage] {
		return &jsonSolver{inner: NewSolver()}
	})
}

type jsonSolver struct {
	inner *Solver
}

func (s *jsonSolver) Solve(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
	var problem Problem
	if err := json.Unmarshal(raw, &problem); err != nil {
		return nil, fmt.Errorf("decoding problem: %w", err)
	}
	solution, err := s.inner.Solve(ctx, problem)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(solution)
	if err != nil {
		return nil, fmt.Errorf("encoding solution: %w", err)
	}
	return out, nil
}

func (s *jsonSolver) TerminateEarly() {
	s.inner.TerminateEarly()
}
