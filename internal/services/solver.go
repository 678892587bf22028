package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ddsimoes/optaplanner/internal/models"
	"github.com/ddsimoes/optaplanner/internal/store"
	srverrors "github.com/ddsimoes/optaplanner/pkg/errors"
	"github.com/ddsimoes/optaplanner/pkg/notify"
	"github.com/ddsimoes/optaplanner/pkg/solver"
)

// persistTimeout bounds the consumer-side store writes and webhook
// deliveries that run on the worker goroutine after a solve finishes.
const persistTimeout = 30 * time.Second

// SolverService ties the solver manager, the store and the notifier
// together. Problems are opaque JSON documents keyed by generated UUIDs;
// the manager loads them back from the store when a worker picks the job up.
type SolverService struct {
	manager  *solver.Manager[json.RawMessage, string]
	store    *store.Store
	notifier *notify.Notifier
	log      *zap.SugaredLogger
}

// NewSolverService creates the service. notifier may be nil when no webhook
// is configured.
func NewSolverService(factory solver.Factory[json.RawMessage], parallelSolves int, st *store.Store, notifier *notify.Notifier) *SolverService {
	s := &SolverService{
		store:    st,
		notifier: notifier,
		log:      zap.S().Named("solver_service"),
	}
	s.manager = solver.NewManager[json.RawMessage, string](factory, parallelSolves, s.onJobError)
	return s
}

// Submit stores the problem document and schedules a solve job for it.
func (s *SolverService) Submit(ctx context.Context, spec json.RawMessage) (string, error) {
	id := uuid.New().String()

	if err := s.store.Problems().Save(ctx, id, spec); err != nil {
		return "", err
	}

	_, err := s.manager.SolveAndListen(id, s.loadProblem, func(solution json.RawMessage) {
		s.onFinalSolution(id, solution)
	})
	if err != nil {
		return "", err
	}

	s.log.Infow("job submitted", "problemId", id)
	return id, nil
}

// loadProblem is the problem finder handed to every job.
func (s *SolverService) loadProblem(ctx context.Context, id string) (json.RawMessage, error) {
	p, err := s.store.Problems().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Spec, nil
}

// onFinalSolution runs on the worker goroutine, at most once per job.
func (s *SolverService) onFinalSolution(id string, solution json.RawMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.store.Solutions().Save(ctx, id, solution); err != nil {
		s.log.Errorw("failed to persist final solution", "problemId", id, "error", err)
	}
	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, notify.JobEvent{
			ProblemID: id,
			Status:    solver.StatusTerminated.String(),
			Solution:  solution,
		})
	}
}

// onJobError is the manager's exception handler, invoked at most once per
// failed job. The failure is persisted as the job's terminal outcome so it
// stays observable after the handle deregisters.
func (s *SolverService) onJobError(id string, err error) {
	s.log.Errorw("job failed", "problemId", id, "error", err)

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if saveErr := s.store.Solutions().SaveFailure(ctx, id, err.Error()); saveErr != nil {
		s.log.Errorw("failed to persist failure outcome", "problemId", id, "error", saveErr)
	}
	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, notify.JobEvent{
			ProblemID: id,
			Status:    solver.StatusTerminated.String(),
			Error:     err.Error(),
		})
	}
}

// Status reports the job status for a known problem id.
func (s *SolverService) Status(ctx context.Context, id string) (solver.Status, error) {
	if _, err := s.store.Problems().Get(ctx, id); err != nil {
		return 0, err
	}
	return s.manager.Status(id), nil
}

// Solution blocks until the job for id terminates (bounded by ctx) and
// returns the final solution. Jobs already gone from the manager are served
// from the store.
func (s *SolverService) Solution(ctx context.Context, id string) (json.RawMessage, error) {
	if job, inFlight := s.manager.Job(id); inFlight {
		return job.FinalSolution(ctx)
	}
	sol, err := s.store.Solutions().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sol.Error != "" {
		return nil, srverrors.NewExecutionError(id, errors.New(sol.Error))
	}
	return sol.Document, nil
}

// Terminate requests early termination of the job for id. Terminating an
// already-terminated job is not an error.
func (s *SolverService) Terminate(ctx context.Context, id string) error {
	if _, err := s.store.Problems().Get(ctx, id); err != nil {
		return err
	}
	err := s.manager.TerminateEarly(ctx, id)
	if err != nil && srverrors.IsResourceNotFoundError(err) {
		// Already deregistered: nothing left to stop.
		return nil
	}
	return err
}

// ListParams filters and paginates the job listing.
type ListParams struct {
	Solved *bool
	Limit  uint64
	Offset uint64
}

// ListResult is one page of job records plus the unpaginated total.
type ListResult struct {
	Jobs  []models.JobRecord
	Total int
}

// List returns submitted problems with their current status overlaid from
// the manager.
func (s *SolverService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	opts := s.buildListOptions(params, true)
	records, err := s.store.Jobs().List(ctx, opts...)
	if err != nil {
		return nil, err
	}

	total, err := s.store.Jobs().Count(ctx, s.buildListOptions(params, false)...)
	if err != nil {
		return nil, err
	}

	for i := range records {
		records[i].Status = s.manager.Status(records[i].ProblemID).String()
	}

	return &ListResult{Jobs: records, Total: total}, nil
}

func (s *SolverService) buildListOptions(params ListParams, paginate bool) []store.ListOption {
	var opts []store.ListOption
	if params.Solved != nil {
		opts = append(opts, store.BySolved(*params.Solved))
	}
	if paginate {
		opts = append(opts, store.WithDefaultSort())
		if params.Limit > 0 {
			opts = append(opts, store.WithLimit(params.Limit))
		}
		if params.Offset > 0 {
			opts = append(opts, store.WithOffset(params.Offset))
		}
	}
	return opts
}

// Close terminates all in-flight jobs and shuts the worker pool down.
func (s *SolverService) Close() {
	s.manager.Close()
}
