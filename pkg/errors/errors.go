package errors

import (
	"errors"
	"fmt"
)

// ErrJobCancelled is the outcome of a job whose unit of work was revoked
// before a worker ever picked it up. The solver never ran.
var ErrJobCancelled = errors.New("job cancelled before solving started")

// ResourceNotFoundError is returned when a lookup by id misses.
type ResourceNotFoundError struct {
	Kind string
	ID   string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func NewJobNotFoundError(id string) error {
	return &ResourceNotFoundError{Kind: "job", ID: id}
}

func NewProblemNotFoundError(id string) error {
	return &ResourceNotFoundError{Kind: "problem", ID: id}
}

func NewSolutionNotFoundError(id string) error {
	return &ResourceNotFoundError{Kind: "solution", ID: id}
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// ExecutionError wraps a failure raised while solving a problem: the problem
// loader or the solver itself returned an error, or the solution consumer
// panicked. It is recorded once per job and surfaced to every caller waiting
// on the final solution.
type ExecutionError struct {
	ProblemID any
	Err       error
}

func NewExecutionError(problemID any, err error) *ExecutionError {
	return &ExecutionError{ProblemID: problemID, Err: err}
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("solving failed for problem %v: %v", e.ProblemID, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func IsExecutionError(err error) bool {
	var e *ExecutionError
	return errors.As(err, &e)
}

// DuplicateJobError is returned when a problem id is submitted while a job
// for the same id is still in flight.
type DuplicateJobError struct {
	ProblemID any
}

func NewDuplicateJobError(problemID any) error {
	return &DuplicateJobError{ProblemID: problemID}
}

func (e *DuplicateJobError) Error() string {
	return fmt.Sprintf("a job for problem %v is already in flight", e.ProblemID)
}

func IsDuplicateJobError(err error) bool {
	var e *DuplicateJobError
	return errors.As(err, &e)
}
