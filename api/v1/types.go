package v1

import (
	"encoding/json"
	"time"

	"github.com/ddsimoes/optaplanner/internal/models"
)

// CreateJobRequest carries the problem document to solve. The document is
// opaque to the service; only the configured solver interprets it.
type CreateJobRequest struct {
	Problem json.RawMessage `json:"problem" binding:"required"`
}

// Job is the API view of a solve job.
type Job struct {
	Id          string     `json:"id"`
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submittedAt"`
	SolvedAt    *time.Time `json:"solvedAt,omitempty"`
}

// JobListResponse is one page of jobs.
type JobListResponse struct {
	Page      int   `json:"page"`
	PageCount int   `json:"pageCount"`
	Total     int   `json:"total"`
	Jobs      []Job `json:"jobs"`
}

// SolutionResponse wraps the final (or best-so-far) solution document.
type SolutionResponse struct {
	Id       string          `json:"id"`
	Solution json.RawMessage `json:"solution"`
}

// GetJobsParams are the query parameters accepted by GET /jobs.
type GetJobsParams struct {
	Solved   *bool `form:"solved"`
	Page     *int  `form:"page"`
	PageSize *int  `form:"pageSize"`
}

// NewJobFromRecord converts a stored job record to its API shape.
func NewJobFromRecord(rec models.JobRecord) Job {
	return Job{
		Id:          rec.ProblemID,
		Status:      rec.Status,
		SubmittedAt: rec.SubmittedAt,
		SolvedAt:    rec.SolvedAt,
	}
}
