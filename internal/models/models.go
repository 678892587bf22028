package models

import (
	"encoding/json"
	"time"
)

// Problem is a submitted problem document as stored in the database.
type Problem struct {
	ID          string
	Spec        json.RawMessage
	SubmittedAt time.Time
}

// Solution is the persisted terminal outcome for a problem: either a final
// solution document or the error the solve failed with.
type Solution struct {
	ProblemID string
	Document  json.RawMessage
	Error     string
	SolvedAt  time.Time
}

// JobRecord is one row of the job listing: a submitted problem together
// with its solve state.
type JobRecord struct {
	ProblemID   string
	Status      string
	SubmittedAt time.Time
	SolvedAt    *time.Time
}
