package solver

// Status is the lifecycle state of a job. It moves along
// Scheduled → Active → Terminated, with the shortcut
// Scheduled → Terminated when a job is cancelled before it starts.
// It never moves backwards.
type Status int32

const (
	// StatusScheduled - job accepted, not yet picked up by a worker.
	StatusScheduled Status = iota
	// StatusActive - the execution body is running the solver.
	StatusActive
	// StatusTerminated - solving finished for any reason and cleanup ran.
	StatusTerminated
)

func (s Status) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusActive:
		return "active"
	case StatusTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
