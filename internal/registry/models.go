package registry

import "time"

// Status represents the lifecycle of a video job.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// rank orders statuses along the only legal path. Transitions must move
// strictly forward.
func (s Status) rank() int {
	switch s {
	case StatusQueued:
		return 0
	case StatusProcessing:
		return 1
	case StatusCompleted, StatusFailed:
		return 2
	default:
		return -1
	}
}

// Job is a snapshot of one accepted video request. Values returned by the
// registry are copies; mutating them has no effect on tracked state.
type Job struct {
	ID          string
	TaskID      string
	Status      Status
	ArtifactURL string
	ErrorReason string
	WebhookURL  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
