package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry owns the mapping from job id to job state. It is the single
// source of truth for status queries. Records are never removed within the
// process lifetime.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{jobs: make(map[string]*Job)}
}

// Create admits a new job in the queued state and returns its snapshot.
func (r *Registry) Create(taskID, webhookURL string) Job {
	now := time.Now().UTC()
	job := &Job{
		ID:         uuid.NewString(),
		TaskID:     taskID,
		Status:     StatusQueued,
		WebhookURL: webhookURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	r.mu.Lock()
	r.jobs[job.ID] = job
	r.mu.Unlock()
	return *job
}

// Get returns a snapshot of the job with the given id.
func (r *Registry) Get(id string) (Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// List returns snapshots of all jobs, newest first.
func (r *Registry) List() []Job {
	r.mu.RLock()
	out := make([]Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, *job)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// MarkProcessing moves a queued job to processing. Returns false when the
// job is unknown or the transition would not move forward.
func (r *Registry) MarkProcessing(id string) bool {
	return r.transition(id, StatusProcessing, func(job *Job) {})
}

// MarkCompleted records the published artifact URL and finishes the job.
func (r *Registry) MarkCompleted(id, artifactURL string) bool {
	return r.transition(id, StatusCompleted, func(job *Job) {
		job.ArtifactURL = artifactURL
	})
}

// MarkFailed records the failure reason and finishes the job.
func (r *Registry) MarkFailed(id, reason string) bool {
	return r.transition(id, StatusFailed, func(job *Job) {
		job.ErrorReason = reason
	})
}

func (r *Registry) transition(id string, next Status, apply func(*Job)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return false
	}
	if job.Status.IsTerminal() || next.rank() <= job.Status.rank() {
		return false
	}
	job.Status = next
	apply(job)
	job.UpdatedAt = time.Now().UTC()
	return true
}
