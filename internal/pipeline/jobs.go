package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/replyfmt/internal/formatter"
	"github.com/dgallion1/replyfmt/internal/schema"
)

// JobStatus represents the state of a batch formatting job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusFormatting JobStatus = "formatting"
	StatusCompleted  JobStatus = "completed"
	StatusPartial    JobStatus = "partial"
	StatusFailed     JobStatus = "failed"
)

// Item is one response to format within a batch.
type Item struct {
	ID   string
	Text string

	// Schema is non-nil when the caller supplied one for this item.
	Schema *schema.Schema
	// SchemaErr records a schema that failed to parse; the item still
	// formats, falling back to an inferred schema.
	SchemaErr string
}

// ItemResult is the rendered output for one batch item.
type ItemResult struct {
	ID    string         `json:"id"`
	HTML  string         `json:"html"`
	Mode  formatter.Mode `json:"mode"`
	Error string         `json:"error,omitempty"`
}

// Progress tracks batch processing progress.
type Progress struct {
	TotalItems     int      `json:"total_items"`
	ItemsProcessed int      `json:"items_processed"`
	Errors         []string `json:"errors"`
}

// Job tracks the state of a single batch formatting request.
type Job struct {
	mu sync.Mutex

	ID     string
	Status JobStatus

	Progress Progress
	Results  []ItemResult

	CreatedAt time.Time
	UpdatedAt time.Time

	// Internal: consumed by the worker, never serialized.
	items []Item
}

// NewJob builds a queued job over the given items.
func NewJob(id string, items []Item) *Job {
	now := time.Now()
	return &Job{
		ID:        id,
		Status:    StatusQueued,
		items:     items,
		Progress:  Progress{TotalItems: len(items)},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Items returns the work list for this job.
func (j *Job) Items() []Item {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.items
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// AddResult records one finished item.
func (j *Job) AddResult(res ItemResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Results = append(j.Results, res)
	j.Progress.ItemsProcessed++
	if res.Error != "" {
		j.Progress.Errors = append(j.Progress.Errors, res.Error)
	}
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string       `json:"job_id"`
	Status   JobStatus    `json:"status"`
	Progress Progress     `json:"progress"`
	Results  []ItemResult `json:"results"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	results := make([]ItemResult, len(j.Results))
	copy(results, j.Results)
	return JobSnapshot{
		ID:     j.ID,
		Status: j.Status,
		Progress: Progress{
			TotalItems:     j.Progress.TotalItems,
			ItemsProcessed: j.Progress.ItemsProcessed,
			Errors:         errs,
		},
		Results: results,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
