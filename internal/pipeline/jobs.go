package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"doccount/internal/count"
)

// JobStatus represents the state of a batch count job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusCounting  JobStatus = "counting"
	StatusCompleted JobStatus = "completed"
	StatusPartial   JobStatus = "partial"
	StatusFailed    JobStatus = "failed"
)

// JobFile is one uploaded document in a batch.
type JobFile struct {
	Name string
	Data []byte
	// Root marks files whose counts are reported; non-root files are
	// only available as include targets.
	Root bool
}

// Job tracks the state of a single batch count request.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status JobStatus `json:"status"`

	ExcludeImports bool `json:"exclude_imports"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	files  []JobFile
	report count.Report
}

// Progress summarizes how far a batch has gotten.
type Progress struct {
	TotalFiles  int      `json:"total_files"`
	FilesFailed int      `json:"files_failed"`
	Errors      []string `json:"errors"`
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

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.UpdatedAt = time.Now()
}

// SetFiles sets the uploaded documents for the batch.
func (j *Job) SetFiles(files []JobFile) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.files = files
}

// Files returns the uploaded documents.
func (j *Job) Files() []JobFile {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.files
}

// SetReport stores the finished count report and derives the final status.
func (j *Job) SetReport(report count.Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.report = report
	j.UpdatedAt = time.Now()

	failed := 0
	for _, f := range report.Files {
		if f.Err != nil {
			failed++
		}
	}
	switch {
	case failed == 0:
		j.Status = StatusCompleted
	case failed == len(report.Files):
		j.Status = StatusFailed
	default:
		j.Status = StatusPartial
	}
}

// FileResult is the JSON-safe per-file outcome.
type FileResult struct {
	File       string `json:"file"`
	Words      int    `json:"words"`
	Characters int    `json:"characters"`
	Error      string `json:"error,omitempty"`
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID             string       `json:"job_id"`
	Status         JobStatus    `json:"status"`
	ExcludeImports bool         `json:"exclude_imports"`
	Progress       Progress     `json:"progress"`
	Files          []FileResult `json:"files,omitempty"`
	Total          count.Result `json:"total"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state. Per-file results are
// included only once the job has finished.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()

	snap := JobSnapshot{
		ID:             j.ID,
		Status:         j.Status,
		ExcludeImports: j.ExcludeImports,
		Total:          j.report.Total,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
	snap.Progress.Errors = []string{}

	if j.Status == StatusQueued || j.Status == StatusCounting {
		for _, f := range j.files {
			if f.Root {
				snap.Progress.TotalFiles++
			}
		}
		return snap
	}

	snap.Progress.TotalFiles = len(j.report.Files)
	for _, f := range j.report.Files {
		fr := FileResult{File: f.File, Words: f.Result.Words, Characters: f.Result.Characters}
		if f.Err != nil {
			fr.Error = f.Err.Error()
			snap.Progress.FilesFailed++
			snap.Progress.Errors = append(snap.Progress.Errors, f.Err.Error())
		}
		snap.Files = append(snap.Files, fr)
	}
	return snap
}

// JobID derives a stable identifier from the upload contents and time.
func JobID(files []JobFile, now time.Time) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d\n", now.UnixNano())
	for _, f := range files {
		fmt.Fprintf(h, "%s\n", f.Name)
		h.Write(f.Data)
	}
	return fmt.Sprintf("%x", h.Sum(nil)[:16])
}
