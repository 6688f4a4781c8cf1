package jobs

import (
	"context"
	"time"

	"github.com/dvloznov/finance-dashboard/internal/report"
	"github.com/dvloznov/finance-dashboard/internal/statement"
)

// JobType represents the type of job to be executed.
type JobType string

const (
	// JobTypeProcessBatch represents a statement-batch processing job.
	JobTypeProcessBatch JobType = "process_batch"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	// JobStatusPending indicates the job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job completed successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job failed.
	JobStatusFailed JobStatus = "failed"
)

// BatchResult is what a completed processing job produces: the per-file
// outcomes and the aggregated reports.
type BatchResult struct {
	ProcessedFiles []statement.FileStatus `json:"processed_files"`
	Reports        *report.Reports        `json:"reports,omitempty"`
}

// ProcessBatchJob represents a job to process a batch of uploaded statement
// files. The file bytes are held in memory for the worker and excluded from
// JSON so job-status responses stay small.
type ProcessBatchJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// Filenames lists the files of the batch, in submission order.
	Filenames []string `json:"filenames"`

	// Files carries the uploaded bytes; never serialized.
	Files []statement.StatementFile `json:"-"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	// CreatedAt is when the job was created.
	CreatedAt time.Time `json:"created_at"`

	// StartedAt is when the job started processing.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is when the job completed (success or failure).
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`

	// Result holds the batch outcome once the job has run.
	Result *BatchResult `json:"result,omitempty"`
}

// Job is a generic interface for all job types.
type Job interface {
	// GetID returns the unique job identifier.
	GetID() string

	// GetType returns the job type.
	GetType() JobType

	// GetStatus returns the current job status.
	GetStatus() JobStatus
}

// GetID implements the Job interface.
func (j *ProcessBatchJob) GetID() string {
	return j.JobID
}

// GetType implements the Job interface.
func (j *ProcessBatchJob) GetType() JobType {
	return JobTypeProcessBatch
}

// GetStatus implements the Job interface.
func (j *ProcessBatchJob) GetStatus() JobStatus {
	return j.Status
}

// Publisher defines the interface for publishing jobs to a queue.
type Publisher interface {
	// PublishProcessBatch publishes a batch processing job.
	PublishProcessBatch(ctx context.Context, job *ProcessBatchJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs from the queue.
	// The handler function is called for each job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming jobs and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler is a function that processes a job. Batch processing is a
// deterministic transformation over in-memory bytes, so a returned error is
// permanent: jobs are never retried.
type JobHandler func(ctx context.Context, job Job) error

// JobStore defines the interface for storing and retrieving job status.
type JobStore interface {
	// SaveJob saves or updates a job's state.
	SaveJob(ctx context.Context, job *ProcessBatchJob) error

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*ProcessBatchJob, error)

	// ListJobs retrieves jobs with optional filtering.
	ListJobs(ctx context.Context, filter JobFilter) ([]*ProcessBatchJob, error)
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	// Status filters jobs by status.
	Status JobStatus

	// Limit limits the number of results.
	Limit int

	// Offset for pagination.
	Offset int
}
