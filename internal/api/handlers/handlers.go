package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-dashboard/internal/api/middleware"
	"github.com/dvloznov/finance-dashboard/internal/jobs"
	"github.com/dvloznov/finance-dashboard/internal/report"
	"github.com/dvloznov/finance-dashboard/internal/statement"
)

// ProcessHandler handles synchronous statement processing.
type ProcessHandler struct {
	processor      *statement.Processor
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewProcessHandler creates a new process handler.
func NewProcessHandler(processor *statement.Processor, maxUploadBytes int64, log zerolog.Logger) *ProcessHandler {
	return &ProcessHandler{
		processor:      processor,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// ProcessFiles handles POST /api/process. It extracts transactions from the
// uploaded files, aggregates the reports and returns everything in one
// response. Per-file failures are reported inline; the request fails only
// when no file yields a single transaction.
func (h *ProcessHandler) ProcessFiles(w http.ResponseWriter, r *http.Request) {
	files, err := readUploadedFiles(r, h.maxUploadBytes)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(files) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	transactions, statuses, err := h.processor.ProcessBatch(files)
	if err != nil {
		if errors.Is(err, statement.ErrNoTransactions) {
			middleware.WriteError(w, http.StatusBadRequest, "No valid transactions found in any file")
			return
		}
		h.log.Error().Err(err).Msg("Batch processing failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to process files")
		return
	}

	reports := report.Aggregate(transactions)

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "success",
		"processed_files": statuses,
		"summary": map[string]interface{}{
			"total_transactions": len(transactions),
			"total_income":       reports.IncomeStatement.TotalIncome,
			"total_expenses":     reports.IncomeStatement.TotalExpenses,
			"net_income":         reports.IncomeStatement.NetIncome,
		},
		"reports": reports,
	})
}

// ReportsHandler handles report export endpoints.
type ReportsHandler struct {
	log zerolog.Logger
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{log: log}
}

// DownloadReports handles POST /api/reports/download. The client sends back
// the reports it received from processing; the response is the bundled ZIP
// with a timestamped attachment name.
func (h *ReportsHandler) DownloadReports(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reports *report.Reports `json:"reports"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Reports == nil {
		middleware.WriteError(w, http.StatusBadRequest, "No reports data provided")
		return
	}

	now := time.Now()
	data, err := report.Bundle(req.Reports, now)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build report bundle")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to generate reports")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename="+report.BundleFilename(now))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// BatchesHandler handles asynchronous batch submission.
type BatchesHandler struct {
	publisher      jobs.Publisher
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewBatchesHandler creates a new batches handler.
func NewBatchesHandler(publisher jobs.Publisher, maxUploadBytes int64, log zerolog.Logger) *BatchesHandler {
	return &BatchesHandler{
		publisher:      publisher,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// CreateBatch handles POST /api/batches. The uploaded files are captured in
// memory and handed to the worker pool; the response carries the job ID to
// poll on /api/jobs/{id}.
func (h *BatchesHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	files, err := readUploadedFiles(r, h.maxUploadBytes)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(files) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "No files uploaded")
		return
	}

	filenames := make([]string, 0, len(files))
	for _, f := range files {
		filenames = append(filenames, f.Name)
	}

	job := &jobs.ProcessBatchJob{
		JobID:     uuid.New().String(),
		Filenames: filenames,
		Files:     files,
		Status:    jobs.JobStatusPending,
	}
	// A worker may pick the job up the moment it is published, so read
	// nothing from it afterwards.
	jobID, status := job.JobID, job.Status

	if err := h.publisher.PublishProcessBatch(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue batch job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue batch job")
		return
	}

	h.log.Info().Str("job_id", jobID).Int("files", len(files)).Msg("Batch job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": jobID,
		"status": string(status),
	})
}

// JobsHandler handles job-related endpoints.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{
		store: store,
		log:   log,
	}
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := jobs.JobFilter{
		Status: jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}

// readUploadedFiles materializes every part of the "files" multipart field.
// Parts without a filename are skipped, matching how browsers submit empty
// file inputs.
func readUploadedFiles(r *http.Request, maxBytes int64) ([]statement.StatementFile, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	if r.MultipartForm == nil {
		return nil, nil
	}

	var files []statement.StatementFile
	for _, header := range r.MultipartForm.File["files"] {
		if header.Filename == "" {
			continue
		}
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", header.Filename, err)
		}
		files = append(files, statement.StatementFile{Name: header.Filename, Data: data})
	}
	return files, nil
}
