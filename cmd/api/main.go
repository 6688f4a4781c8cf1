package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dvloznov/finance-dashboard/internal/api/handlers"
	"github.com/dvloznov/finance-dashboard/internal/api/middleware"
	"github.com/dvloznov/finance-dashboard/internal/config"
	"github.com/dvloznov/finance-dashboard/internal/jobs"
	"github.com/dvloznov/finance-dashboard/internal/jobs/inmemory"
	"github.com/dvloznov/finance-dashboard/internal/logger"
	"github.com/dvloznov/finance-dashboard/internal/report"
	"github.com/dvloznov/finance-dashboard/internal/statement"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New()
	logger.SetLevel(cfg.LogLevel)

	processor := statement.NewProcessor(log)

	// Job infrastructure for the async batch endpoint.
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(cfg.QueueSize, cfg.WorkerCount, jobStore)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job jobs.Job) error {
		batchJob, ok := job.(*jobs.ProcessBatchJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", batchJob.JobID).
			Int("files", len(batchJob.Files)).
			Msg("Processing batch job")

		transactions, statuses, err := processor.ProcessBatch(batchJob.Files)
		if err != nil && !errors.Is(err, statement.ErrNoTransactions) {
			return err
		}

		batchJob.Result = &jobs.BatchResult{
			ProcessedFiles: statuses,
			Reports:        report.Aggregate(transactions),
		}

		if errors.Is(err, statement.ErrNoTransactions) {
			return err
		}

		log.Info().
			Str("job_id", batchJob.JobID).
			Int("transactions", len(transactions)).
			Msg("Batch job completed")

		return nil
	}

	go func() {
		log.Info().Int("workers", cfg.WorkerCount).Msg("Starting batch workers")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Batch workers stopped with error")
		}
	}()

	processHandler := handlers.NewProcessHandler(processor, cfg.MaxUploadBytes, log)
	reportsHandler := handlers.NewReportsHandler(log)
	batchesHandler := handlers.NewBatchesHandler(jobQueue, cfg.MaxUploadBytes, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Finance Dashboard API",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/process", processHandler.ProcessFiles)
		r.Post("/reports/download", reportsHandler.DownloadReports)
		r.Post("/batches", batchesHandler.CreateBatch)
		r.Get("/jobs", jobsHandler.ListJobs)
		r.Get("/jobs/{id}", jobsHandler.GetJob)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}
