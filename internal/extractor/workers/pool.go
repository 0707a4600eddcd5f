// Package workers runs extraction requests through a fixed pool of worker
// goroutines with per-domain outbound rate limiting.
package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/StephCurry07/Appication-Tracker/internal/config"
	"github.com/StephCurry07/Appication-Tracker/internal/extractor"
	"github.com/StephCurry07/Appication-Tracker/internal/llm"
	"github.com/StephCurry07/Appication-Tracker/internal/logging"
	"github.com/StephCurry07/Appication-Tracker/pkg/models"
	"github.com/StephCurry07/Appication-Tracker/pkg/utils"
)

// JobResult carries the outcome of an extraction job back to the submitter.
type JobResult struct {
	Result    *models.ExtractionResult
	Job       *models.Job
	Error     error
	RequestID string
	Duration  time.Duration
}

// ExtractJob is a single unit of work for the pool.
type ExtractJob struct {
	ID         string
	URL        string
	Strategy   string
	ParseJob   bool
	ResultChan chan JobResult
	Context    context.Context
	CreatedAt  time.Time
}

// Worker is a single worker goroutine.
type Worker struct {
	ID       int
	JobChan  chan ExtractJob
	QuitChan chan bool
	Pool     *WorkerPool
	logger   logging.Logger
}

// WorkerPool owns the job queue, the workers, and the dispatcher.
type WorkerPool struct {
	config      *config.Config
	workers     []*Worker
	jobQueue    chan ExtractJob
	dispatcher  *Dispatcher
	rateLimiter *RateLimiter
	pipeline    *extractor.Pipeline
	llmManager  *llm.Manager
	logger      logging.Logger
	mu          sync.RWMutex
	running     bool
	stats       *PoolStats
}

// PoolStats tracks worker pool counters.
type PoolStats struct {
	mu                    sync.RWMutex
	JobsQueued            int64
	JobsProcessed         int64
	JobsSuccessful        int64
	JobsFailed            int64
	TotalProcessingTime   time.Duration
	AverageProcessingTime time.Duration
}

// PoolStatsData is the JSON-friendly snapshot of PoolStats.
type PoolStatsData struct {
	JobsQueued            int64  `json:"jobs_queued"`
	JobsProcessed         int64  `json:"jobs_processed"`
	JobsSuccessful        int64  `json:"jobs_successful"`
	JobsFailed            int64  `json:"jobs_failed"`
	AverageProcessingTime string `json:"average_processing_time"`
}

// NewWorkerPool creates a pool sized from configuration.
func NewWorkerPool(cfg *config.Config, pipeline *extractor.Pipeline, llmManager *llm.Manager) *WorkerPool {
	logger := logging.GetGlobalLogger()

	pool := &WorkerPool{
		config:      cfg,
		jobQueue:    make(chan ExtractJob, cfg.Workers.QueueSize),
		rateLimiter: NewRateLimiter(cfg),
		pipeline:    pipeline,
		llmManager:  llmManager,
		logger:      logger,
		stats:       &PoolStats{},
	}

	pool.workers = make([]*Worker, cfg.Workers.PoolSize)
	for i := 0; i < cfg.Workers.PoolSize; i++ {
		pool.workers[i] = &Worker{
			ID:       i + 1,
			JobChan:  make(chan ExtractJob),
			QuitChan: make(chan bool),
			Pool:     pool,
			logger:   logger.WithField("worker_id", i+1),
		}
	}

	pool.dispatcher = NewDispatcher(pool.jobQueue, pool.workers)

	logger.Info("Worker pool initialized", map[string]interface{}{"pool_size": cfg.Workers.PoolSize})
	return pool
}

// Start starts the dispatcher and all workers.
func (wp *WorkerPool) Start() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.running {
		return fmt.Errorf("worker pool is already running")
	}

	wp.dispatcher.Start()
	for _, worker := range wp.workers {
		go worker.Start()
	}

	wp.running = true
	wp.logger.Info("Worker pool started", map[string]interface{}{"workers": len(wp.workers)})
	return nil
}

// Stop stops the pool gracefully.
func (wp *WorkerPool) Stop() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if !wp.running {
		return nil
	}

	wp.dispatcher.Stop()
	for _, worker := range wp.workers {
		worker.Stop()
	}
	close(wp.jobQueue)

	wp.running = false
	wp.logger.Info("Worker pool stopped")
	return nil
}

// SubmitJob queues an extraction and blocks until the result arrives or the
// pool timeout expires.
func (wp *WorkerPool) SubmitJob(ctx context.Context, url, strategy string, parseJob bool) (*JobResult, error) {
	if !wp.IsRunning() {
		return nil, fmt.Errorf("worker pool is not running")
	}

	domain := extractDomainFromURL(url)
	if !wp.rateLimiter.Allow(domain) {
		return nil, fmt.Errorf("rate limit exceeded for domain: %s", domain)
	}

	job := ExtractJob{
		ID:         utils.GenerateRequestID(),
		URL:        url,
		Strategy:   strategy,
		ParseJob:   parseJob,
		ResultChan: make(chan JobResult, 1),
		Context:    ctx,
		CreatedAt:  time.Now(),
	}

	wp.stats.mu.Lock()
	wp.stats.JobsQueued++
	wp.stats.mu.Unlock()

	select {
	case wp.jobQueue <- job:
		wp.logger.Debug("Job submitted to queue", map[string]interface{}{"job_id": job.ID, "url": url})
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("job queue is full, request timed out")
	}

	select {
	case result := <-job.ResultChan:
		return &result, nil
	case <-time.After(wp.config.Workers.Timeout):
		return nil, fmt.Errorf("job processing timed out after %v", wp.config.Workers.Timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// IsRunning reports whether the pool is accepting jobs.
func (wp *WorkerPool) IsRunning() bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	return wp.running
}

// GetStats returns a snapshot of pool counters.
func (wp *WorkerPool) GetStats() PoolStatsData {
	wp.stats.mu.RLock()
	defer wp.stats.mu.RUnlock()

	avg := time.Duration(0)
	if wp.stats.JobsProcessed > 0 {
		avg = wp.stats.TotalProcessingTime / time.Duration(wp.stats.JobsProcessed)
	}

	return PoolStatsData{
		JobsQueued:            wp.stats.JobsQueued,
		JobsProcessed:         wp.stats.JobsProcessed,
		JobsSuccessful:        wp.stats.JobsSuccessful,
		JobsFailed:            wp.stats.JobsFailed,
		AverageProcessingTime: avg.String(),
	}
}

// Start runs the worker loop.
func (w *Worker) Start() {
	for {
		select {
		case job := <-w.JobChan:
			w.processJob(job)
		case <-w.QuitChan:
			return
		}
	}
}

// Stop signals the worker to exit.
func (w *Worker) Stop() {
	w.QuitChan <- true
}

func (w *Worker) processJob(job ExtractJob) {
	startTime := time.Now()

	w.Pool.stats.mu.Lock()
	w.Pool.stats.JobsProcessed++
	w.Pool.stats.mu.Unlock()

	result := w.extractJob(job)
	result.Duration = time.Since(startTime)

	w.Pool.stats.mu.Lock()
	w.Pool.stats.TotalProcessingTime += result.Duration
	if result.Error != nil {
		w.Pool.stats.JobsFailed++
	} else {
		w.Pool.stats.JobsSuccessful++
	}
	w.Pool.stats.mu.Unlock()

	select {
	case job.ResultChan <- result:
		w.logger.Info("Job completed", map[string]interface{}{
			"job_id":          job.ID,
			"processing_time": result.Duration.String(),
			"success":         result.Error == nil,
		})
	case <-time.After(100 * time.Millisecond):
		// Client gave up on this job.
		w.logger.Debug("Result channel timeout", map[string]interface{}{"job_id": job.ID})
	}
}

func (w *Worker) extractJob(job ExtractJob) JobResult {
	result := JobResult{RequestID: job.ID}
	domain := extractDomainFromURL(job.URL)

	extraction, err := w.Pool.pipeline.Extract(job.Context, job.URL, job.Strategy)
	if err != nil {
		result.Error = err
		w.Pool.rateLimiter.RecordFailure(domain)
		return result
	}

	result.Result = extraction
	w.Pool.rateLimiter.RecordSuccess(domain)

	if job.ParseJob && w.Pool.llmManager != nil {
		parsed, err := w.Pool.llmManager.ParseJob(job.Context, extraction.Content, job.URL)
		if err != nil {
			// Extraction still succeeded; parsing is best effort.
			w.logger.Warn("Job parsing failed", map[string]interface{}{
				"job_id": job.ID,
				"error":  err.Error(),
			})
		} else {
			result.Job = parsed
		}
	}

	return result
}
