package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/StephCurry07/Appication-Tracker/internal/config"
	"github.com/StephCurry07/Appication-Tracker/internal/extractor/workers"
	"github.com/StephCurry07/Appication-Tracker/internal/logging"
	"github.com/StephCurry07/Appication-Tracker/pkg/models"
)

const (
	DefaultMaxWorkers   = 10
	DefaultMaxQueueSize = 100
)

// TaskManager runs extraction tasks in the background.
type TaskManager interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	// SubmitExtractTask queues an extraction for background processing.
	SubmitExtractTask(ctx context.Context, processID string, request models.ExtractRequest, poolManager *workers.PoolManager) error

	GetTaskResult(ctx context.Context, processID string) (*TaskResult, error)
	GetTaskStatus(ctx context.Context, processID string) (TaskStatus, error)
	ListTasks(ctx context.Context) ([]*TaskResult, error)
	IsHealthy() bool
}

// TaskManagerImpl is the default TaskManager.
type TaskManagerImpl struct {
	config       *config.Config
	store        TaskStore
	logger       logging.Logger
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	mu           sync.RWMutex
	running      bool
	taskChan     chan *taskExecution
	maxWorkers   int
	maxQueueSize int
}

type taskExecution struct {
	ProcessID   string
	Type        TaskType
	Context     context.Context
	Cancel      context.CancelFunc
	ExecuteFunc func(context.Context) (*TaskResult, error)
}

// NewTaskManager creates a task manager. It stores results in Redis when
// configured, falling back to the in-memory store otherwise.
func NewTaskManager(cfg *config.Config) *TaskManagerImpl {
	logger := logging.GetGlobalLogger().WithField("component", "task_manager")

	maxWorkers := cfg.BackgroundTasks.MaxConcurrentTasks
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	maxQueueSize := cfg.Workers.QueueSize
	if maxQueueSize <= 0 {
		maxQueueSize = DefaultMaxQueueSize
	}

	var store TaskStore
	if cfg.Redis.Enabled {
		redisStore, err := NewRedisTaskStore(cfg)
		if err != nil {
			logger.Warn("Redis task store unavailable, using in-memory store", map[string]interface{}{
				"error": err.Error(),
			})
			store = NewInMemoryTaskStore()
		} else {
			logger.Info("Using Redis task store")
			store = redisStore
		}
	} else {
		store = NewInMemoryTaskStore()
	}

	return &TaskManagerImpl{
		config:       cfg,
		store:        store,
		logger:       logger,
		maxWorkers:   maxWorkers,
		maxQueueSize: maxQueueSize,
		taskChan:     make(chan *taskExecution, maxQueueSize),
	}
}

// Start launches the task workers and cleanup loop.
func (tm *TaskManagerImpl) Start(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.running {
		return fmt.Errorf("task manager already running")
	}

	tm.ctx, tm.cancel = context.WithCancel(ctx)
	tm.running = true

	for i := 0; i < tm.maxWorkers; i++ {
		tm.wg.Add(1)
		go tm.worker(i)
	}

	tm.wg.Add(1)
	go tm.cleanupRoutine()

	tm.logger.Info("Task manager started", map[string]interface{}{"max_workers": tm.maxWorkers})
	return nil
}

// Stop shuts down the task manager, waiting up to the context deadline for
// in-flight tasks.
func (tm *TaskManagerImpl) Stop(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if !tm.running {
		return nil
	}

	tm.cancel()
	close(tm.taskChan)

	done := make(chan struct{})
	go func() {
		tm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		tm.logger.Info("Task manager stopped gracefully")
	case <-ctx.Done():
		tm.logger.Warn("Task manager shutdown timed out")
	}

	if redisStore, ok := tm.store.(*RedisTaskStore); ok {
		if err := redisStore.Close(); err != nil {
			tm.logger.Warn("Error closing Redis task store", map[string]interface{}{"error": err.Error()})
		}
	}

	tm.running = false
	return nil
}

// SubmitExtractTask records the task as accepted and queues it.
func (tm *TaskManagerImpl) SubmitExtractTask(ctx context.Context, processID string, request models.ExtractRequest, poolManager *workers.PoolManager) error {
	if !tm.IsHealthy() {
		return fmt.Errorf("task manager is not healthy")
	}

	result := &TaskResult{
		ProcessID: processID,
		Type:      TaskTypeExtract,
		Status:    TaskStatusAccepted,
		CreatedAt: time.Now(),
		Metadata: map[string]interface{}{
			"url":      request.URL,
			"strategy": request.NormalizedStrategy(),
		},
	}

	if err := tm.store.Store(ctx, result); err != nil {
		return fmt.Errorf("failed to store task result: %w", err)
	}

	taskCtx, cancelFunc := context.WithTimeout(tm.ctx, tm.config.BackgroundTasks.TaskTimeout)
	execution := &taskExecution{
		ProcessID: processID,
		Type:      TaskTypeExtract,
		Context:   taskCtx,
		Cancel:    cancelFunc,
		ExecuteFunc: func(execCtx context.Context) (*TaskResult, error) {
			return tm.executeExtractTask(execCtx, processID, request, poolManager)
		},
	}

	select {
	case tm.taskChan <- execution:
		return nil
	case <-ctx.Done():
		cancelFunc()
		return ctx.Err()
	default:
		cancelFunc()
		return fmt.Errorf("task queue is full")
	}
}

// GetTaskResult retrieves a task result by process ID.
func (tm *TaskManagerImpl) GetTaskResult(ctx context.Context, processID string) (*TaskResult, error) {
	return tm.store.Get(ctx, processID)
}

// GetTaskStatus retrieves a task's status by process ID.
func (tm *TaskManagerImpl) GetTaskStatus(ctx context.Context, processID string) (TaskStatus, error) {
	result, err := tm.store.Get(ctx, processID)
	if err != nil {
		return "", err
	}
	return result.Status, nil
}

// ListTasks returns all stored tasks.
func (tm *TaskManagerImpl) ListTasks(ctx context.Context) ([]*TaskResult, error) {
	return tm.store.List(ctx)
}

// IsHealthy reports whether the manager is running.
func (tm *TaskManagerImpl) IsHealthy() bool {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.running && tm.ctx.Err() == nil
}

func (tm *TaskManagerImpl) worker(workerID int) {
	defer tm.wg.Done()

	for {
		select {
		case <-tm.ctx.Done():
			return
		case task, ok := <-tm.taskChan:
			if !ok {
				return
			}
			tm.processTask(workerID, task)
		}
	}
}

func (tm *TaskManagerImpl) processTask(workerID int, task *taskExecution) {
	startTime := time.Now()

	tm.logger.Info("Processing task", map[string]interface{}{
		"worker_id":  workerID,
		"process_id": task.ProcessID,
		"task_type":  task.Type,
	})

	if err := tm.updateTaskStatus(task.ProcessID, TaskStatusProcessing); err != nil {
		tm.logger.Error("Failed to update task status", map[string]interface{}{"error": err.Error()})
	}

	result, err := task.ExecuteFunc(task.Context)
	processingTime := time.Since(startTime)

	if err != nil {
		tm.logger.Error("Task execution failed", map[string]interface{}{
			"process_id":      task.ProcessID,
			"processing_time": processingTime.String(),
			"error":           err.Error(),
		})

		existing, getErr := tm.store.Get(task.Context, task.ProcessID)
		if getErr != nil {
			result = &TaskResult{
				ProcessID:      task.ProcessID,
				Type:           task.Type,
				Status:         TaskStatusFailure,
				Error:          err.Error(),
				CreatedAt:      time.Now(),
				ProcessingTime: &processingTime,
			}
		} else {
			existing.Status = TaskStatusFailure
			existing.Error = err.Error()
			existing.ProcessingTime = &processingTime
			result = existing
		}
	} else {
		result.Status = TaskStatusSuccess
		result.ProcessingTime = &processingTime
		completedAt := time.Now()
		result.CompletedAt = &completedAt

		tm.logger.Info("Task completed", map[string]interface{}{
			"process_id":      task.ProcessID,
			"processing_time": processingTime.String(),
		})
	}

	if err := tm.store.Update(context.Background(), result); err != nil {
		tm.logger.Error("Failed to store task result", map[string]interface{}{"error": err.Error()})
	}

	if task.Cancel != nil {
		task.Cancel()
	}
}

func (tm *TaskManagerImpl) updateTaskStatus(processID string, status TaskStatus) error {
	result, err := tm.store.Get(context.Background(), processID)
	if err != nil {
		return err
	}
	result.Status = status
	return tm.store.Update(context.Background(), result)
}

func (tm *TaskManagerImpl) cleanupRoutine() {
	defer tm.wg.Done()

	ticker := time.NewTicker(tm.config.BackgroundTasks.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-tm.ctx.Done():
			return
		case <-ticker.C:
			if err := tm.store.Cleanup(context.Background(), tm.config.BackgroundTasks.MaxTaskAge); err != nil {
				tm.logger.Error("Failed to clean up old task results", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

func (tm *TaskManagerImpl) executeExtractTask(ctx context.Context, processID string, request models.ExtractRequest, poolManager *workers.PoolManager) (*TaskResult, error) {
	existing, err := tm.store.Get(ctx, processID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}

	jobResult, err := poolManager.SubmitJob(ctx, request.URL, request.NormalizedStrategy(), request.ParseJob)
	if err != nil {
		return nil, err
	}
	if jobResult.Error != nil {
		return nil, jobResult.Error
	}

	existing.Data = &ExtractTaskData{
		Result: jobResult.Result,
		Job:    jobResult.Job,
		URL:    request.URL,
	}
	return existing, nil
}
