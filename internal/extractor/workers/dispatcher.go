package workers

import (
	"sync"

	"github.com/StephCurry07/Appication-Tracker/internal/logging"
)

// Dispatcher distributes queued jobs to workers round-robin.
type Dispatcher struct {
	jobQueue chan ExtractJob
	workers  []*Worker
	quit     chan bool
	logger   logging.Logger
	mu       sync.RWMutex
	running  bool
}

// NewDispatcher creates a dispatcher over the shared job queue.
func NewDispatcher(jobQueue chan ExtractJob, workers []*Worker) *Dispatcher {
	return &Dispatcher{
		jobQueue: jobQueue,
		workers:  workers,
		quit:     make(chan bool),
		logger:   logging.GetGlobalLogger().WithField("component", "dispatcher"),
	}
}

// Start begins dispatching jobs.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return
	}

	go d.dispatch()
	d.running = true
	d.logger.Info("Job dispatcher started", map[string]interface{}{"workers": len(d.workers)})
}

// Stop halts dispatching.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return
	}

	d.quit <- true
	d.running = false
	d.logger.Info("Job dispatcher stopped")
}

func (d *Dispatcher) dispatch() {
	workerIndex := 0

	for {
		select {
		case job := <-d.jobQueue:
			// Round-robin, skipping busy workers so each job lands exactly once.
		assignLoop:
			for {
				worker := d.workers[workerIndex]
				workerIndex = (workerIndex + 1) % len(d.workers)
				select {
				case worker.JobChan <- job:
					break assignLoop
				default:
					continue
				}
			}
		case <-d.quit:
			return
		}
	}
}

// IsRunning reports whether the dispatcher loop is active.
func (d *Dispatcher) IsRunning() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.running
}
