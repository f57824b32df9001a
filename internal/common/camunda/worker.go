package camunda

import (
	"sync"
	"time"

	"ese-registration-workers/internal/common/config"
	"ese-registration-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Registry opens job workers and closes them together on shutdown.
type Registry struct {
	client zbc.Client
	name   string
	logger logger.Logger

	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewRegistry(client zbc.Client, name string, log logger.Logger) *Registry {
	return &Registry{
		client:  client,
		name:    name,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a worker for taskType. Only the listed variables are fetched, so a
// job never sees unrelated process variables.
func (r *Registry) Start(taskType string, cfg config.WorkerConfig, variables []string, handler worker.JobHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workers[taskType]; exists {
		r.logger.Warn("worker already started", map[string]interface{}{"taskType": taskType})
		return
	}

	step := r.client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		Name(r.name).
		MaxJobsActive(cfg.MaxJobsActive).
		Timeout(time.Duration(cfg.Timeout) * time.Millisecond)
	if len(variables) > 0 {
		step = step.FetchVariables(variables...)
	}

	r.workers[taskType] = step.Open()
	r.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": cfg.MaxJobsActive,
		"timeoutMs":     cfg.Timeout,
	})
}

func (r *Registry) TaskTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.workers))
	for t := range r.workers {
		out = append(out, t)
	}
	return out
}

// Stop closes every worker and waits for in-flight jobs.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for taskType, w := range r.workers {
		w.Close()
		w.AwaitClose()
		r.logger.Info("worker stopped", map[string]interface{}{"taskType": taskType})
	}
	r.workers = make(map[string]worker.JobWorker)
}
