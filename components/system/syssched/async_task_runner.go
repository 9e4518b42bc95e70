package syssched

import (
	"context"
	"time"
)

// AsyncTaskRunnerParams represents various options for AsyncTaskRunner.
type AsyncTaskRunnerParams struct {
	// UpdateInterval - how often to run the task.
	UpdateInterval time.Duration

	// ExitOnSuccess - stop the runner after the first successful task run.
	ExitOnSuccess bool
}

// AsyncTaskRunner periodically runs a task in the standalone goroutine.
type AsyncTaskRunner struct {
	ctx     context.Context
	doneCh  chan struct{}
	task    Task
	handler ErrorHandler
	params  AsyncTaskRunnerParams
}

// NewAsyncTaskRunner is an initialization of AsyncTaskRunner.
//
// Parameters:
//   - ctx - parent context.
//   - task to be run periodically.
//   - handler to be notified about task errors, can be nil.
//   - params - various runner options.
func NewAsyncTaskRunner(
	ctx context.Context,
	task Task,
	handler ErrorHandler,
	params AsyncTaskRunnerParams,
) *AsyncTaskRunner {
	return &AsyncTaskRunner{
		ctx:     ctx,
		doneCh:  make(chan struct{}),
		task:    task,
		handler: handler,
		params:  params,
	}
}

// Start begins asynchronous task processing.
func (r *AsyncTaskRunner) Start() error {
	go r.run()

	return nil
}

// Stop ends asynchronous task processing.
func (r *AsyncTaskRunner) Stop() error {
	<-r.doneCh

	return nil
}

func (r *AsyncTaskRunner) run() {
	defer close(r.doneCh)

	if r.runTask() && r.params.ExitOnSuccess {
		return
	}

	ticker := time.NewTicker(r.params.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if r.runTask() && r.params.ExitOnSuccess {
				return
			}

		case <-r.ctx.Done():
			return
		}
	}
}

func (r *AsyncTaskRunner) runTask() bool {
	err := r.task.Run()
	if err != nil && r.handler != nil {
		r.handler.HandleError(err)
	}

	return err == nil
}
