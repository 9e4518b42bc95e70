package syssched

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m4k3r-org/miniboot/components/status"
)

type testAsyncTask struct {
	mu        sync.Mutex
	err       error
	callCount int
}

func (t *testAsyncTask) Run() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.callCount++

	return t.err
}

func (t *testAsyncTask) getCallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.callCount
}

func (t *testAsyncTask) setError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.err = err
}

type testErrorHandler struct {
	mu   sync.Mutex
	errs []error
}

func (h *testErrorHandler) HandleError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.errs = append(h.errs, err)
}

func (h *testErrorHandler) errorCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.errs)
}

func TestAsyncTaskRunnerStopOnContextCancel(t *testing.T) {
	task := &testAsyncTask{}
	ctx, cancel := context.WithCancel(context.Background())

	runner := NewAsyncTaskRunner(ctx, task, nil, AsyncTaskRunnerParams{
		UpdateInterval: time.Millisecond * 10,
	})
	require.Nil(t, runner.Start())

	for task.getCallCount() < 3 {
		time.Sleep(time.Millisecond * 5)
	}

	cancel()
	require.Nil(t, runner.Stop())
}

func TestAsyncTaskRunnerExitOnSuccess(t *testing.T) {
	task := &testAsyncTask{
		err: status.StatusNotSupported,
	}
	handler := &testErrorHandler{}

	runner := NewAsyncTaskRunner(context.Background(), task, handler,
		AsyncTaskRunnerParams{
			UpdateInterval: time.Millisecond * 10,
			ExitOnSuccess:  true,
		})
	require.Nil(t, runner.Start())

	for task.getCallCount() < 2 {
		time.Sleep(time.Millisecond * 5)
	}

	task.setError(nil)
	require.Nil(t, runner.Stop())

	require.GreaterOrEqual(t, handler.errorCount(), 2)
}
