// Package runner implements the task-submission contract behind webhook
// processing: enqueue-and-return by default, run-in-place on request.
package runner

import (
	"context"
	"log/slog"
	"sync"

	"brewscout/internal/domain/lifecycle"
	"brewscout/internal/domain/service"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Logger *slog.Logger
}

type taskRunner struct {
	logger *slog.Logger
	wg     sync.WaitGroup
}

// New creates the task runner. Shutdown waits for in-flight async tasks,
// bounded by the lifecycle timeout.
func New(params Params) service.TaskRunner {
	runner := &taskRunner{logger: params.Logger}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			done := make(chan struct{})
			go func() {
				runner.wg.Wait()
				close(done)
			}()

			drainCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			select {
			case <-done:
				return nil
			case <-drainCtx.Done():
				params.Logger.Warn("Shutdown with background tasks still in flight")

				return nil
			}
		},
	})

	return runner
}

// Dispatch submits the named task. RunSync executes in place and returns the
// task's error; RunAsync detaches from the request context so the task
// survives the webhook response, and failures are only logged.
func (r *taskRunner) Dispatch(ctx context.Context, name string, mode service.RunMode, task func(context.Context) error) error {
	if mode == service.RunSync {
		return task(ctx)
	}

	r.wg.Add(1)
	go func(taskCtx context.Context) {
		defer r.wg.Done()

		if err := task(taskCtx); err != nil {
			r.logger.Error("Background task failed",
				slog.String("task", name),
				slog.Any("error", err),
			)
		}
	}(context.WithoutCancel(ctx))

	return nil
}
