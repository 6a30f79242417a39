package service

import (
	"context"
)

// RunMode selects how a submitted task executes.
type RunMode int

const (
	// RunAsync enqueues the task and returns immediately; errors are logged
	// by the runner.
	RunAsync RunMode = iota
	// RunSync executes the task in place and returns its error. Exists so
	// callers (and tests) can force deterministic execution of work that is
	// normally fire-and-forget.
	RunSync
)

// TaskRunner is the task-submission contract shared by both execution
// strategies.
type TaskRunner interface {
	// Dispatch submits the named task using the given mode. In RunAsync mode
	// the returned error is always nil.
	Dispatch(ctx context.Context, name string, mode RunMode, task func(context.Context) error) error
}
