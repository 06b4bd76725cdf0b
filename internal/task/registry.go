// SPDX-License-Identifier: MPL-2.0

package task

import (
	"context"
	"fmt"
	"time"

	"webdesk-cli/internal/issue"
)

// Func is a runnable task.
type Func func(ctx context.Context, env *Env) error

// Registry maps task names to their implementations, preserving
// registration order for listings.
type Registry struct {
	order []string
	tasks map[string]Func
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tasks: map[string]Func{}}
}

// Register adds or replaces a task under name.
func (r *Registry) Register(name string, fn Func) {
	if _, exists := r.tasks[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tasks[name] = fn
}

// Names returns the registered task names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Run dispatches a single task by name and logs its duration.
func (r *Registry) Run(ctx context.Context, name string, env *Env) error {
	fn, ok := r.tasks[name]
	if !ok {
		return issue.NewErrorContext().
			WithKind(issue.KindNotFound).
			WithOperation("run task").
			WithResource(name).
			WithSuggestion(fmt.Sprintf("known tasks: %v", r.order)).
			BuildError()
	}
	logger := env.logger()
	logger.Info("task started", "task", name)
	start := time.Now()
	if err := fn(ctx, env); err != nil {
		logger.Error("task failed", "task", name, "duration", time.Since(start), "err", err)
		return fmt.Errorf("task %s: %w", name, err)
	}
	logger.Info("task finished", "task", name, "duration", time.Since(start))
	return nil
}
