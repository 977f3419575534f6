package task

import (
	"context"
	"time"

	"task-reminder-bot/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// ExtractDateTime finds the due timestamp mentioned in free text.
	ExtractDateTime(ctx context.Context, text string) (time.Time, error)

	// BeginIntake remembers a recognized task until its lead time arrives.
	BeginIntake(ctx context.Context, sc model.Scope, input BeginIntakeInput) error

	// CompleteIntake applies the lead-time answer and persists the task.
	CompleteIntake(ctx context.Context, sc model.Scope, input CompleteIntakeInput) (CompleteIntakeOutput, error)

	// AbandonIntake drops the pending intake, reporting whether one existed.
	AbandonIntake(ctx context.Context, sc model.Scope) bool

	// HasPendingIntake reports whether the owner is expected to answer with a lead time.
	HasPendingIntake(ctx context.Context, sc model.Scope) bool

	// ListTasks returns the owner's tasks in insertion order.
	ListTasks(ctx context.Context, sc model.Scope) (ListTasksOutput, error)
}
