package repository

import (
	"context"

	"task-reminder-bot/internal/model"
)

// TaskRepository is the durable task collection.
// Implementations serialize every call so a concurrent Add and MarkNotified
// never lose each other's update.
type TaskRepository interface {
	// LoadAll returns every task in insertion order. Missing storage is an empty collection.
	LoadAll(ctx context.Context) ([]model.Task, error)

	// Add appends the task and persists it before returning.
	Add(ctx context.Context, task model.Task) (model.Task, error)

	// ListByOwner returns the owner's tasks with 1-based positions.
	ListByOwner(ctx context.Context, ownerID int64) ([]IndexedTask, error)

	// MarkNotified flips Notified on the matching tasks and returns how many changed.
	// Already-notified and unknown ids are ignored.
	MarkNotified(ctx context.Context, opt MarkNotifiedOptions) (int, error)
}
