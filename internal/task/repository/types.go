package repository

import "task-reminder-bot/internal/model"

// IndexedTask pairs a task with its display position (1-based).
type IndexedTask struct {
	Position int
	Task     model.Task
}

// MarkNotifiedOptions selects the tasks to flip.
type MarkNotifiedOptions struct {
	IDs []string
}
