package task

import (
	"time"

	"task-reminder-bot/internal/model"
)

// BeginIntakeInput is the recognized part of a new task.
type BeginIntakeInput struct {
	Text  string
	DueAt time.Time
}

// CompleteIntakeInput carries the raw lead-time answer from the user.
type CompleteIntakeInput struct {
	LeadTime string
}

// CompleteIntakeOutput is the persisted task and when it will fire.
type CompleteIntakeOutput struct {
	Task         model.Task
	NotifyAt     time.Time
	CalendarLink string // empty unless the calendar mirror is enabled
}

// ListedTask is a task with its 1-based position in the owner's list.
type ListedTask struct {
	Position int
	Task     model.Task
}

// ListTasksOutput is the result of ListTasks.
type ListTasksOutput struct {
	Tasks []ListedTask
	Count int
}
