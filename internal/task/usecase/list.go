package usecase

import (
	"context"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task"
)

// ListTasks returns the owner's tasks in insertion order with 1-based positions.
func (uc *implUseCase) ListTasks(ctx context.Context, sc model.Scope) (task.ListTasksOutput, error) {
	indexed, err := uc.repo.ListByOwner(ctx, sc.OwnerID)
	if err != nil {
		uc.l.Errorf(ctx, "ListTasks: owner=%d: %v", sc.OwnerID, err)
		return task.ListTasksOutput{}, err
	}

	out := task.ListTasksOutput{Tasks: make([]task.ListedTask, 0, len(indexed))}
	for _, it := range indexed {
		out.Tasks = append(out.Tasks, task.ListedTask{Position: it.Position, Task: it.Task})
	}
	out.Count = len(out.Tasks)
	return out, nil
}
