package jsonfile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task/repository"
)

func (r *implRepository) LoadAll(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.read()
}

func (r *implRepository) Add(ctx context.Context, task model.Task) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.Notified = false
	task.DueAt = task.DueAt.In(r.location).Truncate(time.Microsecond)
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.read()
	if err != nil {
		return model.Task{}, err
	}
	tasks = append(tasks, task)
	if err := r.write(tasks); err != nil {
		r.l.Errorf(ctx, "jsonfile repository: failed to add task for owner=%d: %v", task.OwnerID, err)
		return model.Task{}, err
	}

	return task, nil
}

func (r *implRepository) ListByOwner(ctx context.Context, ownerID int64) ([]repository.IndexedTask, error) {
	tasks, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]repository.IndexedTask, 0)
	for _, t := range tasks {
		if t.OwnerID != ownerID {
			continue
		}
		out = append(out, repository.IndexedTask{Position: len(out) + 1, Task: t})
	}
	return out, nil
}

func (r *implRepository) MarkNotified(ctx context.Context, opt repository.MarkNotifiedOptions) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(opt.IDs) == 0 {
		return 0, nil
	}

	ids := make(map[string]struct{}, len(opt.IDs))
	for _, id := range opt.IDs {
		ids[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.read()
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range tasks {
		if _, ok := ids[tasks[i].ID]; !ok || tasks[i].Notified {
			continue
		}
		tasks[i].Notified = true
		changed++
	}
	if changed == 0 {
		return 0, nil
	}

	if err := r.write(tasks); err != nil {
		r.l.Errorf(ctx, "jsonfile repository: failed to mark %d task(s) notified: %v", changed, err)
		return 0, err
	}
	return changed, nil
}
