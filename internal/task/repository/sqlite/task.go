package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task/repository"
)

const selectColumns = `SELECT id, text, due_at, user_id, remind_before, notified FROM tasks`

func (r *implRepository) LoadAll(ctx context.Context) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.query(ctx, selectColumns+` ORDER BY seq`)
}

func (r *implRepository) Add(ctx context.Context, task model.Task) (model.Task, error) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.Notified = false
	task.DueAt = task.DueAt.Truncate(time.Microsecond)
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, text, due_at, user_id, remind_before, notified)
		VALUES (?, ?, ?, ?, ?, 0)`,
		task.ID, task.Text, task.DueAt.UTC().Format(timeLayout), task.OwnerID, task.LeadMinutes,
	)
	if err != nil {
		r.l.Errorf(ctx, "sqlite repository: failed to add task for owner=%d: %v", task.OwnerID, err)
		return model.Task{}, fmt.Errorf("%w: insert task: %v", repository.ErrPersistence, err)
	}
	return task, nil
}

func (r *implRepository) ListByOwner(ctx context.Context, ownerID int64) ([]repository.IndexedTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.query(ctx, selectColumns+` WHERE user_id = ? ORDER BY seq`, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]repository.IndexedTask, 0, len(tasks))
	for i, t := range tasks {
		out = append(out, repository.IndexedTask{Position: i + 1, Task: t})
	}
	return out, nil
}

func (r *implRepository) MarkNotified(ctx context.Context, opt repository.MarkNotifiedOptions) (int, error) {
	if len(opt.IDs) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %v", repository.ErrPersistence, err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(opt.IDs)), ",")
	args := make([]any, 0, len(opt.IDs))
	for _, id := range opt.IDs {
		args = append(args, id)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE tasks SET notified = 1 WHERE notified = 0 AND id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: mark notified: %v", repository.ErrPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: rows affected: %v", repository.ErrPersistence, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", repository.ErrPersistence, err)
	}
	return int(n), nil
}

// query runs a select over task columns. Callers must hold r.mu.
func (r *implRepository) query(ctx context.Context, q string, args ...any) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query tasks: %v", repository.ErrPersistence, err)
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		t, scanErr := scanTask(rows, r.loc)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrPersistence, scanErr)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrPersistence, err)
	}
	return out, nil
}

func scanTask(rows *sql.Rows, loc *time.Location) (model.Task, error) {
	var (
		t        model.Task
		dueAt    string
		notified int
	)
	if err := rows.Scan(&t.ID, &t.Text, &dueAt, &t.OwnerID, &t.LeadMinutes, &notified); err != nil {
		return model.Task{}, fmt.Errorf("scan task: %w", err)
	}
	due, err := time.Parse(timeLayout, dueAt)
	if err != nil {
		return model.Task{}, fmt.Errorf("parse due_at %q: %w", dueAt, err)
	}
	t.DueAt = due.In(loc)
	t.Notified = notified != 0
	return t, nil
}
