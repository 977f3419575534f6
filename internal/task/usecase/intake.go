package usecase

import (
	"context"
	"strconv"
	"strings"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task"
)

// BeginIntake parks the recognized task until the owner answers with a lead time.
// A newer message replaces an unanswered one.
func (uc *implUseCase) BeginIntake(ctx context.Context, sc model.Scope, input task.BeginIntakeInput) error {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return task.ErrEmptyInput
	}
	if input.DueAt.IsZero() {
		return task.ErrExtractionFailure
	}

	uc.pending.Put(model.PendingIntake{
		OwnerID:   sc.OwnerID,
		Text:      text,
		DueAt:     input.DueAt,
		CreatedAt: uc.now(),
	})
	uc.l.Infof(ctx, "BeginIntake: owner=%d due=%s", sc.OwnerID, input.DueAt.Format("2006-01-02 15:04"))
	return nil
}

// CompleteIntake turns the pending intake into a persisted task.
// The intake survives an invalid answer or a storage failure so the owner can retry.
// It is claimed before storing, so concurrent answers store at most one task.
func (uc *implUseCase) CompleteIntake(ctx context.Context, sc model.Scope, input task.CompleteIntakeInput) (task.CompleteIntakeOutput, error) {
	if _, ok := uc.pending.Get(sc.OwnerID); !ok {
		return task.CompleteIntakeOutput{}, task.ErrNoPendingIntake
	}

	lead, err := parseLeadMinutes(input.LeadTime)
	if err != nil {
		return task.CompleteIntakeOutput{}, err
	}

	p, ok := uc.pending.Take(sc.OwnerID)
	if !ok {
		return task.CompleteIntakeOutput{}, task.ErrNoPendingIntake
	}

	created, err := uc.repo.Add(ctx, model.Task{
		Text:        p.Text,
		DueAt:       p.DueAt,
		OwnerID:     sc.OwnerID,
		LeadMinutes: lead,
	})
	if err != nil {
		uc.l.Errorf(ctx, "CompleteIntake: add task for owner=%d: %v", sc.OwnerID, err)
		if !uc.pending.Restore(p) {
			uc.l.Warnf(ctx, "CompleteIntake: owner=%d started a new intake, failed one dropped", sc.OwnerID)
		}
		return task.CompleteIntakeOutput{}, err
	}

	uc.l.Infof(ctx, "CompleteIntake: stored task id=%s owner=%d notify_at=%s",
		created.ID, sc.OwnerID, created.NotifyAt().Format("2006-01-02 15:04"))

	return task.CompleteIntakeOutput{
		Task:         created,
		NotifyAt:     created.NotifyAt(),
		CalendarLink: uc.tryMirrorToCalendar(ctx, created),
	}, nil
}

// AbandonIntake drops the owner's pending intake.
func (uc *implUseCase) AbandonIntake(ctx context.Context, sc model.Scope) bool {
	dropped := uc.pending.Abandon(sc.OwnerID)
	if dropped {
		uc.l.Debugf(ctx, "AbandonIntake: owner=%d", sc.OwnerID)
	}
	return dropped
}

// HasPendingIntake reports whether the next message from the owner is a lead-time answer.
func (uc *implUseCase) HasPendingIntake(ctx context.Context, sc model.Scope) bool {
	_, ok := uc.pending.Get(sc.OwnerID)
	return ok
}

// parseLeadMinutes accepts a whole number of minutes in [0, model.MaxLeadMinutes].
func parseLeadMinutes(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 || n > model.MaxLeadMinutes {
		return 0, task.ErrInvalidLeadTime
	}
	return n, nil
}
