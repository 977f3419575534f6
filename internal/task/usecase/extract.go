package usecase

import (
	"context"
	"strings"
	"time"

	"task-reminder-bot/internal/task"
)

// ExtractDateTime finds the due timestamp in text relative to the current clock.
func (uc *implUseCase) ExtractDateTime(ctx context.Context, text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, task.ErrExtractionFailure
	}

	dueAt, ok := uc.dates.Extract(text, uc.now().In(uc.dates.Location()))
	if !ok {
		uc.l.Debugf(ctx, "ExtractDateTime: nothing recognized in %q", text)
		return time.Time{}, task.ErrExtractionFailure
	}
	return dueAt, nil
}
