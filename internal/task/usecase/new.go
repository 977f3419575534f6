package usecase

import (
	"context"
	"time"

	"task-reminder-bot/internal/task"
	"task-reminder-bot/internal/task/intake"
	"task-reminder-bot/internal/task/repository"
	"task-reminder-bot/pkg/gcalendar"
	pkgLog "task-reminder-bot/pkg/log"
)

// DateExtractor finds a timestamp in free text. *datemath.Parser satisfies it.
type DateExtractor interface {
	Extract(text string, now time.Time) (time.Time, bool)
	Location() *time.Location
}

// CalendarClient mirrors persisted tasks into an external calendar. *gcalendar.Client satisfies it.
type CalendarClient interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

// Options tunes the use case. Zero values are usable.
type Options struct {
	// Calendar enables the calendar mirror when non-nil.
	Calendar   CalendarClient
	CalendarID string
	Clock      func() time.Time
}

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.TaskRepository
	pending    *intake.Store
	dates      DateExtractor
	calendar   CalendarClient
	calendarID string
	now        func() time.Time
}

var _ task.UseCase = (*implUseCase)(nil)

// New creates a new task UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.TaskRepository,
	pending *intake.Store,
	dates DateExtractor,
	opts Options,
) task.UseCase {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.CalendarID == "" {
		opts.CalendarID = "primary"
	}
	return &implUseCase{
		l:          l,
		repo:       repo,
		pending:    pending,
		dates:      dates,
		calendar:   opts.Calendar,
		calendarID: opts.CalendarID,
		now:        opts.Clock,
	}
}
