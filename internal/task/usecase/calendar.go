package usecase

import (
	"context"
	"time"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/pkg/gcalendar"
)

const calendarEventDuration = 30 * time.Minute

// tryMirrorToCalendar copies the task into Google Calendar with a popup
// reminder at the same lead time. Returns the event link, or "" when the
// mirror is disabled or fails.
func (uc *implUseCase) tryMirrorToCalendar(ctx context.Context, t model.Task) string {
	if uc.calendar == nil {
		return ""
	}

	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:      uc.calendarID,
		Summary:         t.Text,
		Description:     "task-reminder-bot: " + t.ID,
		StartTime:       t.DueAt,
		EndTime:         t.DueAt.Add(calendarEventDuration),
		ReminderMinutes: t.LeadMinutes,
	})
	if err != nil {
		uc.l.Warnf(ctx, "CompleteIntake: calendar mirror failed for id=%s (non-fatal): %v", t.ID, err)
		return ""
	}
	return event.HtmlLink
}
