package reminder

import (
	"context"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task/repository"
)

// ReminderText is the message sent when a task fires.
func ReminderText(t model.Task) string {
	return "🔔 Напоминание: " + t.Text
}

// Sweep delivers every due, pending task once and persists the delivered ones
// with a single MarkNotified call. Failed deliveries stay pending for the next sweep.
func (s *implScheduler) Sweep(ctx context.Context) SweepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res SweepResult

	tasks, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.l.Errorf(ctx, "reminder.Sweep: load tasks: %v", err)
		res.LoadErr = err
		return res
	}

	now := s.opts.Clock()
	var delivered []string

	for _, t := range tasks {
		if !t.IsDue(now) {
			continue
		}
		res.Due++

		if s.exhausted(t.ID) {
			res.Skipped++
			continue
		}

		if err := s.deliver(ctx, t); err != nil {
			res.Failed++
			s.failures[t.ID]++
			s.l.Warnf(ctx, "reminder.Sweep: deliver id=%s owner=%d attempt=%d: %v", t.ID, t.OwnerID, s.failures[t.ID], err)
			continue
		}

		res.Delivered++
		delete(s.failures, t.ID)
		delivered = append(delivered, t.ID)
	}

	if len(delivered) == 0 {
		return res
	}

	// Delivered reminders that fail to persist will be sent again next sweep.
	n, err := s.repo.MarkNotified(context.WithoutCancel(ctx), repository.MarkNotifiedOptions{IDs: delivered})
	if err != nil {
		s.l.Errorf(ctx, "reminder.Sweep: mark %d notified: %v", len(delivered), err)
		res.MarkErr = err
		return res
	}
	res.Marked = n

	s.l.Infof(ctx, "reminder.Sweep: due=%d delivered=%d failed=%d skipped=%d", res.Due, res.Delivered, res.Failed, res.Skipped)
	return res
}

// deliver runs on a context detached from ctx so shutdown does not cut a send short.
func (s *implScheduler) deliver(ctx context.Context, t model.Task) error {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.DeliveryTimeout)
	defer cancel()
	return s.notifier.DeliverReminder(dctx, t.OwnerID, ReminderText(t))
}

func (s *implScheduler) exhausted(id string) bool {
	return s.opts.MaxAttempts > 0 && s.failures[id] >= s.opts.MaxAttempts
}
