package reminder

import (
	"context"
	"time"
)

// Start sweeps once right away, picking up reminders that came due while the
// process was down, then once per interval. It returns ctx.Err() after
// cancellation; a sweep in progress is allowed to finish.
func (s *implScheduler) Start(ctx context.Context) error {
	s.l.Infof(ctx, "reminder scheduler started, interval=%s max_attempts=%d", s.opts.Interval, s.opts.MaxAttempts)

	s.Sweep(ctx)

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.l.Infof(context.WithoutCancel(ctx), "reminder scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}
