package reminder

import (
	"context"
)

// Notifier delivers a reminder to its owner.
// Implementations wrap transport failures with ErrDeliveryFailure.
type Notifier interface {
	DeliverReminder(ctx context.Context, ownerID int64, text string) error
}

// Scheduler periodically fires due reminders.
type Scheduler interface {
	// Sweep runs a single pass over the stored tasks.
	Sweep(ctx context.Context) SweepResult
	// Start sweeps immediately and then every interval until ctx is cancelled.
	Start(ctx context.Context) error
}
