package reminder

import "time"

const (
	DefaultInterval        = 30 * time.Second
	DefaultDeliveryTimeout = 10 * time.Second
)

// Options tunes the scheduler. Zero values take the defaults.
type Options struct {
	Interval        time.Duration
	DeliveryTimeout time.Duration
	// MaxAttempts bounds failed deliveries per task until restart; 0 retries forever.
	MaxAttempts int
	Clock       func() time.Time
}

// SweepResult counts what a single sweep did.
type SweepResult struct {
	Due       int // pending tasks whose notify time has passed
	Delivered int
	Failed    int
	Skipped   int // gave up after MaxAttempts
	Marked    int // tasks flipped to notified in storage
	LoadErr   error
	MarkErr   error
}
