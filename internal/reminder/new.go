package reminder

import (
	"sync"
	"time"

	"task-reminder-bot/internal/task/repository"
	pkgLog "task-reminder-bot/pkg/log"
)

type implScheduler struct {
	l        pkgLog.Logger
	repo     repository.TaskRepository
	notifier Notifier
	opts     Options

	// serializes sweeps and guards failures
	mu       sync.Mutex
	failures map[string]int
}

// New creates a reminder Scheduler.
func New(l pkgLog.Logger, repo repository.TaskRepository, notifier Notifier, opts Options) Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.DeliveryTimeout <= 0 {
		opts.DeliveryTimeout = DefaultDeliveryTimeout
	}
	if opts.MaxAttempts < 0 {
		opts.MaxAttempts = 0
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &implScheduler{
		l:        l,
		repo:     repo,
		notifier: notifier,
		opts:     opts,
		failures: make(map[string]int),
	}
}
