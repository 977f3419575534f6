package model

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidTask is returned by Task.Validate.
var ErrInvalidTask = errors.New("model: invalid task")

// MaxLeadMinutes is the largest lead time whose duration fits in time.Duration.
const MaxLeadMinutes = int(math.MaxInt64 / int64(time.Minute))

var validate = validator.New(validator.WithRequiredStructEnabled())

// Task is a persisted one-shot reminder.
// Only Notified ever changes after creation, and only from false to true.
type Task struct {
	ID          string    `validate:"required"`
	Text        string    `validate:"required"`
	DueAt       time.Time `validate:"required"`
	OwnerID     int64     `validate:"required"`
	LeadMinutes int       `validate:"min=0,max=153722867"`
	Notified    bool
}

// NotifyAt is the instant after which the reminder may be delivered.
func (t Task) NotifyAt() time.Time {
	return t.DueAt.Add(-time.Duration(t.LeadMinutes) * time.Minute)
}

// IsDue reports whether the reminder is pending and its notify time has passed.
func (t Task) IsDue(now time.Time) bool {
	return !t.Notified && !now.Before(t.NotifyAt())
}

// Validate checks the invariants every stored task must satisfy.
func (t Task) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}
	return nil
}

// PendingIntake holds a recognized task while its lead time is being asked for.
type PendingIntake struct {
	OwnerID   int64
	Text      string
	DueAt     time.Time
	CreatedAt time.Time
}
