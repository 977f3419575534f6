package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyInput        = errors.New("input text is empty")
	ErrExtractionFailure = errors.New("no date/time found in text")
	ErrInvalidLeadTime   = errors.New("lead time must be a non-negative whole number of minutes")
	ErrNoPendingIntake   = errors.New("no pending intake for owner")
)
