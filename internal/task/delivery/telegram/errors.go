package telegram

import (
	"errors"

	"task-reminder-bot/internal/task"
	"task-reminder-bot/internal/task/repository"
)

// errorMessage returns a user-facing reply for the given use case error.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, task.ErrExtractionFailure):
		return msgExtractionFailed
	case errors.Is(err, task.ErrInvalidLeadTime):
		return msgInvalidLeadTime
	case errors.Is(err, task.ErrNoPendingIntake):
		return msgNoPendingIntake
	case errors.Is(err, task.ErrEmptyInput):
		return msgEmptyInput
	case errors.Is(err, repository.ErrPersistence):
		return msgSaveFailed
	default:
		return msgGenericError
	}
}
