package jsonfile

import (
	"sync"
	"time"

	"task-reminder-bot/internal/task/repository"
	pkgLog "task-reminder-bot/pkg/log"
)

type implRepository struct {
	mu       sync.Mutex
	path     string
	location *time.Location
	l        pkgLog.Logger
}

// New creates a task repository persisted as a single JSON array at path.
// Naive timestamps in the file are read and written in loc.
func New(path string, loc *time.Location, l pkgLog.Logger) repository.TaskRepository {
	if loc == nil {
		loc = time.Local
	}
	return &implRepository{
		path:     path,
		location: loc,
		l:        l,
	}
}
