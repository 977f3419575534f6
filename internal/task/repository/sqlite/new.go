package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"task-reminder-bot/internal/task/repository"
	pkgLog "task-reminder-bot/pkg/log"
)

const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

type implRepository struct {
	mu  sync.Mutex
	db  *sql.DB
	loc *time.Location
	l   pkgLog.Logger
}

// Repository is the SQLite task store. Close releases the database handle.
type Repository interface {
	repository.TaskRepository
	Close() error
}

// New wraps an open database. The schema must already be migrated.
// Loaded due times are returned in loc; nil means time.Local.
func New(db *sql.DB, loc *time.Location, l pkgLog.Logger) (Repository, error) {
	if db == nil {
		return nil, errors.New("sqlite repository: nil db")
	}
	if loc == nil {
		loc = time.Local
	}
	return &implRepository{db: db, loc: loc, l: l}, nil
}

// Open opens (or creates) the database at path and applies migrations.
func Open(path string, loc *time.Location, l pkgLog.Logger) (Repository, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", repository.ErrPersistence, err)
	}
	db.SetMaxOpenConns(1)

	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", repository.ErrPersistence, err)
	}

	repo, err := New(db, loc, l)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *implRepository) Close() error {
	return r.db.Close()
}
