package reminder_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/reminder"
	"task-reminder-bot/internal/task/repository"
	"task-reminder-bot/internal/task/repository/jsonfile"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type sent struct {
	ownerID int64
	text    string
}

type mockNotifier struct {
	mu       sync.Mutex
	sent     []sent
	failures int // fail this many calls first
	always   bool
}

func (m *mockNotifier) DeliverReminder(ctx context.Context, ownerID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.always || m.failures > 0 {
		m.failures--
		return fmt.Errorf("%w: chat unavailable", reminder.ErrDeliveryFailure)
	}
	m.sent = append(m.sent, sent{ownerID: ownerID, text: text})
	return nil
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

var now = time.Date(2026, 5, 12, 18, 0, 0, 0, time.UTC)

func newRepo(t *testing.T, tasks ...model.Task) repository.TaskRepository {
	t.Helper()
	repo := jsonfile.New(filepath.Join(t.TempDir(), "tasks.json"), time.UTC, &mockLogger{})
	for _, task := range tasks {
		if _, err := repo.Add(context.Background(), task); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return repo
}

func newScheduler(repo repository.TaskRepository, n reminder.Notifier, maxAttempts int) reminder.Scheduler {
	return reminder.New(&mockLogger{}, repo, n, reminder.Options{
		Interval:    time.Hour,
		MaxAttempts: maxAttempts,
		Clock:       func() time.Time { return now },
	})
}

func TestSweep_DeliversOnce(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, model.Task{Text: "Позвонить врачу", DueAt: now.Add(-time.Minute), OwnerID: 42})
	n := &mockNotifier{}
	s := newScheduler(repo, n, 0)

	res := s.Sweep(ctx)
	if res.Due != 1 || res.Delivered != 1 || res.Marked != 1 {
		t.Fatalf("first sweep = %+v", res)
	}
	if n.sent[0].ownerID != 42 || n.sent[0].text != "🔔 Напоминание: Позвонить врачу" {
		t.Errorf("unexpected message %+v", n.sent[0])
	}

	res = s.Sweep(ctx)
	if res.Due != 0 || res.Delivered != 0 {
		t.Errorf("second sweep = %+v, want nothing due", res)
	}
	if n.count() != 1 {
		t.Errorf("delivered %d times, want 1", n.count())
	}

	all, _ := repo.LoadAll(ctx)
	if !all[0].Notified {
		t.Errorf("task should be stored as notified")
	}
}

func TestSweep_RespectsLeadTimeAndState(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t,
		model.Task{Text: "not yet", DueAt: now.Add(20 * time.Minute), OwnerID: 1, LeadMinutes: 15},
		model.Task{Text: "lead reached", DueAt: now.Add(15 * time.Minute), OwnerID: 1, LeadMinutes: 15},
		model.Task{Text: "past", DueAt: now.Add(-24 * time.Hour), OwnerID: 2},
	)
	n := &mockNotifier{}

	res := newScheduler(repo, n, 0).Sweep(ctx)
	if res.Due != 2 || res.Delivered != 2 {
		t.Fatalf("sweep = %+v, want 2 delivered", res)
	}
	if n.sent[0].text != "🔔 Напоминание: lead reached" || n.sent[1].text != "🔔 Напоминание: past" {
		t.Errorf("expected stored order, got %+v", n.sent)
	}
}

func TestSweep_FailureStaysPending(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, model.Task{Text: "retry me", DueAt: now, OwnerID: 7})
	n := &mockNotifier{failures: 1}
	s := newScheduler(repo, n, 0)

	res := s.Sweep(ctx)
	if res.Failed != 1 || res.Delivered != 0 || res.Marked != 0 {
		t.Fatalf("first sweep = %+v", res)
	}
	all, _ := repo.LoadAll(ctx)
	if all[0].Notified {
		t.Fatalf("failed task must stay pending")
	}

	res = s.Sweep(ctx)
	if res.Delivered != 1 || res.Marked != 1 {
		t.Errorf("retry sweep = %+v", res)
	}
}

func TestSweep_MaxAttempts(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, model.Task{Text: "blocked chat", DueAt: now, OwnerID: 9})
	n := &mockNotifier{always: true}
	s := newScheduler(repo, n, 2)

	for i := 0; i < 2; i++ {
		if res := s.Sweep(ctx); res.Failed != 1 {
			t.Fatalf("sweep %d = %+v, want one failure", i+1, res)
		}
	}

	res := s.Sweep(ctx)
	if res.Skipped != 1 || res.Failed != 0 {
		t.Errorf("third sweep = %+v, want skipped", res)
	}
	all, _ := repo.LoadAll(ctx)
	if all[0].Notified {
		t.Errorf("skipped task stays pending in storage")
	}
}

type brokenRepo struct {
	repository.TaskRepository
	loadErr error
	markErr error
}

func (b *brokenRepo) LoadAll(ctx context.Context) ([]model.Task, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return b.TaskRepository.LoadAll(ctx)
}

func (b *brokenRepo) MarkNotified(ctx context.Context, opt repository.MarkNotifiedOptions) (int, error) {
	if b.markErr != nil {
		return 0, b.markErr
	}
	return b.TaskRepository.MarkNotified(ctx, opt)
}

func TestSweep_StorageErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("load", func(t *testing.T) {
		repo := &brokenRepo{TaskRepository: newRepo(t), loadErr: repository.ErrPersistence}
		n := &mockNotifier{}
		res := newScheduler(repo, n, 0).Sweep(ctx)
		if !errors.Is(res.LoadErr, repository.ErrPersistence) || n.count() != 0 {
			t.Errorf("sweep = %+v", res)
		}
	})

	t.Run("mark", func(t *testing.T) {
		inner := newRepo(t, model.Task{Text: "x", DueAt: now, OwnerID: 1})
		repo := &brokenRepo{TaskRepository: inner, markErr: repository.ErrPersistence}
		n := &mockNotifier{}
		s := newScheduler(repo, n, 0)

		res := s.Sweep(ctx)
		if res.Delivered != 1 || !errors.Is(res.MarkErr, repository.ErrPersistence) {
			t.Fatalf("sweep = %+v", res)
		}

		// unpersisted delivery is repeated once storage recovers
		repo.markErr = nil
		res = s.Sweep(ctx)
		if res.Delivered != 1 || res.Marked != 1 {
			t.Errorf("recovery sweep = %+v", res)
		}
	})
}

func TestStart_SweepsImmediatelyAndStops(t *testing.T) {
	repo := newRepo(t, model.Task{Text: "overdue", DueAt: now.Add(-time.Hour), OwnerID: 3})
	n := &mockNotifier{}
	s := newScheduler(repo, n, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for n.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n.count() != 1 {
		t.Fatalf("expected the startup sweep to deliver, got %d", n.count())
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancellation")
	}
}
