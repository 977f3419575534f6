package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/reminder"
	"task-reminder-bot/internal/task"
	"task-reminder-bot/internal/task/delivery/telegram"
	"task-reminder-bot/internal/task/repository"
	pkgTelegram "task-reminder-bot/pkg/telegram"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

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

type mockTaskUseCase struct {
	mu sync.Mutex

	pending     bool
	extractAt   time.Time
	extractErr  error
	beginInput  task.BeginIntakeInput
	completeOut task.CompleteIntakeOutput
	completeErr error
	listOut     task.ListTasksOutput
	listErr     error
	abandoned   bool
}

func (m *mockTaskUseCase) ExtractDateTime(ctx context.Context, text string) (time.Time, error) {
	return m.extractAt, m.extractErr
}

func (m *mockTaskUseCase) BeginIntake(ctx context.Context, sc model.Scope, input task.BeginIntakeInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.beginInput = input
	return nil
}

func (m *mockTaskUseCase) CompleteIntake(ctx context.Context, sc model.Scope, input task.CompleteIntakeInput) (task.CompleteIntakeOutput, error) {
	return m.completeOut, m.completeErr
}

func (m *mockTaskUseCase) AbandonIntake(ctx context.Context, sc model.Scope) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.abandoned = true
	return m.pending
}

func (m *mockTaskUseCase) HasPendingIntake(ctx context.Context, sc model.Scope) bool {
	return m.pending
}

func (m *mockTaskUseCase) ListTasks(ctx context.Context, sc model.Scope) (task.ListTasksOutput, error) {
	return m.listOut, m.listErr
}

type mockLimiter struct{ err error }

func (m *mockLimiter) CheckRateLimit(chatID int64) error { return m.err }

// ── Test Helpers ───────────────────────────────────────────────────────────

type captured struct {
	mu   sync.Mutex
	msgs []string
	fail bool
}

func (c *captured) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.msgs...)
}

type testEnv struct {
	engine *gin.Engine
	muc    *mockTaskUseCase
	tg     *captured
	bot    *pkgTelegram.Bot
}

func newTestEnv(t *testing.T, limiter telegram.RateLimiter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tg := &captured{}
	tgServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tg.mu.Lock()
		defer tg.mu.Unlock()
		if tg.fail {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"ok": false, "description": "bot was blocked by the user"}`))
			return
		}
		if strings.Contains(r.URL.Path, "/sendMessage") {
			var payload pkgTelegram.SendMessageRequest
			json.NewDecoder(r.Body).Decode(&payload)
			tg.msgs = append(tg.msgs, payload.Text)
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(tgServer.Close)

	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(tgServer.URL)

	muc := &mockTaskUseCase{}
	engine := gin.New()
	h := telegram.New(&mockLogger{}, muc, bot, limiter, time.UTC)
	engine.POST("/webhook/telegram", h.HandleWebhook)

	return &testEnv{engine: engine, muc: muc, tg: tg, bot: bot}
}

func sendWebhook(engine *gin.Engine, text string) *httptest.ResponseRecorder {
	update := pkgTelegram.Update{
		UpdateID: 1,
		Message: &pkgTelegram.Message{
			MessageID: 1,
			Chat:      &pkgTelegram.Chat{ID: 456, Type: "private"},
			From:      &pkgTelegram.User{ID: 456, Username: "alice"},
			Text:      text,
		},
	}
	body, _ := json.Marshal(update)
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func waitForMessages(tg *captured, atLeast int, timeout time.Duration) []string {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) && len(tg.all()) < atLeast {
		time.Sleep(10 * time.Millisecond)
	}
	return tg.all()
}

func assertContains(t *testing.T, msgs []string, substr string) {
	t.Helper()
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Errorf("expected a message containing %q, got: %v", substr, msgs)
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestHandleWebhook_InvalidJSON(t *testing.T) {
	env := newTestEnv(t, nil)

	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString("{bad json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHandleWebhook_NonMessageUpdate(t *testing.T) {
	env := newTestEnv(t, nil)

	body, _ := json.Marshal(pkgTelegram.Update{UpdateID: 1})
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestHandleWebhook_RateLimited(t *testing.T) {
	env := newTestEnv(t, &mockLimiter{err: errors.New("rate limit exceeded")})

	w := sendWebhook(env.engine, "/start")
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func TestHandleStart(t *testing.T) {
	env := newTestEnv(t, &mockLimiter{})

	if w := sendWebhook(env.engine, "/start"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	msgs := waitForMessages(env.tg, 1, 2*time.Second)
	assertContains(t, msgs, "Привет, @alice!")
}

func TestHandleHelpCommand(t *testing.T) {
	env := newTestEnv(t, nil)

	sendWebhook(env.engine, "/help@reminder_bot")
	msgs := waitForMessages(env.tg, 1, 2*time.Second)
	assertContains(t, msgs, "Как пользоваться:")
	for _, m := range msgs {
		if strings.Contains(m, "Не знаю такой команды") {
			t.Errorf("/help must not be treated as unknown: %q", m)
		}
	}
}

func TestHandleUnknownCommandShowsHelp(t *testing.T) {
	env := newTestEnv(t, nil)

	sendWebhook(env.engine, "/whatever")
	msgs := waitForMessages(env.tg, 1, 2*time.Second)
	assertContains(t, msgs, "Не знаю такой команды")
	assertContains(t, msgs, "/tasks")
}

func TestHandleNewTask(t *testing.T) {
	t.Run("date recognized", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.muc.extractAt = time.Date(2025, 5, 12, 18, 0, 0, 0, time.UTC)

		sendWebhook(env.engine, "Позвонить врачу 12.05.2025 в 18:00")
		msgs := waitForMessages(env.tg, 1, 2*time.Second)
		assertContains(t, msgs, "За сколько минут до события напомнить?")

		env.muc.mu.Lock()
		defer env.muc.mu.Unlock()
		if env.muc.beginInput.Text != "Позвонить врачу 12.05.2025 в 18:00" || !env.muc.beginInput.DueAt.Equal(env.muc.extractAt) {
			t.Errorf("unexpected intake %+v", env.muc.beginInput)
		}
	})

	t.Run("date not recognized", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.muc.extractErr = task.ErrExtractionFailure

		sendWebhook(env.engine, "просто текст")
		msgs := waitForMessages(env.tg, 1, 2*time.Second)
		assertContains(t, msgs, "Не смог разобрать дату/время")
	})

	t.Run("bare number without intake", func(t *testing.T) {
		env := newTestEnv(t, nil)

		sendWebhook(env.engine, "15")
		msgs := waitForMessages(env.tg, 1, 2*time.Second)
		assertContains(t, msgs, "Попробуй сначала")
	})
}

func TestHandleLeadTime(t *testing.T) {
	due := time.Date(2025, 5, 12, 18, 0, 0, 0, time.UTC)

	t.Run("accepted", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.muc.pending = true
		env.muc.completeOut = task.CompleteIntakeOutput{
			Task:         model.Task{Text: "Позвонить врачу", DueAt: due, LeadMinutes: 15},
			NotifyAt:     due.Add(-15 * time.Minute),
			CalendarLink: "https://calendar.google.com/ev",
		}

		sendWebhook(env.engine, "15")
		msgs := waitForMessages(env.tg, 1, 2*time.Second)
		assertContains(t, msgs, "✅ Задача добавлена: 'Позвонить врачу'\n🔔 Напоминание будет в 12.05 17:45")
		assertContains(t, msgs, "https://calendar.google.com/ev")
	})

	errCases := []struct {
		name string
		err  error
		want string
	}{
		{name: "invalid", err: task.ErrInvalidLeadTime, want: "Введи количество минут числом"},
		{name: "storage", err: fmt.Errorf("%w: disk full", repository.ErrPersistence), want: "Не удалось сохранить задачу"},
		{name: "expired", err: task.ErrNoPendingIntake, want: "Попробуй сначала"},
		{name: "unexpected", err: errors.New("boom"), want: "Что-то пошло не так"},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.muc.pending = true
			env.muc.completeErr = tc.err

			sendWebhook(env.engine, "abc")
			msgs := waitForMessages(env.tg, 1, 2*time.Second)
			assertContains(t, msgs, tc.want)
		})
	}
}

func TestHandleTasks(t *testing.T) {
	due := time.Date(2025, 5, 12, 18, 0, 0, 0, time.UTC)

	t.Run("listing", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.muc.listOut = task.ListTasksOutput{
			Count: 2,
			Tasks: []task.ListedTask{
				{Position: 1, Task: model.Task{Text: "A", DueAt: due, LeadMinutes: 15}},
				{Position: 2, Task: model.Task{Text: "B", DueAt: due.Add(24 * time.Hour), Notified: true}},
			},
		}

		sendWebhook(env.engine, "/tasks")
		msgs := waitForMessages(env.tg, 1, 2*time.Second)
		want := "📋 Ваши задачи:\n❗ 1. A — 12.05 18:00 (за 15 мин)\n✅ 2. B — 13.05 18:00 (за 0 мин)"
		if len(msgs) != 1 || msgs[0] != want {
			t.Errorf("got %q, want %q", msgs, want)
		}
	})

	t.Run("empty", func(t *testing.T) {
		env := newTestEnv(t, nil)

		sendWebhook(env.engine, "/tasks@reminder_bot")
		msgs := waitForMessages(env.tg, 1, 2*time.Second)
		assertContains(t, msgs, "Задач пока нет.")
	})
}

func TestHandleCancel(t *testing.T) {
	env := newTestEnv(t, nil)
	env.muc.pending = true

	sendWebhook(env.engine, "/cancel")
	msgs := waitForMessages(env.tg, 1, 2*time.Second)
	assertContains(t, msgs, "отменён")

	env.muc.mu.Lock()
	defer env.muc.mu.Unlock()
	if !env.muc.abandoned {
		t.Errorf("expected AbandonIntake to be called")
	}
}

func TestNotifier(t *testing.T) {
	env := newTestEnv(t, nil)
	n := telegram.NewNotifier(&mockLogger{}, env.bot)

	if err := n.DeliverReminder(context.Background(), 42, "🔔 Напоминание: A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertContains(t, env.tg.all(), "🔔 Напоминание: A")

	env.tg.mu.Lock()
	env.tg.fail = true
	env.tg.mu.Unlock()

	err := n.DeliverReminder(context.Background(), 42, "again")
	if !errors.Is(err, reminder.ErrDeliveryFailure) {
		t.Errorf("err = %v, want ErrDeliveryFailure", err)
	}
}
