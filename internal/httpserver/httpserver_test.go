package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"task-reminder-bot/internal/httpserver"
	"task-reminder-bot/pkg/response"
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

type stubTelegram struct{ hits int }

func (s *stubTelegram) HandleWebhook(c *gin.Context) {
	s.hits++
	c.Status(http.StatusOK)
}

func serve(srv *httpserver.HTTPServer, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewValidation(t *testing.T) {
	tcs := []struct {
		name string
		cfg  httpserver.Config
	}{
		{name: "no mode", cfg: httpserver.Config{Port: 8080}},
		{name: "no port", cfg: httpserver.Config{Mode: gin.TestMode}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := httpserver.New(&mockLogger{}, tc.cfg); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestSystemRoutes(t *testing.T) {
	srv, err := httpserver.New(&mockLogger{}, httpserver.Config{Port: 8080, Mode: gin.TestMode})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := serve(srv, http.MethodGet, path)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status %d", path, w.Code)
		}
		var resp response.Resp
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.ErrorCode != 0 {
			t.Errorf("%s: unexpected body %s", path, w.Body.String())
		}
	}

	if w := serve(srv, http.MethodPost, "/webhook/telegram"); w.Code != http.StatusNotFound {
		t.Errorf("webhook route should be absent without a handler, got %d", w.Code)
	}
}

func TestReadinessFailure(t *testing.T) {
	srv, _ := httpserver.New(&mockLogger{}, httpserver.Config{
		Port:      8080,
		Mode:      gin.TestMode,
		Readiness: func(ctx context.Context) error { return errors.New("disk gone") },
	})

	if w := serve(srv, http.MethodGet, "/ready"); w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if w := serve(srv, http.MethodGet, "/live"); w.Code != http.StatusOK {
		t.Errorf("liveness must not depend on storage, got %d", w.Code)
	}
}

func TestWebhookRouteWithGuard(t *testing.T) {
	tg := &stubTelegram{}
	guard := func(c *gin.Context) {
		if c.GetHeader("X-Telegram-Bot-Api-Secret-Token") != "ok" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
	srv, err := httpserver.New(&mockLogger{}, httpserver.Config{
		Port:            8080,
		Mode:            gin.TestMode,
		TelegramHandler: tg,
		WebhookGuard:    guard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w := serve(srv, http.MethodPost, "/webhook/telegram"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected guard to reject, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", nil)
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "ok")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK || tg.hits != 1 {
		t.Errorf("expected handler to run once, status=%d hits=%d", w.Code, tg.hits)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	srv, err := httpserver.New(&mockLogger{}, httpserver.Config{Port: 38471, Mode: gin.TestMode})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

type stubTest struct{}

func (stubTest) HandleExtract(c *gin.Context) { c.Status(http.StatusOK) }
func (stubTest) HandleSweep(c *gin.Context)   { c.Status(http.StatusOK) }

func TestTestRoutesByEnvironment(t *testing.T) {
	tcs := []struct {
		env    string
		status int
	}{
		{env: "development", status: http.StatusOK},
		{env: "production", status: http.StatusNotFound},
	}

	for _, tc := range tcs {
		t.Run(tc.env, func(t *testing.T) {
			srv, err := httpserver.New(&mockLogger{}, httpserver.Config{
				Port:        8080,
				Mode:        gin.TestMode,
				Environment: tc.env,
				TestHandler: stubTest{},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w := serve(srv, http.MethodPost, "/test/sweep"); w.Code != tc.status {
				t.Errorf("status = %d, want %d", w.Code, tc.status)
			}
		})
	}
}
