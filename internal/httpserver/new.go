package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"task-reminder-bot/internal/middleware"
	tgDelivery "task-reminder-bot/internal/task/delivery/telegram"
	"task-reminder-bot/internal/test"
	"task-reminder-bot/pkg/log"
)

const shutdownTimeout = 10 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	mw          middleware.Middleware

	// Task domain
	telegramHandler tgDelivery.Handler
	webhookGuard    gin.HandlerFunc
	readiness       func(ctx context.Context) error

	// Debug endpoints, never mounted in production
	testHandler test.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Task domain; a nil handler skips the webhook route.
	TelegramHandler tgDelivery.Handler
	// WebhookGuard runs before the Telegram handler (secret token, IP whitelist).
	WebhookGuard gin.HandlerFunc
	// Readiness backs /ready; nil means always ready.
	Readiness func(ctx context.Context) error

	TestHandler test.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		telegramHandler: cfg.TelegramHandler,
		webhookGuard:    cfg.WebhookGuard,
		readiness:       cfg.Readiness,
		testHandler:     cfg.TestHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	srv.mw = middleware.New(logger)

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}

// Handler exposes the routed engine, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
