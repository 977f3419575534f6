package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"task-reminder-bot/config"
	_ "task-reminder-bot/docs" // Swagger docs
	"task-reminder-bot/internal/httpserver"
	"task-reminder-bot/internal/reminder"
	tgDelivery "task-reminder-bot/internal/task/delivery/telegram"
	"task-reminder-bot/internal/task/intake"
	"task-reminder-bot/internal/task/repository"
	"task-reminder-bot/internal/task/repository/jsonfile"
	sqliteRepo "task-reminder-bot/internal/task/repository/sqlite"
	"task-reminder-bot/internal/task/usecase"
	"task-reminder-bot/internal/test"
	"task-reminder-bot/internal/webhook"
	"task-reminder-bot/pkg/datemath"
	"task-reminder-bot/pkg/gcalendar"
	"task-reminder-bot/pkg/log"
	"task-reminder-bot/pkg/telegram"
)

// @title       Task Reminder Bot API
// @description Telegram bot that turns free-text messages into scheduled reminders.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	defer log.Sync(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Task Reminder Bot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	if cfg.Telegram.BotToken == "" {
		logger.Fatal(ctx, "telegram.bot_token is required")
	}

	// 3. Date/time extraction
	parser, err := datemath.NewParser(datemath.Options{
		Languages:    cfg.DateTime.Languages,
		DateOrder:    cfg.DateTime.DateOrder,
		PreferFuture: cfg.DateTime.PreferFuture,
		Timezone:     cfg.DateTime.Timezone,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize date parser: %v", err)
	}
	logger.Infof(ctx, "Date parser ready: languages=%v order=%s tz=%s", cfg.DateTime.Languages, cfg.DateTime.DateOrder, parser.Location())

	// 4. Task store
	taskRepo, closeRepo, err := openTaskRepository(cfg.Storage, parser.Location(), logger)
	if err != nil {
		logger.Fatalf(ctx, "Failed to open task store: %v", err)
	}
	defer closeRepo()

	// 5. Google Calendar mirror (optional)
	ucOpts := usecase.Options{CalendarID: cfg.GoogleCalendar.CalendarID}
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
			logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
		} else {
			ucOpts.Calendar = calendarClient
			logger.Info(ctx, "✅ Google Calendar mirror enabled")
		}
	}

	// 6. Task use case
	pending := intake.NewStore(cfg.Intake.Capacity, cfg.Intake.TTL)
	taskUC := usecase.New(logger, taskRepo, pending, parser, ucOpts)

	// 7. Telegram delivery
	bot := telegram.NewBot(cfg.Telegram.BotToken)
	security := webhook.NewSecurityValidator(webhook.SecurityConfig{
		Secret:          cfg.Telegram.WebhookSecret,
		AllowedIPs:      cfg.Telegram.AllowedIPs,
		RateLimitPerMin: cfg.Telegram.RateLimitPerMin,
	})
	telegramHandler := tgDelivery.New(logger, taskUC, bot, security, parser.Location())

	go registerWebhook(ctx, logger, bot, cfg.Telegram)

	// 8. Reminder scheduler
	scheduler := reminder.New(logger, taskRepo, tgDelivery.NewNotifier(logger, bot), reminder.Options{
		Interval:        cfg.Scheduler.Interval,
		DeliveryTimeout: cfg.Scheduler.DeliveryTimeout,
		MaxAttempts:     cfg.Scheduler.MaxAttempts,
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = scheduler.Start(ctx)
	}()

	// 9. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: telegramHandler,
		WebhookGuard:    security.TelegramGuard(logger),
		Readiness: func(ctx context.Context) error {
			_, err := taskRepo.LoadAll(ctx)
			return err
		},
		TestHandler: test.New(logger, taskUC, scheduler),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		stop()
		wg.Wait()
		return
	}

	// 10. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		stop()
	}

	wg.Wait()
	logger.Info(context.Background(), "Server stopped gracefully")
}

// openTaskRepository picks the storage backend. The returned func releases it.
func openTaskRepository(cfg config.StorageConfig, loc *time.Location, l log.Logger) (repository.TaskRepository, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		repo, err := sqliteRepo.Open(cfg.Path, loc, l)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		return jsonfile.New(cfg.Path, loc, l), func() {}, nil
	}
}

// registerWebhook points Telegram at this service: auto-detect ngrok or use the configured URL.
func registerWebhook(ctx context.Context, l log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" {
		ngrokURL, err := detectNgrokURL(ctx, "http://ngrok:4040")
		if err != nil {
			l.Warnf(ctx, "Could not detect ngrok URL: %v", err)
			return
		}
		webhookURL = ngrokURL + "/webhook/telegram"
		l.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
	}

	if err := bot.SetWebhook(ctx, webhookURL, cfg.WebhookSecret); err != nil {
		l.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	l.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
}
