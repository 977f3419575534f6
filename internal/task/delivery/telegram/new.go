package telegram

import (
	"time"

	"github.com/gin-gonic/gin"

	"task-reminder-bot/internal/reminder"
	"task-reminder-bot/internal/task"
	pkgLog "task-reminder-bot/pkg/log"
	pkgTelegram "task-reminder-bot/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// RateLimiter throttles updates per chat. *webhook.SecurityValidator satisfies it.
type RateLimiter interface {
	CheckRateLimit(chatID int64) error
}

type handler struct {
	l        pkgLog.Logger
	uc       task.UseCase
	bot      *pkgTelegram.Bot
	limiter  RateLimiter
	location *time.Location
}

// New creates a new Telegram delivery handler. limiter may be nil.
// Dates in replies are rendered in loc.
func New(l pkgLog.Logger, uc task.UseCase, bot *pkgTelegram.Bot, limiter RateLimiter, loc *time.Location) Handler {
	if loc == nil {
		loc = time.Local
	}
	return &handler{
		l:        l,
		uc:       uc,
		bot:      bot,
		limiter:  limiter,
		location: loc,
	}
}

type notifier struct {
	l   pkgLog.Logger
	bot *pkgTelegram.Bot
}

// NewNotifier sends reminders to the owner's private chat.
func NewNotifier(l pkgLog.Logger, bot *pkgTelegram.Bot) reminder.Notifier {
	return &notifier{l: l, bot: bot}
}
