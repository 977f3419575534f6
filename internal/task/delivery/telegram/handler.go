package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task"
	pkgResponse "task-reminder-bot/pkg/response"
	pkgTelegram "task-reminder-bot/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds immediately and processes the message in a background goroutine
// so Telegram never waits on storage or the calendar mirror.
// @Summary Telegram webhook
// @Description Receives Telegram updates. Requires X-Telegram-Bot-Api-Secret-Token when a secret is configured.
// @Tags Telegram
// @Accept json
// @Produce json
// @Param X-Telegram-Bot-Api-Secret-Token header string false "Secret registered with setWebhook"
// @Param update body object true "Telegram update"
// @Success 200 {object} response.Resp "Accepted"
// @Failure 400 {object} response.Resp "Malformed update"
// @Failure 401 {object} response.Resp "Wrong secret token"
// @Failure 429 {object} response.Resp "Chat rate limit exceeded"
// @Router /webhook/telegram [post]
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (edits, polls, channel posts)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message

	if h.limiter != nil {
		if err := h.limiter.CheckRateLimit(msg.Chat.ID); err != nil {
			h.l.Warnf(ctx, "telegram handler: %v", err)
			pkgResponse.TooManyRequests(c)
			return
		}
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), processTimeout)
		defer cancel()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: processMessage chat=%d failed: %v", msg.Chat.ID, err)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage routes a single message to a command or the intake flow.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	sc := scopeOf(msg)

	if strings.HasPrefix(text, "/") {
		return h.handleCommand(ctx, sc, msg, text)
	}

	if h.uc.HasPendingIntake(ctx, sc) {
		return h.handleLeadTime(ctx, sc, msg.Chat.ID, text)
	}

	// A bare number only makes sense as a lead-time answer.
	if _, err := strconv.Atoi(text); err == nil {
		return h.reply(ctx, msg.Chat.ID, errorMessage(task.ErrNoPendingIntake))
	}

	return h.handleNewTask(ctx, sc, msg.Chat.ID, text)
}

func (h *handler) handleCommand(ctx context.Context, sc model.Scope, msg *pkgTelegram.Message, text string) error {
	// "/tasks@my_bot extra" -> "/tasks"
	cmd := strings.Fields(text)[0]
	if at := strings.IndexByte(cmd, '@'); at > 0 {
		cmd = cmd[:at]
	}

	switch cmd {
	case cmdStart:
		return h.reply(ctx, msg.Chat.ID, fmt.Sprintf(msgGreeting, displayName(msg.From)))
	case cmdTasks:
		return h.handleList(ctx, sc, msg.Chat.ID)
	case cmdHelp:
		return h.reply(ctx, msg.Chat.ID, msgHelp)
	case cmdCancel:
		if h.uc.AbandonIntake(ctx, sc) {
			return h.reply(ctx, msg.Chat.ID, msgCancelled)
		}
		return h.reply(ctx, msg.Chat.ID, msgNothingToCancel)
	default:
		return h.reply(ctx, msg.Chat.ID, msgUnknownCommand+msgHelp)
	}
}

func (h *handler) handleNewTask(ctx context.Context, sc model.Scope, chatID int64, text string) error {
	dueAt, err := h.uc.ExtractDateTime(ctx, text)
	if err != nil {
		return h.reply(ctx, chatID, errorMessage(err))
	}

	if err := h.uc.BeginIntake(ctx, sc, task.BeginIntakeInput{Text: text, DueAt: dueAt}); err != nil {
		return h.reply(ctx, chatID, errorMessage(err))
	}

	return h.reply(ctx, chatID, msgAskLeadTime)
}

func (h *handler) handleLeadTime(ctx context.Context, sc model.Scope, chatID int64, text string) error {
	out, err := h.uc.CompleteIntake(ctx, sc, task.CompleteIntakeInput{LeadTime: text})
	if err != nil {
		return h.reply(ctx, chatID, errorMessage(err))
	}

	reply := fmt.Sprintf(msgTaskAdded, out.Task.Text, out.NotifyAt.In(h.location).Format(listDateLayout))
	if out.CalendarLink != "" {
		reply += fmt.Sprintf(msgCalendarLink, out.CalendarLink)
	}
	return h.reply(ctx, chatID, reply)
}

func (h *handler) handleList(ctx context.Context, sc model.Scope, chatID int64) error {
	out, err := h.uc.ListTasks(ctx, sc)
	if err != nil {
		return h.reply(ctx, chatID, msgGenericError)
	}
	return h.reply(ctx, chatID, formatTaskList(out, h.location))
}

func (h *handler) reply(ctx context.Context, chatID int64, text string) error {
	if err := h.bot.SendMessage(ctx, chatID, text); err != nil {
		return fmt.Errorf("reply to chat %d: %w", chatID, err)
	}
	return nil
}
