package test

import (
	"github.com/gin-gonic/gin"

	"task-reminder-bot/internal/reminder"
	"task-reminder-bot/internal/task"
	pkgLog "task-reminder-bot/pkg/log"
)

// Handler exposes debugging endpoints that bypass Telegram.
// Only registered outside production.
type Handler interface {
	HandleExtract(c *gin.Context)
	HandleSweep(c *gin.Context)
}

type handler struct {
	l         pkgLog.Logger
	uc        task.UseCase
	scheduler reminder.Scheduler
}

func New(l pkgLog.Logger, uc task.UseCase, scheduler reminder.Scheduler) Handler {
	return &handler{
		l:         l,
		uc:        uc,
		scheduler: scheduler,
	}
}
