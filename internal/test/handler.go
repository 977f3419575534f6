package test

import (
	"errors"

	"github.com/gin-gonic/gin"

	"task-reminder-bot/internal/task"
	pkgResponse "task-reminder-bot/pkg/response"
)

// HandleExtract runs date/time extraction on arbitrary text
// @Summary Test date extraction
// @Description Show which due time would be recognized in a message, without Telegram
// @Tags test
// @Accept json
// @Produce json
// @Param request body ExtractRequest true "Message text"
// @Success 200 {object} ExtractResponse
// @Router /test/extract [post]
func (h *handler) HandleExtract(c *gin.Context) {
	ctx := c.Request.Context()

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		pkgResponse.Error(c, err, nil)
		return
	}

	resp := ExtractResponse{Text: req.Text}
	dueAt, err := h.uc.ExtractDateTime(ctx, req.Text)
	switch {
	case err == nil:
		resp.Found = true
		resp.DueAt = pkgResponse.NewDateTime(dueAt)
	case errors.Is(err, task.ErrExtractionFailure):
		resp.Reason = err.Error()
	default:
		h.l.Errorf(ctx, "internal.test.HandleExtract: %v", err)
		pkgResponse.InternalError(c, err)
		return
	}

	pkgResponse.OK(c, resp)
}

// HandleSweep runs one reminder sweep immediately
// @Summary Trigger reminder sweep
// @Description Deliver due reminders now instead of waiting for the next tick
// @Tags test
// @Produce json
// @Success 200 {object} SweepResponse
// @Router /test/sweep [post]
func (h *handler) HandleSweep(c *gin.Context) {
	res := h.scheduler.Sweep(c.Request.Context())

	resp := SweepResponse{
		Due:       res.Due,
		Delivered: res.Delivered,
		Failed:    res.Failed,
		Skipped:   res.Skipped,
		Marked:    res.Marked,
	}
	if err := errors.Join(res.LoadErr, res.MarkErr); err != nil {
		resp.Error = err.Error()
	}

	pkgResponse.OK(c, resp)
}
