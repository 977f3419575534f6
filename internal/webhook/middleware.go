package webhook

import (
	"github.com/gin-gonic/gin"

	pkgLog "task-reminder-bot/pkg/log"
	pkgResponse "task-reminder-bot/pkg/response"
	pkgTelegram "task-reminder-bot/pkg/telegram"
)

// TelegramGuard rejects requests that do not come from Telegram: unlisted
// source IPs get 403 and a wrong secret token gets 401.
func (v *SecurityValidator) TelegramGuard(l pkgLog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := v.ValidateIPAddress(c.Request); err != nil {
			l.Warnf(ctx, "webhook: %v", err)
			pkgResponse.Forbidden(c)
			c.Abort()
			return
		}

		if err := v.ValidateTelegramSecret(c.GetHeader(pkgTelegram.SecretTokenHeader)); err != nil {
			l.Warnf(ctx, "webhook: %v from %s", err, c.ClientIP())
			pkgResponse.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
