package telegram

import (
	"context"
	"fmt"

	"task-reminder-bot/internal/reminder"
)

// DeliverReminder sends text to the owner's private chat.
func (n *notifier) DeliverReminder(ctx context.Context, ownerID int64, text string) error {
	if err := n.bot.SendMessage(ctx, ownerID, text); err != nil {
		return fmt.Errorf("%w: %v", reminder.ErrDeliveryFailure, err)
	}
	n.l.Debugf(ctx, "telegram notifier: reminder sent to %d", ownerID)
	return nil
}
