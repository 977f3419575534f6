package telegram

import (
	"fmt"
	"strings"
	"time"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task"
	pkgTelegram "task-reminder-bot/pkg/telegram"
)

// scopeOf identifies the task owner. Private chats share the user's id,
// which is also where reminders are delivered.
func scopeOf(msg *pkgTelegram.Message) model.Scope {
	if msg.From == nil {
		return model.Scope{OwnerID: msg.Chat.ID}
	}
	return model.Scope{OwnerID: msg.From.ID, Username: msg.From.Username}
}

func displayName(u *pkgTelegram.User) string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}

func formatTaskList(out task.ListTasksOutput, loc *time.Location) string {
	if out.Count == 0 {
		return msgListEmpty
	}

	var b strings.Builder
	b.WriteString(msgListHeader)
	for _, it := range out.Tasks {
		mark := markPending
		if it.Task.Notified {
			mark = markNotified
		}
		b.WriteByte('\n')
		fmt.Fprintf(&b, msgListItem, mark, it.Position, it.Task.Text, it.Task.DueAt.In(loc).Format(listDateLayout), it.Task.LeadMinutes)
	}
	return b.String()
}
