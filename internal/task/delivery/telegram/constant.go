package telegram

import "time"

const (
	processTimeout = 30 * time.Second

	listDateLayout = "02.01 15:04"

	cmdStart  = "/start"
	cmdHelp   = "/help"
	cmdTasks  = "/tasks"
	cmdCancel = "/cancel"
)

const (
	msgGreeting = "Привет, @%s! Я помогу напоминать о ваших задачах.\n" +
		"Просто напиши что-то вроде: 'Позвонить врачу 12.05.2025 в 18:00'"
	msgHelp = "Как пользоваться:\n" +
		"• Напиши задачу с датой и временем, например 'Позвонить врачу завтра в 18:00'\n" +
		"• Ответь, за сколько минут напомнить\n" +
		"/tasks — список задач\n" +
		"/cancel — отменить ввод задачи"
	msgUnknownCommand   = "Не знаю такой команды.\n\n"
	msgAskLeadTime      = "⏰ За сколько минут до события напомнить?"
	msgExtractionFailed = "⛔️ Не смог разобрать дату/время. Попробуй в формате '12.05.2025 в 18:00'."
	msgNoPendingIntake  = "Что-то пошло не так. Попробуй сначала."
	msgInvalidLeadTime  = "⛔️ Введи количество минут числом, например: 15"
	msgTaskAdded        = "✅ Задача добавлена: '%s'\n🔔 Напоминание будет в %s"
	msgCalendarLink     = "\n📅 %s"
	msgSaveFailed       = "⚠️ Не удалось сохранить задачу. Попробуй ещё раз ввести количество минут."
	msgListHeader       = "📋 Ваши задачи:"
	msgListEmpty        = "Задач пока нет."
	msgListItem         = "%s %d. %s — %s (за %d мин)"
	msgCancelled        = "Ввод задачи отменён."
	msgNothingToCancel  = "Нечего отменять."
	msgGenericError     = "Что-то пошло не так. Попробуй ещё раз позже."
	msgEmptyInput       = "Пришли текст задачи с датой и временем."

	markNotified = "✅"
	markPending  = "❗"
)
