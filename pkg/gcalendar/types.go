package gcalendar

import "time"

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID      string
	Summary         string
	Description     string
	StartTime       time.Time
	EndTime         time.Time
	Timezone        string // e.g. "Europe/Moscow"; empty keeps the offset in StartTime
	ReminderMinutes int    // popup reminder before StartTime; negative disables the override
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID        string
	Summary   string
	HtmlLink  string
	StartTime time.Time
	EndTime   time.Time
}
