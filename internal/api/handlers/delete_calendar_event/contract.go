package delete_calendar_event

import "context"

type CalendarService interface {
	DeleteCalendarEvent(ctx context.Context, eventID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
