package get_calendar_events

import (
	"context"

	"github.com/mastercuts/BookingService/internal/service/reservations/models"
)

type CalendarService interface {
	ListCalendarEvents(ctx context.Context, date string) (*models.CalendarEventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
