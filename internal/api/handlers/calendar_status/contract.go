package calendar_status

import (
	"context"

	"github.com/mastercuts/BookingService/internal/service/reservations/models"
)

type CalendarService interface {
	CalendarStatus(ctx context.Context) (*models.CalendarStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
