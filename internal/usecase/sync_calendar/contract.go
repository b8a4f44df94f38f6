package sync_calendar

import (
	"context"
	"time"

	"github.com/mastercuts/BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByDate(ctx context.Context, date string, status *domain.ReservationStatus) ([]*domain.Reservation, error)
}

// CalendarClient интерфейс клиента календаря
type CalendarClient interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*domain.CalendarEvent, error)
	CreateEvent(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
}

// Metrics счётчик результатов синхронизации
type Metrics interface {
	IncCalendarSync(result string, n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
