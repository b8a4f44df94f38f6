package get_available_slots

import (
	"context"
	"time"

	"github.com/mastercuts/BookingService/internal/domain"
)

// OccupancySource источник занятости слотов
type OccupancySource interface {
	// Name имя источника для логов и метрик
	Name() string
	// Occupied возвращает множество занятых меток среди slots на дату
	Occupied(ctx context.Context, date time.Time, slots []domain.SlotLabel, duration time.Duration) (map[domain.SlotLabel]bool, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetConfirmedTimes(ctx context.Context, date string) ([]domain.SlotLabel, error)
}

// CalendarClient интерфейс клиента календаря
type CalendarClient interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*domain.CalendarEvent, error)
}

// Metrics счётчик fail-open
type Metrics interface {
	IncAvailabilityFailOpen(source string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
