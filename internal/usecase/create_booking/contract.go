package create_booking

import (
	"context"

	"github.com/mastercuts/BookingService/internal/domain"
	getAvailableSlots "github.com/mastercuts/BookingService/internal/usecase/get_available_slots"
)

// AvailabilityResolver повторная проверка доступности перед записью
type AvailabilityResolver interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// CalendarClient интерфейс клиента календаря (зеркало бронирований)
type CalendarClient interface {
	CreateEvent(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
}

// Metrics счётчики бронирований
type Metrics interface {
	IncBooking(outcome string)
	IncMirrorWriteFailure(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
