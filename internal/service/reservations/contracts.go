package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mastercuts/BookingService/internal/domain"
	"github.com/mastercuts/BookingService/internal/integrations/googlecalendar"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	GetByDate(ctx context.Context, date string, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CalendarClient интерфейс клиента календаря
type CalendarClient interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, eventID string) error
	TokenStatus(ctx context.Context) (googlecalendar.TokenStatus, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
