package get_reservations

import (
	"context"

	"github.com/mastercuts/BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	ListByDate(ctx context.Context, date string) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
