package delete_reservation

import (
	"context"

	"github.com/mastercuts/BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	Delete(ctx context.Context, id string) (*models.DeleteReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
