package get_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mastercuts/BookingService/internal/api/handlers"
	"github.com/mastercuts/BookingService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "ID de reservación inválido."
	msgNotFound             = "Reservación no encontrada."
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	reservation, err := h.service.GetByID(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /admin/reservations/{id} - Invalid reservation ID: %q", reservationID)
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("GET /admin/reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/reservations/{id} - Failed to get reservation: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/reservations/{id} - Reservation retrieved successfully: reservation_id=%s", reservationID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
