package delete_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mastercuts/BookingService/internal/api/handlers"
	"github.com/mastercuts/BookingService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "ID de reservación inválido."
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

// Handle DELETE /api/v1/admin/reservations/{reservationId}
// Повторное удаление отвечает 200 с deleted=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	result, err := h.service.Delete(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/reservations/{id} - Invalid reservation ID: %q", reservationID)
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("DELETE /admin/reservations/{id} - Failed to delete reservation: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Warning != nil {
		h.logger.Warn("DELETE /admin/reservations/{id} - Calendar event not removed: reservation_id=%s", reservationID)
	}
	h.logger.Info("DELETE /admin/reservations/{id} - Reservation deleted: reservation_id=%s, deleted=%t",
		reservationID, result.Deleted)
	handlers.RespondJSON(w, http.StatusOK, result)
}
