package calendar_status

import (
	"errors"
	"net/http"

	"github.com/mastercuts/BookingService/internal/api/handlers"
	"github.com/mastercuts/BookingService/internal/service/reservations"
)

const (
	msgCalendarDisabled    = "La integración con Google Calendar está desactivada."
	msgCalendarUnavailable = "Google Calendar no está disponible. Intenta más tarde."
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/calendar/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CalendarStatus(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrCalendarDisabled):
			handlers.RespondNotFound(w, msgCalendarDisabled)

		default:
			h.logger.Error("GET /admin/calendar/status - Failed to check calendar: error=%v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCalendarUnavailable)
		}
		return
	}

	h.logger.Info("GET /admin/calendar/status - status=%s", result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
