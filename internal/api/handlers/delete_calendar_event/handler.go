package delete_calendar_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mastercuts/BookingService/internal/api/handlers"
	"github.com/mastercuts/BookingService/internal/service/reservations"
)

const (
	msgInvalidEventID      = "ID de evento inválido."
	msgCalendarDisabled    = "La integración con Google Calendar está desactivada."
	msgCalendarReauth      = "Google Calendar requiere volver a autorizar la cuenta."
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

// Handle DELETE /api/v1/admin/calendar/events/{eventId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	if err := h.service.DeleteCalendarEvent(r.Context(), eventID); err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/calendar/events/{id} - Invalid event ID: %q", eventID)
			handlers.RespondBadRequest(w, msgInvalidEventID)

		case errors.Is(err, reservations.ErrCalendarDisabled):
			handlers.RespondNotFound(w, msgCalendarDisabled)

		case errors.Is(err, reservations.ErrCalendarReauthRequired):
			h.logger.Warn("DELETE /admin/calendar/events/{id} - Calendar re-authorization required")
			handlers.RespondError(w, http.StatusConflict, msgCalendarReauth)

		case errors.Is(err, reservations.ErrCalendarUnavailable):
			h.logger.Error("DELETE /admin/calendar/events/{id} - Calendar unavailable: event_id=%s, error=%v", eventID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCalendarUnavailable)

		default:
			h.logger.Error("DELETE /admin/calendar/events/{id} - Failed to delete event: event_id=%s, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/calendar/events/{id} - Event deleted: event_id=%s", eventID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
