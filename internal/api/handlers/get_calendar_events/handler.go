package get_calendar_events

import (
	"errors"
	"net/http"

	"github.com/mastercuts/BookingService/internal/api/handlers"
	"github.com/mastercuts/BookingService/internal/service/reservations"
)

const (
	msgMissingDate         = "La fecha es obligatoria."
	msgInvalidDate         = "Formato de fecha inválido, se espera AAAA-MM-DD."
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

// Handle GET /api/v1/admin/calendar/events
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /admin/calendar/events - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.service.ListCalendarEvents(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /admin/calendar/events - Invalid date: date=%q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, reservations.ErrCalendarDisabled):
			handlers.RespondNotFound(w, msgCalendarDisabled)

		case errors.Is(err, reservations.ErrCalendarReauthRequired):
			h.logger.Warn("GET /admin/calendar/events - Calendar re-authorization required")
			handlers.RespondError(w, http.StatusConflict, msgCalendarReauth)

		case errors.Is(err, reservations.ErrCalendarUnavailable):
			h.logger.Error("GET /admin/calendar/events - Calendar unavailable: date=%s, error=%v", date, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCalendarUnavailable)

		default:
			h.logger.Error("GET /admin/calendar/events - Failed to list events: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/calendar/events - Events retrieved successfully: date=%s, count=%d", date, len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, result)
}
