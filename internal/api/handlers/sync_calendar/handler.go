package sync_calendar

import (
	"errors"
	"net/http"

	"github.com/mastercuts/BookingService/internal/api/handlers"
	syncCalendar "github.com/mastercuts/BookingService/internal/usecase/sync_calendar"
)

const (
	msgMissingDate         = "La fecha es obligatoria."
	msgInvalidDate         = "Formato de fecha inválido, se espera AAAA-MM-DD."
	msgCalendarReauth      = "Google Calendar requiere volver a autorizar la cuenta."
	msgCalendarUnavailable = "Google Calendar no está disponible. Intenta más tarde."
)

type Handler struct {
	useCase SyncCalendarUseCase
	logger  Logger
}

func NewHandler(useCase SyncCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/calendar/sync
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("POST /admin/calendar/sync - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &syncCalendar.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, syncCalendar.ErrInvalidInput):
			h.logger.Warn("POST /admin/calendar/sync - Invalid date: date=%q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, syncCalendar.ErrCalendarReauthRequired):
			h.logger.Warn("POST /admin/calendar/sync - Calendar re-authorization required: date=%s", date)
			handlers.RespondError(w, http.StatusConflict, msgCalendarReauth)

		case errors.Is(err, syncCalendar.ErrCalendarUnavailable):
			h.logger.Error("POST /admin/calendar/sync - Calendar unavailable: date=%s, error=%v", date, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCalendarUnavailable)

		default:
			h.logger.Error("POST /admin/calendar/sync - Failed to sync: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/calendar/sync - Sync finished: date=%s, created=%d, already_mirrored=%d, failed=%d",
		date, result.Created, result.AlreadyMirrored, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
