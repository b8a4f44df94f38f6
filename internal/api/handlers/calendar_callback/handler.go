package calendar_callback

import (
	"errors"
	"net/http"

	"github.com/mastercuts/BookingService/internal/api/handlers"
	"github.com/mastercuts/BookingService/internal/integrations/googlecalendar"
)

const (
	msgConsentDenied       = "No se otorgó acceso a Google Calendar."
	msgMissingCode         = "Falta el código de autorización."
	msgInvalidState        = "El enlace de autorización expiró o no es válido. Vuelve a intentarlo."
	msgCalendarUnavailable = "Google Calendar no está disponible. Intenta más tarde."
	msgLinked              = "Google Calendar vinculado correctamente."
)

type Handler struct {
	states StateVerifier
	linker CalendarLinker
	logger Logger
}

func NewHandler(states StateVerifier, linker CalendarLinker, logger Logger) *Handler {
	return &Handler{
		states: states,
		linker: linker,
		logger: logger,
	}
}

// Handle GET /api/v1/admin/calendar/callback
// Query params: code, state (выдан /admin/calendar/connect), error
// Без Bearer-токена: подлинность запроса подтверждает подписанный state
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if reason := query.Get("error"); reason != "" {
		h.logger.Warn("GET /admin/calendar/callback - Consent denied: %s", reason)
		handlers.RespondBadRequest(w, msgConsentDenied)
		return
	}

	if err := h.states.VerifyState(query.Get("state")); err != nil {
		h.logger.Warn("GET /admin/calendar/callback - Invalid state: %v", err)
		handlers.RespondBadRequest(w, msgInvalidState)
		return
	}

	code := query.Get("code")
	if code == "" {
		h.logger.Warn("GET /admin/calendar/callback - Missing code")
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	if err := h.linker.Exchange(r.Context(), code); err != nil {
		switch {
		case errors.Is(err, googlecalendar.ErrUnavailable):
			h.logger.Error("GET /admin/calendar/callback - Code exchange failed: error=%v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCalendarUnavailable)

		default:
			h.logger.Error("GET /admin/calendar/callback - Failed to link calendar: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/calendar/callback - Calendar linked")
	handlers.RespondJSON(w, http.StatusOK, &CallbackResponse{Status: "linked", Message: msgLinked})
}
