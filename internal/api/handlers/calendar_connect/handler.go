package calendar_connect

import (
	"net/http"

	"github.com/mastercuts/BookingService/internal/api/handlers"
)

type Handler struct {
	states StateIssuer
	linker CalendarLinker
	logger Logger
}

func NewHandler(states StateIssuer, linker CalendarLinker, logger Logger) *Handler {
	return &Handler{
		states: states,
		linker: linker,
		logger: logger,
	}
}

// Handle GET /api/v1/admin/calendar/connect
// Возвращает URL, на который администратор переходит для привязки календаря
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	state, err := h.states.IssueState()
	if err != nil {
		h.logger.Error("GET /admin/calendar/connect - Failed to issue state: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/calendar/connect - Consent URL issued")
	handlers.RespondJSON(w, http.StatusOK, &ConnectResponse{URL: h.linker.AuthCodeURL(state)})
}
