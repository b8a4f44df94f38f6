package calendar_unlink

import (
	"net/http"

	"github.com/mastercuts/BookingService/internal/api/handlers"
)

type Handler struct {
	linker CalendarLinker
	logger Logger
}

func NewHandler(linker CalendarLinker, logger Logger) *Handler {
	return &Handler{
		linker: linker,
		logger: logger,
	}
}

// Handle DELETE /api/v1/admin/calendar/link
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	unlinked, err := h.linker.Unlink(r.Context())
	if err != nil {
		h.logger.Error("DELETE /admin/calendar/link - Failed to unlink calendar: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/calendar/link - unlinked=%t", unlinked)
	handlers.RespondJSON(w, http.StatusOK, &UnlinkResponse{Unlinked: unlinked})
}
