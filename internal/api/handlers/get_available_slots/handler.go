package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/mastercuts/BookingService/internal/api/handlers"
	getAvailableSlots "github.com/mastercuts/BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate = "La fecha es obligatoria."
	msgInvalidDate = "Formato de fecha inválido, se espera AAAA-MM-DD."
	msgDateInPast  = "No se pueden consultar fechas pasadas."
	msgDateTooFar  = "La fecha está demasiado lejos en el futuro."
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid date: date=%q", date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Date in past: date=%s", date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-slots - Date too far in future: date=%s", date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Degraded {
		h.logger.Warn("GET /available-slots - Occupancy unavailable, serving unfiltered slots: date=%s", date)
	}

	h.logger.Info("GET /available-slots - Slots retrieved successfully: date=%s, day=%s, slots_count=%d",
		date, result.DayCategory, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
