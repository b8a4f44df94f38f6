package create_booking

import (
	"errors"
	"net/http"

	"github.com/mastercuts/BookingService/internal/api/handlers"
	createBooking "github.com/mastercuts/BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido."
	msgInvalidInput       = "Revisa los datos de tu cita: servicios, fecha, hora, nombre y teléfono de 10 dígitos."
	msgUnknownService     = "Uno de los servicios seleccionados no existe."
	msgInvalidBookingDate = "No se pueden agendar citas en fechas pasadas."
	msgDateTooFar         = "La fecha está demasiado lejos en el futuro."
	msgShopClosed         = "La barbería está cerrada en la fecha seleccionada."
	msgSlotUnavailable    = "El horario seleccionado ya no está disponible. Elige otro."
	msgPersistence        = "No pudimos guardar tu cita. Intenta de nuevo."
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrUnknownService):
			h.logger.Warn("POST /bookings - Unknown service: services=%v", req.Services)
			handlers.RespondBadRequest(w, msgUnknownService)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrShopClosed):
			h.logger.Warn("POST /bookings - Shop closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgShopClosed)

		case errors.Is(err, createBooking.ErrPersistence):
			h.logger.Error("POST /bookings - Failed to store reservation: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPersistence)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if result.Warning != nil {
		h.logger.Warn("POST /bookings - Booking created without calendar event: reservation_id=%s, warning=%s",
			result.Reservation.ID, result.Warning.Kind)
	}
	h.logger.Info("POST /bookings - Booking created successfully: reservation_id=%s, date=%s, time=%s",
		result.Reservation.ID, result.Reservation.Date, result.Reservation.Time)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
