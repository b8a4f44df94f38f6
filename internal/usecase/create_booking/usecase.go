package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/mastercuts/BookingService/internal/domain"
	reservationRepo "github.com/mastercuts/BookingService/internal/infra/storage/reservation"
	"github.com/mastercuts/BookingService/internal/integrations/googlecalendar"
	getAvailableSlots "github.com/mastercuts/BookingService/internal/usecase/get_available_slots"
)

// Booking outcomes for metrics
const (
	outcomeCreated          = "created"
	outcomeInvalid          = "invalid"
	outcomeSlotUnavailable  = "slot_unavailable"
	outcomePersistenceError = "persistence_error"
)

const (
	msgReauthRequired = "Tu cita fue registrada, pero el calendario del negocio necesita volver a conectarse."
	msgMirrorFailed   = "Tu cita fue registrada, pero no se pudo agregar al calendario del negocio."
)

// UseCase use case для создания бронирования
// Сначала пишется бронирование в БД, затем событие в календаре; порядок не меняется
type UseCase struct {
	availability AvailabilityResolver
	reservations ReservationRepository
	calendar     CalendarClient
	schedule     domain.Schedule
	services     domain.ServiceCatalog
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// calendar может быть nil, если интеграция с календарём выключена
func NewUseCase(
	availability AvailabilityResolver,
	reservations ReservationRepository,
	calendar CalendarClient,
	schedule domain.Schedule,
	services domain.ServiceCatalog,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability: availability,
		reservations: reservations,
		calendar:     calendar,
		schedule:     schedule,
		services:     services,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Нормализация и валидация входных данных
	req = normalizeRequest(req)

	uc.logger.Info("CreateBooking: date=%s, time=%s, services=%v", req.Date, req.Time, req.Services)

	if err := validateRequest(req, uc.services); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.IncBooking(outcomeInvalid)
		return nil, err
	}

	// 2. Повторная проверка доступности, результат предыдущего запроса клиента не используется
	if err := uc.checkSlot(ctx, req); err != nil {
		return nil, err
	}

	// 3. Сохраняем бронирование
	reservation := &domain.Reservation{
		Services:     req.Services,
		Date:         req.Date,
		Time:         req.Time,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Status:       domain.StatusConfirmed,
	}

	created, err := uc.reservations.Create(ctx, reservation)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: slot %s %s taken by a concurrent booking", req.Date, req.Time)
			uc.metrics.IncBooking(outcomeSlotUnavailable)
			return nil, ErrSlotUnavailable
		}
		uc.logger.Error("CreateBooking: failed to create reservation: %v", err)
		uc.metrics.IncBooking(outcomePersistenceError)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.logger.Info("CreateBooking: reservation id=%s stored for %s %s", created.ID, created.Date, created.Time)
	uc.metrics.IncBooking(outcomeCreated)

	// 4. Зеркалируем в календарь; ошибка не отменяет бронирование
	response := &Response{Reservation: created}
	if uc.calendar == nil {
		return response, nil
	}

	eventID, warning := uc.mirror(ctx, created)
	response.CalendarEventID = eventID
	response.Warning = warning

	return response, nil
}

// checkSlot повторно вычисляет доступность и проверяет выбранный слот
func (uc *UseCase) checkSlot(ctx context.Context, req *Request) error {
	availability, err := uc.availability.Execute(ctx, &getAvailableSlots.Request{Date: req.Date})
	if err != nil {
		uc.metrics.IncBooking(outcomeInvalid)
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			uc.logger.Warn("CreateBooking: date %s is in the past", req.Date)
			return ErrInvalidDate
		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			uc.logger.Warn("CreateBooking: date %s is too far in the future", req.Date)
			return fmt.Errorf("%w: %v", ErrDateTooFarInFuture, err)
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("CreateBooking: failed to resolve availability: %v", err)
			return fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
		}
	}

	if availability.DayCategory == domain.DayClosed {
		uc.logger.Warn("CreateBooking: shop is closed on %s", req.Date)
		uc.metrics.IncBooking(outcomeInvalid)
		return ErrShopClosed
	}

	if availability.Degraded {
		// занятость неизвестна, дубль отсечёт уникальный индекс
		uc.logger.Warn("CreateBooking: availability degraded for %s, relying on storage constraint", req.Date)
	}

	for _, slot := range availability.Slots {
		if slot == req.Time {
			return nil
		}
	}

	uc.logger.Warn("CreateBooking: slot %s %s is not available", req.Date, req.Time)
	uc.metrics.IncBooking(outcomeSlotUnavailable)
	return ErrSlotUnavailable
}

// mirror создаёт событие в календаре. Возвращает ID события или предупреждение
func (uc *UseCase) mirror(ctx context.Context, reservation *domain.Reservation) (string, *Warning) {
	date, err := domain.ParseDate(reservation.Date, uc.schedule.Location)
	if err != nil {
		uc.logger.Error("CreateBooking: cannot build calendar event for id=%s: %v", reservation.ID, err)
		return "", uc.warn(WarningMirrorFailed)
	}
	start, err := domain.SlotStart(date, reservation.Time)
	if err != nil {
		uc.logger.Error("CreateBooking: cannot build calendar event for id=%s: %v", reservation.ID, err)
		return "", uc.warn(WarningMirrorFailed)
	}

	event, err := uc.calendar.CreateEvent(ctx, domain.NewMirrorEvent(reservation, start, uc.schedule.Catalog.SlotDuration))
	if err != nil {
		if errors.Is(err, googlecalendar.ErrReauthRequired) || errors.Is(err, googlecalendar.ErrNotLinked) {
			uc.logger.Warn("CreateBooking: calendar requires re-authorization, reservation id=%s not mirrored: %v",
				reservation.ID, err)
			return "", uc.warn(WarningReauthRequired)
		}
		uc.logger.Error("CreateBooking: failed to mirror reservation id=%s: %v", reservation.ID, err)
		return "", uc.warn(WarningMirrorFailed)
	}

	uc.logger.Info("CreateBooking: reservation id=%s mirrored as event id=%s", reservation.ID, event.ID)
	return event.ID, nil
}

func (uc *UseCase) warn(kind WarningKind) *Warning {
	uc.metrics.IncMirrorWriteFailure(string(kind))

	message := msgMirrorFailed
	if kind == WarningReauthRequired {
		message = msgReauthRequired
	}
	return &Warning{Kind: kind, Message: message}
}
