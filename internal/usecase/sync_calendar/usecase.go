package sync_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/mastercuts/BookingService/internal/domain"
	"github.com/mastercuts/BookingService/internal/integrations/googlecalendar"
)

// UseCase создаёт в календаре события для бронирований, у которых их нет
// Пишет только в календарь; бронирования не меняются
type UseCase struct {
	reservations ReservationRepository
	calendar     CalendarClient
	schedule     domain.Schedule
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservations ReservationRepository,
	calendar CalendarClient,
	schedule domain.Schedule,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservations: reservations,
		calendar:     calendar,
		schedule:     schedule,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет сверку за дату
// Повторный запуск без изменений не создаёт новых событий
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SyncCalendar: date=%s", req.Date)

	date, err := domain.ParseDate(req.Date, uc.schedule.Location)
	if err != nil {
		uc.logger.Warn("SyncCalendar: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 1. Все бронирования на дату
	reservations, err := uc.reservations.GetByDate(ctx, req.Date, nil)
	if err != nil {
		uc.logger.Error("SyncCalendar: failed to load reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to load reservations: %v", ErrInternal, err)
	}

	response := &Response{Date: req.Date, Total: len(reservations)}
	if len(reservations) == 0 {
		uc.logger.Info("SyncCalendar: no reservations on %s", req.Date)
		return response, nil
	}

	// 2. События календаря на дату
	dayStart, dayEnd := domain.DayBounds(date)
	events, err := uc.calendar.ListEvents(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("SyncCalendar: failed to list calendar events: %v", err)
		if errors.Is(err, googlecalendar.ErrReauthRequired) || errors.Is(err, googlecalendar.ErrNotLinked) {
			return nil, fmt.Errorf("%w: %v", ErrCalendarReauthRequired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	// 3. Сопоставление и создание недостающих событий
	for _, reservation := range reservations {
		start, err := domain.SlotStart(date, reservation.Time)
		if err != nil {
			uc.logger.Error("SyncCalendar: reservation id=%s has invalid time %q: %v", reservation.ID, reservation.Time, err)
			response.Failed++
			continue
		}

		if existing := domain.FindMirrorEvent(events, reservation, start); existing != nil {
			response.AlreadyMirrored++
			continue
		}

		event := domain.NewMirrorEvent(reservation, start, uc.schedule.Catalog.SlotDuration)
		created, err := uc.calendar.CreateEvent(ctx, event)
		if err != nil {
			uc.logger.Error("SyncCalendar: failed to create event for reservation id=%s: %v", reservation.ID, err)
			response.Failed++
			continue
		}

		uc.logger.Info("SyncCalendar: created event id=%s for reservation id=%s", created.ID, reservation.ID)
		events = append(events, created)
		response.Created++
	}

	uc.metrics.IncCalendarSync("created", response.Created)
	uc.metrics.IncCalendarSync("already_mirrored", response.AlreadyMirrored)
	uc.metrics.IncCalendarSync("failed", response.Failed)

	uc.logger.Info("SyncCalendar: date=%s total=%d created=%d already_mirrored=%d failed=%d",
		req.Date, response.Total, response.Created, response.AlreadyMirrored, response.Failed)

	return response, nil
}
