package reservations

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mastercuts/BookingService/internal/domain"
	reservationRepo "github.com/mastercuts/BookingService/internal/infra/storage/reservation"
	"github.com/mastercuts/BookingService/internal/integrations/googlecalendar"
	"github.com/mastercuts/BookingService/internal/service/reservations/models"
)

const warnMirrorNotDeleted = "La reservación se eliminó, pero no se pudo eliminar el evento del calendario."

// Service сервис администрирования бронирований и календаря
type Service struct {
	reservationRepo ReservationRepository
	calendar        CalendarClient // nil, если интеграция выключена
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	calendar CalendarClient,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		calendar:        calendar,
		location:        location,
		logger:          logger,
	}
}

// ListByDate возвращает бронирования за дату с отметкой о наличии события в календаре
// Если календарь не читается, список всё равно возвращается со статусом unknown
func (s *Service) ListByDate(ctx context.Context, date string) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByDate: fetching reservations for date=%s", date)

	day, err := domain.ParseDate(date, s.location)
	if err != nil {
		s.logger.Warn("ListByDate: invalid date=%q", date)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.reservationRepo.GetByDate(ctx, date, nil)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return slotOrder(list[i].Time) < slotOrder(list[j].Time)
	})

	response := &models.ReservationListResponse{
		Date:         date,
		Reservations: make([]*models.ReservationResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, r := range list {
		response.Reservations = append(response.Reservations, models.FromDomainReservation(r))
	}

	if s.calendar == nil || len(list) == 0 {
		return response, nil
	}

	dayStart, dayEnd := domain.DayBounds(day)
	events, err := s.calendar.ListEvents(ctx, dayStart, dayEnd)
	if err != nil {
		s.logger.Warn("ListByDate: calendar unavailable for date=%s, mirror status unknown: %v", date, err)
		return response, nil
	}
	response.CalendarRead = true

	for i, r := range list {
		item := response.Reservations[i]
		item.MirrorStatus = models.MirrorMissing

		start, err := domain.SlotStart(day, r.Time)
		if err != nil {
			s.logger.Warn("ListByDate: reservation id=%s has invalid time %q", r.ID, r.Time)
			item.MirrorStatus = models.MirrorUnknown
			continue
		}
		if event := domain.FindMirrorEvent(events, r, start); event != nil {
			eventID := event.ID
			item.MirrorStatus = models.MirrorMirrored
			item.CalendarEventID = &eventID
		}
	}

	s.logger.Info("ListByDate: successfully fetched %d reservations for date=%s", len(list), date)
	return response, nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.ReservationResponse, error) {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid reservation id", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// Delete удаляет бронирование. Повторное удаление не является ошибкой (Deleted=false)
// После удаления строки событие-зеркало удаляется без гарантий: неудача даёт предупреждение
func (s *Service) Delete(ctx context.Context, id string) (*models.DeleteReservationResponse, error) {
	s.logger.Info("Delete: deleting reservation id=%s", id)

	reservationID, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn("Delete: invalid reservation id=%q", id)
		return nil, fmt.Errorf("%w: invalid reservation id", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Info("Delete: reservation id=%s already absent", id)
			return &models.DeleteReservationResponse{Deleted: false}, nil
		}
		s.logger.Error("Delete: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	deleted, err := s.reservationRepo.Delete(ctx, reservationID)
	if err != nil {
		s.logger.Error("Delete: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	response := &models.DeleteReservationResponse{Deleted: deleted}
	if !deleted || s.calendar == nil {
		return response, nil
	}

	eventID, err := s.deleteMirror(ctx, reservation)
	if err != nil {
		s.logger.Warn("Delete: reservation id=%s deleted, mirror event not removed: %v", id, err)
		warning := warnMirrorNotDeleted
		response.Warning = &warning
		return response, nil
	}
	if eventID != "" {
		response.CalendarEventID = &eventID
	}

	s.logger.Info("Delete: successfully deleted reservation id=%s (mirror=%q)", id, eventID)
	return response, nil
}

// ListCalendarEvents возвращает события календаря за дату
func (s *Service) ListCalendarEvents(ctx context.Context, date string) (*models.CalendarEventListResponse, error) {
	if s.calendar == nil {
		return nil, ErrCalendarDisabled
	}

	day, err := domain.ParseDate(date, s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	dayStart, dayEnd := domain.DayBounds(day)
	events, err := s.calendar.ListEvents(ctx, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("ListCalendarEvents: failed for date=%s: %v", date, err)
		return nil, mapCalendarError("ListCalendarEvents", err)
	}

	response := &models.CalendarEventListResponse{
		Date:   date,
		Events: make([]*models.CalendarEventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, models.FromDomainCalendarEvent(e))
	}
	return response, nil
}

// DeleteCalendarEvent удаляет событие календаря. Отсутствующее событие считается удалённым
func (s *Service) DeleteCalendarEvent(ctx context.Context, eventID string) error {
	if s.calendar == nil {
		return ErrCalendarDisabled
	}
	if strings.TrimSpace(eventID) == "" {
		return fmt.Errorf("%w: empty event id", ErrInvalidInput)
	}

	if err := s.calendar.DeleteEvent(ctx, eventID); err != nil {
		s.logger.Error("DeleteCalendarEvent: failed for event id=%s: %v", eventID, err)
		return mapCalendarError("DeleteCalendarEvent", err)
	}

	s.logger.Info("DeleteCalendarEvent: event id=%s deleted", eventID)
	return nil
}

// CalendarStatus состояние привязки календаря
func (s *Service) CalendarStatus(ctx context.Context) (*models.CalendarStatusResponse, error) {
	if s.calendar == nil {
		return nil, ErrCalendarDisabled
	}

	status, err := s.calendar.TokenStatus(ctx)
	if err != nil {
		s.logger.Error("CalendarStatus: failed to check token: %v", err)
		return nil, fmt.Errorf("%w: CalendarStatus - %v", ErrCalendarUnavailable, err)
	}
	return &models.CalendarStatusResponse{Status: string(status)}, nil
}

// Вспомогательные методы

// deleteMirror находит и удаляет событие бронирования; пустой id - события не было
func (s *Service) deleteMirror(ctx context.Context, reservation *domain.Reservation) (string, error) {
	day, err := domain.ParseDate(reservation.Date, s.location)
	if err != nil {
		return "", err
	}
	start, err := domain.SlotStart(day, reservation.Time)
	if err != nil {
		return "", err
	}

	dayStart, dayEnd := domain.DayBounds(day)
	events, err := s.calendar.ListEvents(ctx, dayStart, dayEnd)
	if err != nil {
		return "", err
	}

	event := domain.FindMirrorEvent(events, reservation, start)
	if event == nil {
		return "", nil
	}
	if err := s.calendar.DeleteEvent(ctx, event.ID); err != nil {
		return "", err
	}
	return event.ID, nil
}

func mapCalendarError(op string, err error) error {
	if errors.Is(err, googlecalendar.ErrReauthRequired) || errors.Is(err, googlecalendar.ErrNotLinked) {
		return fmt.Errorf("%w: %s - %v", ErrCalendarReauthRequired, op, err)
	}
	return fmt.Errorf("%w: %s - %v", ErrCalendarUnavailable, op, err)
}

// slotOrder минуты от полуночи; некорректные метки в конце списка
func slotOrder(label domain.SlotLabel) int {
	minutes, err := label.Minutes()
	if err != nil {
		return math.MaxInt
	}
	return minutes
}
