package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/mastercuts/BookingService/internal/domain"
)

// UseCase определяет доступные для бронирования слоты на дату
type UseCase struct {
	schedule     domain.Schedule
	source       OccupancySource
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	schedule domain.Schedule,
	source OccupancySource,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		schedule:     schedule,
		source:       source,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
// Ошибка источника занятости не прерывает запрос: возвращаются все слоты каталога (fail-open)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, source=%s", req.Date, uc.source.Name())

	// 1. Валидация входных данных
	date, err := domain.ParseDate(req.Date, uc.schedule.Location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Текущее время в часовом поясе барбершопа
	now := uc.timeProvider.Now().In(uc.schedule.Location)

	if err := validateDate(date, now, uc.schedule.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Базовая сетка слотов по типу дня
	category := uc.schedule.ClassifyDay(date)
	base := uc.schedule.Catalog.Sequence(category)

	response := &Response{
		Date:        req.Date,
		DayCategory: category,
		Slots:       []domain.SlotLabel{},
	}

	if len(base) == 0 {
		uc.logger.Info("GetAvailableSlots: shop is closed on %s", req.Date)
		return response, nil
	}

	// 4. Занятость
	occupied, err := uc.source.Occupied(ctx, date, base, uc.schedule.Catalog.SlotDuration)
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("GetAvailableSlots: invalid slot catalog: %v", err)
			return nil, err
		}
		uc.logger.Error("GetAvailableSlots: occupancy source %s failed, returning unfiltered slots: %v",
			uc.source.Name(), err)
		uc.metrics.IncAvailabilityFailOpen(uc.source.Name())
		response.Degraded = true
		occupied = nil
	}

	// 5. Исключаем занятые и прошедшие слоты, порядок каталога сохраняется
	for _, label := range base {
		if occupied[label] {
			uc.logger.Debug("GetAvailableSlots: %s %s skipped: occupied", req.Date, label)
			continue
		}

		past, err := domain.IsSlotInPast(date, label, now)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: invalid slot label %q in catalog: %v", label, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if past {
			uc.logger.Debug("GetAvailableSlots: %s %s skipped: past", req.Date, label)
			continue
		}

		response.Slots = append(response.Slots, label)
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available on %s (%s, degraded=%t)",
		len(response.Slots), len(base), req.Date, category, response.Degraded)

	return response, nil
}
