package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/mastercuts/BookingService/internal/domain"
)

// DatabaseOccupancy занятость по подтверждённым бронированиям (точное совпадение меток)
type DatabaseOccupancy struct {
	repo ReservationRepository
}

func NewDatabaseOccupancy(repo ReservationRepository) *DatabaseOccupancy {
	return &DatabaseOccupancy{repo: repo}
}

func (s *DatabaseOccupancy) Name() string {
	return "database"
}

func (s *DatabaseOccupancy) Occupied(ctx context.Context, date time.Time, _ []domain.SlotLabel, _ time.Duration) (map[domain.SlotLabel]bool, error) {
	times, err := s.repo.GetConfirmedTimes(ctx, date.Format(domain.DateFormat))
	if err != nil {
		return nil, err
	}

	occupied := make(map[domain.SlotLabel]bool, len(times))
	for _, t := range times {
		occupied[t] = true
	}
	return occupied, nil
}

// CalendarOccupancy занятость по событиям календаря: слот занят, если пересекается с любым событием
type CalendarOccupancy struct {
	client CalendarClient
}

func NewCalendarOccupancy(client CalendarClient) *CalendarOccupancy {
	return &CalendarOccupancy{client: client}
}

func (s *CalendarOccupancy) Name() string {
	return "calendar"
}

func (s *CalendarOccupancy) Occupied(ctx context.Context, date time.Time, slots []domain.SlotLabel, duration time.Duration) (map[domain.SlotLabel]bool, error) {
	dayStart, dayEnd := domain.DayBounds(date)

	events, err := s.client.ListEvents(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	occupied := make(map[domain.SlotLabel]bool)
	for _, label := range slots {
		slotStart, err := domain.SlotStart(date, label)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		slotEnd := slotStart.Add(duration)

		for _, e := range events {
			if domain.Overlaps(slotStart, slotEnd, e.Start, e.End) {
				occupied[label] = true
				break
			}
		}
	}
	return occupied, nil
}
