package get_available_slots

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercuts/BookingService/internal/domain"
	"github.com/mastercuts/BookingService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeReservationRepo struct {
	times map[string][]domain.SlotLabel
	err   error
	calls int
}

func (f *fakeReservationRepo) GetConfirmedTimes(_ context.Context, date string) ([]domain.SlotLabel, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.times[date], nil
}

type fakeCalendar struct {
	events []*domain.CalendarEvent
	err    error
}

func (f *fakeCalendar) ListEvents(_ context.Context, timeMin, timeMax time.Time) ([]*domain.CalendarEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*domain.CalendarEvent
	for _, e := range f.events {
		if domain.Overlaps(timeMin, timeMax, e.Start, e.End) {
			result = append(result, e)
		}
	}
	return result, nil
}

type fakeMetrics struct{ failOpen map[string]int }

func (f *fakeMetrics) IncAvailabilityFailOpen(source string) {
	if f.failOpen == nil {
		f.failOpen = map[string]int{}
	}
	f.failOpen[source]++
}

func testSchedule(t *testing.T) domain.Schedule {
	t.Helper()
	loc, err := domain.LoadLocation(domain.DefaultTimezone)
	require.NoError(t, err)
	return domain.Schedule{Catalog: domain.HourlyCatalog(), Location: loc}
}

// 2025-06-12 четверг; 2025-06-13 пятница; 2025-06-15 воскресенье
func newUseCase(t *testing.T, source OccupancySource, now time.Time) (*UseCase, *fakeMetrics) {
	m := &fakeMetrics{}
	uc := NewUseCase(testSchedule(t), source, m, logger.Nop()).WithTimeProvider(fixedTime{now: now})
	return uc, m
}

func morning(t *testing.T) time.Time {
	return time.Date(2025, 6, 12, 8, 0, 0, 0, testSchedule(t).Location)
}

func TestExecute_StandardDay(t *testing.T) {
	repo := &fakeReservationRepo{times: map[string][]domain.SlotLabel{"2025-06-13": {"10:00 AM", "3:00 PM"}}}
	uc, _ := newUseCase(t, NewDatabaseOccupancy(repo), morning(t))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)

	assert.Equal(t, domain.DayStandard, resp.DayCategory)
	assert.False(t, resp.Degraded)
	assert.Equal(t, []domain.SlotLabel{
		"11:00 AM", "12:00 PM", "1:00 PM", "2:00 PM", "4:00 PM",
		"5:00 PM", "6:00 PM", "7:00 PM", "8:00 PM",
	}, resp.Slots)
}

func TestExecute_SundayStaysWithinSundayCatalog(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc, _ := newUseCase(t, NewDatabaseOccupancy(repo), morning(t))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-15"})
	require.NoError(t, err)

	assert.Equal(t, domain.DaySunday, resp.DayCategory)
	for _, s := range resp.Slots {
		assert.True(t, domain.HourlyCatalog().Contains(domain.DaySunday, s), s)
	}
	assert.Equal(t, domain.SlotLabel("11:00 AM"), resp.Slots[0])
	assert.Equal(t, domain.SlotLabel("5:00 PM"), resp.Slots[len(resp.Slots)-1])
}

func TestExecute_Idempotent(t *testing.T) {
	repo := &fakeReservationRepo{times: map[string][]domain.SlotLabel{"2025-06-13": {"1:00 PM"}}}
	uc, _ := newUseCase(t, NewDatabaseOccupancy(repo), morning(t))

	first, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, repo.calls, "occupancy is never cached")
}

func TestExecute_TodayFiltersPastSlots(t *testing.T) {
	loc := testSchedule(t).Location
	now := time.Date(2025, 6, 13, 14, 35, 0, 0, loc)
	uc, _ := newUseCase(t, NewDatabaseOccupancy(&fakeReservationRepo{}), now)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)

	assert.NotContains(t, resp.Slots, domain.SlotLabel("2:00 PM"))
	assert.Equal(t, domain.SlotLabel("3:00 PM"), resp.Slots[0])
}

func TestExecute_HalfHourCatalogGrace(t *testing.T) {
	schedule := testSchedule(t)
	schedule.Catalog = domain.HalfHourCatalog()
	now := time.Date(2025, 6, 13, 14, 35, 0, 0, schedule.Location)

	uc := NewUseCase(schedule, NewDatabaseOccupancy(&fakeReservationRepo{}), &fakeMetrics{}, logger.Nop()).
		WithTimeProvider(fixedTime{now: now})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)

	assert.NotContains(t, resp.Slots, domain.SlotLabel("2:00 PM"))
	assert.Equal(t, domain.SlotLabel("2:30 PM"), resp.Slots[0])
}

func TestExecute_FailOpen(t *testing.T) {
	repo := &fakeReservationRepo{err: errors.New("connection refused")}
	uc, m := newUseCase(t, NewDatabaseOccupancy(repo), morning(t))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	assert.Equal(t, domain.HourlyCatalog().Standard, resp.Slots)
	assert.Equal(t, 1, m.failOpen["database"])
}

func TestExecute_FailOpenStillFiltersPast(t *testing.T) {
	loc := testSchedule(t).Location
	now := time.Date(2025, 6, 13, 19, 40, 0, 0, loc)
	uc, _ := newUseCase(t, NewCalendarOccupancy(&fakeCalendar{err: errors.New("timeout")}), now)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	assert.Equal(t, []domain.SlotLabel{"8:00 PM"}, resp.Slots)
}

func TestExecute_CalendarOccupancy(t *testing.T) {
	loc := testSchedule(t).Location
	at := func(h, m int) time.Time { return time.Date(2025, 6, 13, h, m, 0, 0, loc) }

	cal := &fakeCalendar{events: []*domain.CalendarEvent{
		{Summary: "Cita: Grecas", Start: at(10, 0), End: at(11, 0)},
		{Summary: "Dentista", Start: at(13, 30), End: at(13, 45)},
		{Summary: "Comida", Start: at(15, 0), End: at(17, 0)},
	}}
	uc, _ := newUseCase(t, NewCalendarOccupancy(cal), morning(t))

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)

	assert.Equal(t, []domain.SlotLabel{
		"11:00 AM", "12:00 PM", "2:00 PM", "5:00 PM", "6:00 PM", "7:00 PM", "8:00 PM",
	}, resp.Slots)
}

func TestExecute_DateValidation(t *testing.T) {
	schedule := testSchedule(t)
	schedule.AdvanceBookingDays = 30
	uc := NewUseCase(schedule, NewDatabaseOccupancy(&fakeReservationRepo{}), &fakeMetrics{}, logger.Nop()).
		WithTimeProvider(fixedTime{now: morning(t)})

	tests := []struct {
		date string
		want error
	}{
		{"2025-06-11", ErrInvalidDate},
		{"2025-07-13", ErrDateTooFarInFuture},
		{"13-06-2025", ErrInvalidInput},
		{"", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{Date: tt.date})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-07-12"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Slots)
}

func TestExecute_ClosedDay(t *testing.T) {
	schedule := testSchedule(t)
	schedule.ClosedWeekdays = []time.Weekday{time.Friday}
	repo := &fakeReservationRepo{}
	uc := NewUseCase(schedule, NewDatabaseOccupancy(repo), &fakeMetrics{}, logger.Nop()).
		WithTimeProvider(fixedTime{now: morning(t)})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)
	assert.Equal(t, domain.DayClosed, resp.DayCategory)
	assert.Empty(t, resp.Slots)
	assert.Zero(t, repo.calls)
}

func TestExecute_InvalidCatalogIsInternal(t *testing.T) {
	schedule := testSchedule(t)
	schedule.Catalog.Standard = []domain.SlotLabel{"10:00"}
	uc := NewUseCase(schedule, NewDatabaseOccupancy(&fakeReservationRepo{}), &fakeMetrics{}, logger.Nop()).
		WithTimeProvider(fixedTime{now: morning(t)})

	_, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_TracesSkippedSlots(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewWithWriter(&buf, "debug")
	require.NoError(t, err)

	now := time.Date(2025, 6, 12, 10, 45, 0, 0, testSchedule(t).Location)
	repo := &fakeReservationRepo{times: map[string][]domain.SlotLabel{"2025-06-12": {"3:00 PM"}}}
	uc := NewUseCase(testSchedule(t), NewDatabaseOccupancy(repo), &fakeMetrics{}, log).
		WithTimeProvider(fixedTime{now: now})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-12"})
	require.NoError(t, err)
	assert.NotContains(t, resp.Slots, domain.SlotLabel("10:00 AM"))
	assert.NotContains(t, resp.Slots, domain.SlotLabel("3:00 PM"))

	assert.Contains(t, buf.String(), "2025-06-12 10:00 AM skipped: past")
	assert.Contains(t, buf.String(), "2025-06-12 3:00 PM skipped: occupied")
}
