package sync_calendar

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercuts/BookingService/internal/domain"
	"github.com/mastercuts/BookingService/internal/integrations/googlecalendar"
	"github.com/mastercuts/BookingService/pkg/logger"
)

type fakeReservations struct {
	rows []*domain.Reservation
	err  error
}

func (f *fakeReservations) GetByDate(_ context.Context, date string, _ *domain.ReservationStatus) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*domain.Reservation
	for _, r := range f.rows {
		if r.Date == date {
			result = append(result, r)
		}
	}
	return result, nil
}

type fakeCalendar struct {
	events    []*domain.CalendarEvent
	listErr   error
	failFor   map[string]bool // по summary
	createCnt int
}

func (f *fakeCalendar) ListEvents(_ context.Context, timeMin, timeMax time.Time) ([]*domain.CalendarEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*domain.CalendarEvent
	for _, e := range f.events {
		if domain.Overlaps(timeMin, timeMax, e.Start, e.End) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeCalendar) CreateEvent(_ context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if f.failFor[e.Summary] {
		return nil, fmt.Errorf("%w: 500", googlecalendar.ErrUnavailable)
	}
	f.createCnt++
	copied := *e
	copied.ID = fmt.Sprintf("evt%d", f.createCnt)
	f.events = append(f.events, &copied)
	return &copied, nil
}

type fakeMetrics struct{ results map[string]int }

func (f *fakeMetrics) IncCalendarSync(result string, n int) { f.results[result] += n }

func setup(t *testing.T) (*UseCase, *fakeReservations, *fakeCalendar, *fakeMetrics) {
	t.Helper()
	loc, err := domain.LoadLocation(domain.DefaultTimezone)
	require.NoError(t, err)

	repo := &fakeReservations{}
	cal := &fakeCalendar{failFor: map[string]bool{}}
	m := &fakeMetrics{results: map[string]int{}}
	schedule := domain.Schedule{Catalog: domain.HourlyCatalog(), Location: loc}
	return NewUseCase(repo, cal, schedule, m, logger.Nop()), repo, cal, m
}

func reservation(date string, label domain.SlotLabel, service, phone string) *domain.Reservation {
	return &domain.Reservation{
		ID:           uuid.New(),
		Services:     []string{service},
		Date:         date,
		Time:         label,
		CustomerName: "Cliente",
		Phone:        phone,
		Status:       domain.StatusConfirmed,
	}
}

func TestExecute_CreatesMissingAndIsIdempotent(t *testing.T) {
	uc, repo, cal, m := setup(t)
	loc := uc.schedule.Location

	repo.rows = []*domain.Reservation{
		reservation("2025-06-13", "10:00 AM", "Grecas", "5511111111"),
		reservation("2025-06-13", "1:00 PM", "Corte Moderno", "5522222222"),
		reservation("2025-06-14", "1:00 PM", "Corte Moderno", "5533333333"),
	}
	// уже отражено вручную, с небольшим сдвигом
	start := time.Date(2025, 6, 13, 10, 0, 30, 0, loc)
	cal.events = []*domain.CalendarEvent{
		{ID: "manual", Summary: "Cita: Grecas", Description: "Cliente: Cliente\nTeléfono: 5511111111", Start: start, End: start.Add(time.Hour)},
	}

	first, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)
	assert.Equal(t, &Response{Date: "2025-06-13", Total: 2, AlreadyMirrored: 1, Created: 1}, first)

	created := cal.events[len(cal.events)-1]
	assert.True(t, created.Start.Equal(time.Date(2025, 6, 13, 13, 0, 0, 0, loc)))

	second, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.AlreadyMirrored)
	assert.Equal(t, 1, cal.createCnt)
	assert.Equal(t, 1, m.results["created"])
}

func TestExecute_PerItemFailureContinues(t *testing.T) {
	uc, repo, cal, _ := setup(t)
	repo.rows = []*domain.Reservation{
		reservation("2025-06-13", "10:00 AM", "Grecas", "5511111111"),
		reservation("2025-06-13", "11:00 AM", "Corte Moderno", "5522222222"),
		reservation("2025-06-13", "bad", "Corte Clásico", "5533333333"),
	}
	cal.failFor["Cita: Grecas"] = true

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 2, resp.Failed)
}

func TestExecute_CalendarErrors(t *testing.T) {
	tests := []struct {
		name    string
		listErr error
		want    error
	}{
		{"reauth", fmt.Errorf("%w: 401", googlecalendar.ErrReauthRequired), ErrCalendarReauthRequired},
		{"not linked", googlecalendar.ErrNotLinked, ErrCalendarReauthRequired},
		{"unavailable", errors.New("timeout"), ErrCalendarUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, cal, _ := setup(t)
			repo.rows = []*domain.Reservation{reservation("2025-06-13", "10:00 AM", "Grecas", "5511111111")}
			cal.listErr = tt.listErr

			_, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, cal.createCnt)
		})
	}
}

func TestExecute_NoReservationsSkipsCalendar(t *testing.T) {
	uc, _, cal, _ := setup(t)
	cal.listErr = errors.New("must not be called")

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
}

func TestExecute_InvalidDateAndRepoError(t *testing.T) {
	uc, repo, _, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{Date: "tomorrow"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.err = errors.New("db down")
	_, err = uc.Execute(context.Background(), &Request{Date: "2025-06-13"})
	assert.ErrorIs(t, err, ErrInternal)
}
