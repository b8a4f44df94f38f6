package reservations

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
	reservationRepo "github.com/mastercuts/BookingService/internal/infra/storage/reservation"
	"github.com/mastercuts/BookingService/internal/integrations/googlecalendar"
	"github.com/mastercuts/BookingService/internal/service/reservations/models"
	"github.com/mastercuts/BookingService/pkg/logger"
)

type fakeRepo struct {
	rows map[uuid.UUID]*domain.Reservation
	err  error
}

func newFakeRepo(rows ...*domain.Reservation) *fakeRepo {
	repo := &fakeRepo{rows: map[uuid.UUID]*domain.Reservation{}}
	for _, r := range rows {
		repo.rows[r.ID] = r
	}
	return repo
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.rows[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeRepo) GetByDate(_ context.Context, date string, _ *domain.ReservationStatus) ([]*domain.Reservation, error) {
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

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.rows[id]
	delete(f.rows, id)
	return ok, nil
}

type fakeCalendar struct {
	events    []*domain.CalendarEvent
	listErr   error
	deleteErr error
	status    googlecalendar.TokenStatus
	deleted   []string
}

func (f *fakeCalendar) ListEvents(_ context.Context, _, _ time.Time) ([]*domain.CalendarEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, eventID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

func (f *fakeCalendar) TokenStatus(_ context.Context) (googlecalendar.TokenStatus, error) {
	return f.status, nil
}

func mustLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := domain.LoadLocation(domain.DefaultTimezone)
	require.NoError(t, err)
	return loc
}

func newReservation(label domain.SlotLabel, phone string) *domain.Reservation {
	return &domain.Reservation{
		ID:           uuid.New(),
		Services:     []string{"Corte Moderno"},
		Date:         "2025-06-13",
		Time:         label,
		CustomerName: "Ana",
		Phone:        phone,
		Status:       domain.StatusConfirmed,
	}
}

func mirrorOf(t *testing.T, r *domain.Reservation, id string) *domain.CalendarEvent {
	t.Helper()
	day, err := domain.ParseDate(r.Date, mustLocation(t))
	require.NoError(t, err)
	start, err := domain.SlotStart(day, r.Time)
	require.NoError(t, err)
	event := domain.NewMirrorEvent(r, start, time.Hour)
	event.ID = id
	return event
}

func TestListByDate_SortedWithMirrorStatus(t *testing.T) {
	late := newReservation("1:00 PM", "5511111111")
	early := newReservation("10:00 AM", "5522222222")
	cal := &fakeCalendar{}
	cal.events = []*domain.CalendarEvent{mirrorOf(t, late, "evt-late")}

	svc := NewService(newFakeRepo(late, early), cal, mustLocation(t), logger.Nop())

	resp, err := svc.ListByDate(context.Background(), "2025-06-13")
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 2)
	assert.True(t, resp.CalendarRead)

	assert.Equal(t, "10:00 AM", resp.Reservations[0].Time)
	assert.Equal(t, models.MirrorMissing, resp.Reservations[0].MirrorStatus)
	assert.Nil(t, resp.Reservations[0].CalendarEventID)

	assert.Equal(t, "1:00 PM", resp.Reservations[1].Time)
	assert.Equal(t, models.MirrorMirrored, resp.Reservations[1].MirrorStatus)
	require.NotNil(t, resp.Reservations[1].CalendarEventID)
	assert.Equal(t, "evt-late", *resp.Reservations[1].CalendarEventID)
}

func TestListByDate_CalendarUnavailable(t *testing.T) {
	cal := &fakeCalendar{listErr: fmt.Errorf("%w: 503", googlecalendar.ErrUnavailable)}
	svc := NewService(newFakeRepo(newReservation("10:00 AM", "5511111111")), cal, mustLocation(t), logger.Nop())

	resp, err := svc.ListByDate(context.Background(), "2025-06-13")
	require.NoError(t, err)
	assert.False(t, resp.CalendarRead)
	assert.Equal(t, models.MirrorUnknown, resp.Reservations[0].MirrorStatus)
}

func TestListByDate_Errors(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, mustLocation(t), logger.Nop())
	_, err := svc.ListByDate(context.Background(), "13/06/2025")
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo := newFakeRepo()
	repo.err = errors.New("db down")
	svc = NewService(repo, nil, mustLocation(t), logger.Nop())
	_, err = svc.ListByDate(context.Background(), "2025-06-13")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestDelete_RemovesRowThenMirror(t *testing.T) {
	r := newReservation("10:00 AM", "5511111111")
	repo := newFakeRepo(r)
	cal := &fakeCalendar{events: []*domain.CalendarEvent{mirrorOf(t, r, "evt1")}}
	svc := NewService(repo, cal, mustLocation(t), logger.Nop())

	resp, err := svc.Delete(context.Background(), r.ID.String())
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
	require.NotNil(t, resp.CalendarEventID)
	assert.Equal(t, "evt1", *resp.CalendarEventID)
	assert.Nil(t, resp.Warning)
	assert.Equal(t, []string{"evt1"}, cal.deleted)
	assert.Empty(t, repo.rows)

	// повторное удаление
	resp, err = svc.Delete(context.Background(), r.ID.String())
	require.NoError(t, err)
	assert.False(t, resp.Deleted)
	assert.Len(t, cal.deleted, 1)
}

func TestDelete_MirrorFailureIsWarning(t *testing.T) {
	r := newReservation("10:00 AM", "5511111111")
	repo := newFakeRepo(r)
	cal := &fakeCalendar{
		events:    []*domain.CalendarEvent{mirrorOf(t, r, "evt1")},
		deleteErr: fmt.Errorf("%w: 401", googlecalendar.ErrReauthRequired),
	}
	svc := NewService(repo, cal, mustLocation(t), logger.Nop())

	resp, err := svc.Delete(context.Background(), r.ID.String())
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
	require.NotNil(t, resp.Warning)
	assert.Empty(t, repo.rows)
}

func TestDelete_InvalidIDAndCalendarDisabled(t *testing.T) {
	r := newReservation("10:00 AM", "5511111111")
	svc := NewService(newFakeRepo(r), nil, mustLocation(t), logger.Nop())

	_, err := svc.Delete(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.Delete(context.Background(), r.ID.String())
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
	assert.Nil(t, resp.CalendarEventID)
}

func TestGetByID(t *testing.T) {
	r := newReservation("10:00 AM", "5511111111")
	svc := NewService(newFakeRepo(r), nil, mustLocation(t), logger.Nop())

	got, err := svc.GetByID(context.Background(), r.ID.String())
	require.NoError(t, err)
	assert.Equal(t, r.ID.String(), got.ID)

	_, err = svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCalendarOperations(t *testing.T) {
	r := newReservation("10:00 AM", "5511111111")
	cal := &fakeCalendar{
		events: []*domain.CalendarEvent{mirrorOf(t, r, "evt1")},
		status: googlecalendar.TokenReauthRequired,
	}
	svc := NewService(newFakeRepo(), cal, mustLocation(t), logger.Nop())

	events, err := svc.ListCalendarEvents(context.Background(), "2025-06-13")
	require.NoError(t, err)
	require.Len(t, events.Events, 1)
	assert.True(t, events.Events[0].IsBooking)

	require.NoError(t, svc.DeleteCalendarEvent(context.Background(), "evt1"))
	assert.ErrorIs(t, svc.DeleteCalendarEvent(context.Background(), " "), ErrInvalidInput)

	status, err := svc.CalendarStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "reauth_required", status.Status)

	cal.listErr = googlecalendar.ErrNotLinked
	_, err = svc.ListCalendarEvents(context.Background(), "2025-06-13")
	assert.ErrorIs(t, err, ErrCalendarReauthRequired)
}

func TestCalendarOperations_Disabled(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, mustLocation(t), logger.Nop())

	_, err := svc.ListCalendarEvents(context.Background(), "2025-06-13")
	assert.ErrorIs(t, err, ErrCalendarDisabled)
	assert.ErrorIs(t, svc.DeleteCalendarEvent(context.Background(), "evt1"), ErrCalendarDisabled)
	_, err = svc.CalendarStatus(context.Background())
	assert.ErrorIs(t, err, ErrCalendarDisabled)
}
