package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMirrorEvent(t *testing.T) {
	start := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	r := &Reservation{
		Services:     []string{"Corte Clásico", "Grecas"},
		CustomerName: "Juan Pérez",
		Phone:        "5512345678",
	}

	e := NewMirrorEvent(r, start, time.Hour)

	assert.Equal(t, "Cita: Corte Clásico, Grecas", e.Summary)
	assert.Equal(t, "Cliente: Juan Pérez\nTeléfono: 5512345678", e.Description)
	assert.Equal(t, start, e.Start)
	assert.Equal(t, start.Add(time.Hour), e.End)
	assert.True(t, e.IsBookingEvent())
}

func TestMatchesReservation(t *testing.T) {
	start := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	r := &Reservation{Services: []string{"Grecas"}, CustomerName: "Ana", Phone: "5512345678"}

	tests := []struct {
		name  string
		event CalendarEvent
		want  bool
	}{
		{
			name:  "phone in description",
			event: CalendarEvent{Summary: "Reunión", Description: "Cliente: Ana\nTeléfono: 5512345678", Start: start},
			want:  true,
		},
		{
			name:  "booking prefix",
			event: CalendarEvent{Summary: "Cita: Grecas", Start: start.Add(30 * time.Second)},
			want:  true,
		},
		{
			name:  "start too far",
			event: CalendarEvent{Summary: "Cita: Grecas", Start: start.Add(2 * time.Minute)},
			want:  false,
		},
		{
			name:  "unrelated event same time",
			event: CalendarEvent{Summary: "Dentista", Description: "personal", Start: start},
			want:  false,
		},
		{
			name:  "other phone without prefix",
			event: CalendarEvent{Summary: "Llamada", Description: "Cliente: Luis\nTeléfono: 5599999999", Start: start},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.MatchesReservation(r, start))
		})
	}
}

func TestFindMirrorEvent(t *testing.T) {
	start := time.Date(2025, 6, 13, 11, 0, 0, 0, time.UTC)
	r := &Reservation{Phone: "5512345678"}
	events := []*CalendarEvent{
		{ID: "a", Summary: "Cita: Grecas", Start: start.Add(-time.Hour)},
		{ID: "b", Summary: "Cita: Corte Moderno", Start: start},
	}

	found := FindMirrorEvent(events, r, start)
	require.NotNil(t, found)
	assert.Equal(t, "b", found.ID)

	assert.Nil(t, FindMirrorEvent(events, r, start.Add(3*time.Hour)))
}

func TestDedupServicesAndPhone(t *testing.T) {
	assert.Equal(t, []string{"Grecas", "Corte Moderno"}, DedupServices([]string{"Grecas", "", "Corte Moderno", "Grecas"}))
	assert.Equal(t, "5512345678", NormalizePhone("(55) 1234-5678"))
	assert.Equal(t, "", NormalizePhone("abc"))
}
