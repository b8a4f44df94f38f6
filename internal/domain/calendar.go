package domain

import (
	"fmt"
	"strings"
	"time"
)

// CalendarEvent событие внешнего календаря
// Связь с бронированием слабая: сопоставляется при чтении, без внешнего ключа
type CalendarEvent struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// NewMirrorEvent builds the calendar mirror of a reservation starting at start
func NewMirrorEvent(r *Reservation, start time.Time, duration time.Duration) *CalendarEvent {
	return &CalendarEvent{
		Summary:     fmt.Sprintf("%s %s", MirrorSummaryPrefix, strings.Join(r.Services, ", ")),
		Description: fmt.Sprintf("%s %s\nTeléfono: %s", MirrorDescriptionMarker, r.CustomerName, r.Phone),
		Start:       start,
		End:         start.Add(duration),
	}
}

// IsBookingEvent reports whether the event looks like a booking mirror
func (e *CalendarEvent) IsBookingEvent() bool {
	return strings.HasPrefix(e.Summary, MirrorSummaryPrefix)
}

// MatchesReservation best-effort check that the event mirrors the reservation whose slot starts at start.
// Start times must agree within EventMatchTolerance; the text must carry the phone or the booking prefix.
func (e *CalendarEvent) MatchesReservation(r *Reservation, start time.Time) bool {
	diff := e.Start.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	if diff > EventMatchTolerance {
		return false
	}

	if strings.Contains(e.Description, MirrorDescriptionMarker) && r.Phone != "" &&
		strings.Contains(e.Description, r.Phone) {
		return true
	}
	return e.IsBookingEvent()
}

// FindMirrorEvent returns the first event matching the reservation or nil
func FindMirrorEvent(events []*CalendarEvent, r *Reservation, start time.Time) *CalendarEvent {
	for _, e := range events {
		if e.MatchesReservation(r, start) {
			return e
		}
	}
	return nil
}

// CalendarToken OAuth-учётные данные календаря (одна запись на сервис)
type CalendarToken struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Expiry       time.Time // zero = без срока
	UpdatedAt    time.Time
}
