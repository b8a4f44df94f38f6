package models

import (
	"time"

	"github.com/mastercuts/BookingService/internal/domain"
)

// MirrorStatus наличие события календаря для бронирования
type MirrorStatus string

const (
	MirrorMirrored MirrorStatus = "mirrored"
	MirrorMissing  MirrorStatus = "missing"
	MirrorUnknown  MirrorStatus = "unknown" // календарь не удалось прочитать или он выключен
)

// Response модели

// ReservationResponse бронирование для панели администратора
type ReservationResponse struct {
	ID              string       `json:"id"`
	Services        []string     `json:"services"`
	Date            string       `json:"date"` // "2025-06-13"
	Time            string       `json:"time"` // "10:00 AM"
	CustomerName    string       `json:"customerName"`
	Phone           string       `json:"phone"`
	Status          string       `json:"status"`
	CreatedAt       string       `json:"createdAt"`
	MirrorStatus    MirrorStatus `json:"mirrorStatus"`
	CalendarEventID *string      `json:"calendarEventId,omitempty"`
}

// ReservationListResponse бронирования за дату, отсортированные по времени слота
type ReservationListResponse struct {
	Date         string                 `json:"date"`
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
	CalendarRead bool                   `json:"calendarRead"`
}

// DeleteReservationResponse результат удаления бронирования
type DeleteReservationResponse struct {
	Deleted         bool    `json:"deleted"`
	CalendarEventID *string `json:"calendarEventId,omitempty"` // удалённое событие-зеркало
	Warning         *string `json:"warning,omitempty"`
}

// CalendarEventResponse событие календаря
type CalendarEventResponse struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	IsBooking   bool   `json:"isBooking"`
}

// CalendarEventListResponse события календаря за дату
type CalendarEventListResponse struct {
	Date   string                   `json:"date"`
	Events []*CalendarEventResponse `json:"events"`
}

// CalendarStatusResponse состояние привязки календаря
type CalendarStatusResponse struct {
	Status string `json:"status"`
}

// FromDomainReservation конвертирует domain.Reservation в ReservationResponse
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:           r.ID.String(),
		Services:     r.Services,
		Date:         r.Date,
		Time:         r.Time.String(),
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		MirrorStatus: MirrorUnknown,
	}
}

// FromDomainCalendarEvent конвертирует domain.CalendarEvent в CalendarEventResponse
func FromDomainCalendarEvent(e *domain.CalendarEvent) *CalendarEventResponse {
	return &CalendarEventResponse{
		ID:          e.ID,
		Summary:     e.Summary,
		Description: e.Description,
		Start:       e.Start.Format(time.RFC3339),
		End:         e.End.Format(time.RFC3339),
		IsBooking:   e.IsBookingEvent(),
	}
}
