package create_booking

import (
	"time"

	"github.com/mastercuts/BookingService/internal/domain"
	createBooking "github.com/mastercuts/BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Services     []string `json:"services"`
	Date         string   `json:"date"` // "2025-06-13"
	Time         string   `json:"time"` // "10:00 AM"
	CustomerName string   `json:"customerName"`
	Phone        string   `json:"phone"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           string   `json:"id"`
	Services     []string `json:"services"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	CustomerName string   `json:"customerName"`
	Phone        string   `json:"phone"`
	Status       string   `json:"status"`
	CreatedAt    string   `json:"createdAt"`
}

// WarningResponse бронирование сохранено, календарь не обновлён
type WarningResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Reservation     ReservationResponse `json:"reservation"`
	CalendarEventID *string             `json:"calendarEventId,omitempty"`
	Warning         *WarningResponse    `json:"warning,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		Services:     r.Services,
		Date:         r.Date,
		Time:         domain.SlotLabel(r.Time),
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	reservation := resp.Reservation
	result := &BookingResponse{
		Reservation: ReservationResponse{
			ID:           reservation.ID.String(),
			Services:     reservation.Services,
			Date:         reservation.Date,
			Time:         reservation.Time.String(),
			CustomerName: reservation.CustomerName,
			Phone:        reservation.Phone,
			Status:       string(reservation.Status),
			CreatedAt:    reservation.CreatedAt.Format(time.RFC3339),
		},
	}

	if resp.CalendarEventID != "" {
		eventID := resp.CalendarEventID
		result.CalendarEventID = &eventID
	}
	if resp.Warning != nil {
		result.Warning = &WarningResponse{
			Kind:    string(resp.Warning.Kind),
			Message: resp.Warning.Message,
		}
	}
	return result
}
