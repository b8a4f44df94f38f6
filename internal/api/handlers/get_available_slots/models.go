package get_available_slots

import (
	getAvailableSlots "github.com/mastercuts/BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date        string   `json:"date"`
	DayCategory string   `json:"dayCategory"`
	Slots       []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Признак Degraded клиенту не передаётся
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:        resp.Date,
		DayCategory: string(resp.DayCategory),
		Slots:       slots,
	}
}
