package sync_calendar

import (
	syncCalendar "github.com/mastercuts/BookingService/internal/usecase/sync_calendar"
)

// SyncResponse HTTP response model
type SyncResponse struct {
	Date            string `json:"date"`
	Total           int    `json:"total"`
	AlreadyMirrored int    `json:"alreadyMirrored"`
	Created         int    `json:"created"`
	Failed          int    `json:"failed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *syncCalendar.Response) *SyncResponse {
	return &SyncResponse{
		Date:            resp.Date,
		Total:           resp.Total,
		AlreadyMirrored: resp.AlreadyMirrored,
		Created:         resp.Created,
		Failed:          resp.Failed,
	}
}
