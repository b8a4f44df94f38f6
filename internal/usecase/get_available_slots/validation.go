package get_available_slots

import (
	"fmt"
	"time"

	"github.com/mastercuts/BookingService/internal/domain"
)

// validateDate проверяет, что дата не в прошлом и не превышает ограничение записи вперёд
func validateDate(date, now time.Time, advanceBookingDays int) error {
	if domain.IsDateInPast(date, now) {
		return ErrInvalidDate
	}
	if domain.IsBeyondAdvanceLimit(date, now, advanceBookingDays) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}
	return nil
}
