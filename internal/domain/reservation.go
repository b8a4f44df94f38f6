package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
)

// Reservation authoritative booking record
// At most one confirmed reservation may exist per (Date, Time)
type Reservation struct {
	ID           uuid.UUID
	Services     []string // ordered, non-empty, no duplicates
	Date         string   // YYYY-MM-DD, no timezone
	Time         SlotLabel
	CustomerName string
	Phone        string // digits only
	Status       ReservationStatus
	CreatedAt    time.Time
}

// IsConfirmed returns true if the reservation occupies its slot
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// DedupServices removes empty and repeated service names preserving first occurrence
func DedupServices(services []string) []string {
	seen := make(map[string]struct{}, len(services))
	result := make([]string, 0, len(services))
	for _, s := range services {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	return result
}

// NormalizePhone keeps only ASCII digits
func NormalizePhone(phone string) string {
	digits := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}
	return string(digits)
}
