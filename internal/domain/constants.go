package domain

import (
	"time"
	_ "time/tzdata" // IANA-база встраивается в бинарник, контейнер может не иметь zoneinfo
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimezone часовой пояс барбершопа
const DefaultTimezone = "America/Mexico_City"

const (
	// PastSlotGrace слот сегодняшнего дня считается прошедшим, когда
	// с момента его начала прошло не меньше этого интервала
	PastSlotGrace = 30 * time.Minute

	// EventMatchTolerance допустимое расхождение начала события календаря
	// и начала слота бронирования при сопоставлении
	EventMatchTolerance = 60 * time.Second

	// DefaultSlotDuration длительность слота канонического каталога
	DefaultSlotDuration = time.Hour

	// DefaultAdvanceBookingDays 0 = unlimited
	DefaultAdvanceBookingDays = 0
)

// Calendar mirror text
const (
	MirrorSummaryPrefix     = "Cita:"
	MirrorDescriptionMarker = "Cliente:"
)

// PhoneDigits длина нормализованного номера телефона
const PhoneDigits = 10

// LoadLocation загружает часовой пояс по имени IANA
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	return time.LoadLocation(name)
}
