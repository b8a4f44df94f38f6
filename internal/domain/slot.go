package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// SlotLabel human-readable start time of a slot, e.g. "10:00 AM"
type SlotLabel string

var slotLabelPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2}) (AM|PM)$`)

// ParseSlotLabel converts a "H:MM AM|PM" label to 24-hour clock values.
// 12 AM maps to hour 0, 12 PM to hour 12.
func ParseSlotLabel(label SlotLabel) (hour, minute int, err error) {
	m := slotLabelPattern.FindStringSubmatch(string(label))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: slot label %q", ErrInvalidFormat, label)
	}

	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: slot label %q out of range", ErrInvalidFormat, label)
	}

	switch {
	case m[3] == "AM" && hour == 12:
		hour = 0
	case m[3] == "PM" && hour != 12:
		hour += 12
	}

	return hour, minute, nil
}

// FormatSlotLabel builds a label from 24-hour clock values
func FormatSlotLabel(hour, minute int) SlotLabel {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return SlotLabel(fmt.Sprintf("%d:%02d %s", h, minute, suffix))
}

// Validate проверяет формат метки
func (l SlotLabel) Validate() error {
	_, _, err := ParseSlotLabel(l)
	return err
}

// Minutes возвращает смещение начала слота от полуночи в минутах
func (l SlotLabel) Minutes() (int, error) {
	h, m, err := ParseSlotLabel(l)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

func (l SlotLabel) String() string {
	return string(l)
}
