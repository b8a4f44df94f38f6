package domain

import (
	"fmt"
	"time"
)

// ParseDate parses a YYYY-MM-DD date at midnight in loc
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidFormat, value)
	}
	return d, nil
}

// SlotStart returns the absolute start of a slot on the given calendar date.
// The result uses the date's location.
func SlotStart(date time.Time, label SlotLabel) (time.Time, error) {
	hour, minute, err := ParseSlotLabel(label)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, date.Location()), nil
}

// IsSlotInPast reports whether a slot on today's date is no longer bookable.
// Slots on any other date are never past.
func IsSlotInPast(date time.Time, label SlotLabel, now time.Time) (bool, error) {
	start, err := SlotStart(date, label)
	if err != nil {
		return false, err
	}
	now = now.In(date.Location())
	if !IsSameDay(date, now) {
		return false, nil
	}
	return !start.Add(PastSlotGrace).After(now), nil
}

// Overlaps half-open interval intersection: [aStart, aEnd) and [bStart, bEnd)
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DayBounds returns [00:00, next day 00:00) for the date in its location
func DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	dateOnly, _ := DayBounds(date)
	nowOnly, _ := DayBounds(now.In(date.Location()))
	return dateOnly.Before(nowOnly)
}

// IsBeyondAdvanceLimit проверяет ограничение на запись вперёд. advanceDays = 0 означает без ограничений
func IsBeyondAdvanceLimit(date, now time.Time, advanceDays int) bool {
	if advanceDays <= 0 {
		return false
	}
	nowOnly, _ := DayBounds(now.In(date.Location()))
	dateOnly, _ := DayBounds(date)
	return dateOnly.After(nowOnly.AddDate(0, 0, advanceDays))
}
