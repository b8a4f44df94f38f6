package domain

import (
	"fmt"
	"time"
)

// DayCategory selects which slot sequence applies to a date
type DayCategory string

const (
	DayStandard DayCategory = "standard"
	DaySunday   DayCategory = "sunday"
	DayClosed   DayCategory = "closed"
)

// Catalog preset names
const (
	PresetHourly   = "hourly"
	PresetHalfHour = "half_hour"
)

// SlotCatalog ordered slot labels per day category
type SlotCatalog struct {
	Standard     []SlotLabel
	Sunday       []SlotLabel
	SlotDuration time.Duration
}

// Sequence returns the base slot sequence for the category. Closed days have none.
func (c SlotCatalog) Sequence(category DayCategory) []SlotLabel {
	switch category {
	case DayStandard:
		return c.Standard
	case DaySunday:
		return c.Sunday
	default:
		return nil
	}
}

// Contains reports whether label belongs to the category sequence
func (c SlotCatalog) Contains(category DayCategory, label SlotLabel) bool {
	for _, l := range c.Sequence(category) {
		if l == label {
			return true
		}
	}
	return false
}

// Validate проверяет все метки каталога и длительность слота
func (c SlotCatalog) Validate() error {
	if c.SlotDuration <= 0 {
		return fmt.Errorf("%w: slot duration must be positive", ErrInvalidFormat)
	}
	for category, labels := range map[DayCategory][]SlotLabel{DayStandard: c.Standard, DaySunday: c.Sunday} {
		prev := -1
		for _, l := range labels {
			minutes, err := l.Minutes()
			if err != nil {
				return fmt.Errorf("%s catalog: %w", category, err)
			}
			if minutes <= prev {
				return fmt.Errorf("%w: %s catalog is not strictly ascending at %q", ErrInvalidFormat, category, l)
			}
			prev = minutes
		}
	}
	return nil
}

// HourlyCatalog canonical catalog: 10:00 AM - 8:00 PM, Sundays 11:00 AM - 5:00 PM
func HourlyCatalog() SlotCatalog {
	return SlotCatalog{
		Standard:     labelRange(10*60, 20*60, 60),
		Sunday:       labelRange(11*60, 17*60, 60),
		SlotDuration: time.Hour,
	}
}

// HalfHourCatalog историческая сетка 9:00 AM - 5:30 PM с шагом 30 минут без выделения воскресенья
func HalfHourCatalog() SlotCatalog {
	labels := labelRange(9*60, 17*60+30, 30)
	return SlotCatalog{
		Standard:     labels,
		Sunday:       labels,
		SlotDuration: 30 * time.Minute,
	}
}

// CatalogPreset returns a named catalog
func CatalogPreset(name string) (SlotCatalog, error) {
	switch name {
	case "", PresetHourly:
		return HourlyCatalog(), nil
	case PresetHalfHour:
		return HalfHourCatalog(), nil
	default:
		return SlotCatalog{}, fmt.Errorf("unknown slot catalog preset %q", name)
	}
}

// labelRange builds labels from firstMinute to lastMinute inclusive
func labelRange(firstMinute, lastMinute, step int) []SlotLabel {
	labels := make([]SlotLabel, 0, (lastMinute-firstMinute)/step+1)
	for m := firstMinute; m <= lastMinute; m += step {
		labels = append(labels, FormatSlotLabel(m/60, m%60))
	}
	return labels
}

// Schedule правила работы барбершопа
type Schedule struct {
	Catalog            SlotCatalog
	ClosedWeekdays     []time.Weekday
	AdvanceBookingDays int // 0 = unlimited
	Location           *time.Location
}

// ClassifyDay determines the day category. Weekday arithmetic uses the date's own calendar day.
func (s Schedule) ClassifyDay(date time.Time) DayCategory {
	for _, wd := range s.ClosedWeekdays {
		if date.Weekday() == wd {
			return DayClosed
		}
	}
	return ClassifyDay(date)
}

// ClassifyDay Sunday vs every other day
func ClassifyDay(date time.Time) DayCategory {
	if date.Weekday() == time.Sunday {
		return DaySunday
	}
	return DayStandard
}
