package sync_calendar

import "errors"

var (
	// ErrInvalidInput возвращается при некорректной дате
	ErrInvalidInput = errors.New("sync_calendar: invalid input data")

	// ErrCalendarReauthRequired возвращается, когда календарь требует повторной авторизации
	ErrCalendarReauthRequired = errors.New("sync_calendar: calendar re-authorization required")

	// ErrCalendarUnavailable возвращается, когда события календаря не удалось прочитать
	ErrCalendarUnavailable = errors.New("sync_calendar: calendar unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("sync_calendar: internal error")
)
