package reservations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrCalendarDisabled возвращается, когда интеграция с календарём выключена
	ErrCalendarDisabled = errors.New("reservations: calendar integration disabled")

	// ErrCalendarReauthRequired возвращается, когда календарь требует повторной авторизации
	ErrCalendarReauthRequired = errors.New("reservations: calendar re-authorization required")

	// ErrCalendarUnavailable возвращается при недоступности календаря
	ErrCalendarUnavailable = errors.New("reservations: calendar unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
