package googlecalendar

import "errors"

var (
	// ErrNotLinked возвращается, когда OAuth-токен календаря ещё не сохранён
	ErrNotLinked = errors.New("googlecalendar client: calendar is not linked")

	// ErrReauthRequired возвращается, когда токен нельзя обновить и администратор должен заново привязать календарь
	ErrReauthRequired = errors.New("googlecalendar client: re-authorization required")

	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("googlecalendar client: event not found")

	// ErrUnavailable возвращается при недоступности Google Calendar или неожиданном ответе
	ErrUnavailable = errors.New("googlecalendar client: calendar unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("googlecalendar client: internal error")
)
