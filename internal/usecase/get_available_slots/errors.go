package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном формате даты
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("get_available_slots: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInternal возвращается при внутренних ошибках usecase (например, некорректный каталог слотов)
	ErrInternal = errors.New("get_available_slots: internal error")
)
