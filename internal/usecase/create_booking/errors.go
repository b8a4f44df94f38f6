package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrUnknownService возвращается, когда услуги нет в каталоге
	ErrUnknownService = errors.New("create_booking: unknown service")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrShopClosed возвращается, когда барбершоп закрыт в указанную дату
	ErrShopClosed = errors.New("create_booking: shop is closed on this date")

	// ErrSlotUnavailable возвращается, когда выбранный слот уже занят, прошёл или не входит в каталог дня
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrPersistence возвращается, когда бронирование не удалось сохранить. Клиент может повторить попытку
	ErrPersistence = errors.New("create_booking: failed to store reservation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
