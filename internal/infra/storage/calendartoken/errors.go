package calendartoken

import "errors"

var (
	// ErrTokenNotFound возвращается, когда календарь ещё не привязан
	ErrTokenNotFound = errors.New("calendartoken.repository: token not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendartoken.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendartoken.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendartoken.repository: failed to scan row")
)
