package get_available_slots

import "github.com/mastercuts/BookingService/internal/domain"

// Request модель запроса на получение доступных слотов
type Request struct {
	Date string // YYYY-MM-DD
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date        string
	DayCategory domain.DayCategory
	Slots       []domain.SlotLabel // в порядке каталога

	// Degraded занятость не удалось получить, слоты не отфильтрованы по бронированиям.
	// Только для внутренних вызовов, клиенту не показывается
	Degraded bool
}
