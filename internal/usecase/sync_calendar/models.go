package sync_calendar

// Request дата, за которую сверяются бронирования и календарь
type Request struct {
	Date string // YYYY-MM-DD
}

// Response итог синхронизации
type Response struct {
	Date            string
	Total           int // бронирований на дату
	AlreadyMirrored int
	Created         int
	Failed          int
}
