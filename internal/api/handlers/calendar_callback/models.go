package calendar_callback

// CallbackResponse результат привязки календаря
type CallbackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
