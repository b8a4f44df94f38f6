package create_booking

import "github.com/mastercuts/BookingService/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	Services     []string         `validate:"required,min=1,dive,required"`
	Date         string           `validate:"required,datetime=2006-01-02"`
	Time         domain.SlotLabel `validate:"required,slot_label"`
	CustomerName string           `validate:"required,customer_name"`
	Phone        string           `validate:"required,len=10,numeric"` // после нормализации
}

// WarningKind тип предупреждения о зеркалировании в календарь
type WarningKind string

const (
	// WarningReauthRequired календарь требует повторной авторизации администратора
	WarningReauthRequired WarningKind = "reauth_required"
	// WarningMirrorFailed событие в календаре не создано по другой причине
	WarningMirrorFailed WarningKind = "mirror_failed"
)

// Warning бронирование сохранено, но не отражено в календаре
type Warning struct {
	Kind    WarningKind
	Message string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation     *domain.Reservation
	CalendarEventID string   // пусто, если событие не создано
	Warning         *Warning // nil при успешном зеркалировании
}
