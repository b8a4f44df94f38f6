package googlecalendar

import (
	"context"
	"time"

	"github.com/mastercuts/BookingService/internal/domain"
)

// TokenStatus состояние привязки календаря
type TokenStatus string

const (
	TokenValid          TokenStatus = "valid"
	TokenReauthRequired TokenStatus = "reauth_required"
	TokenNotLinked      TokenStatus = "not_linked"
)

// Config параметры клиента
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	CalendarID   string
	Timeout      time.Duration
	Location     *time.Location

	// Endpoint переопределяет базовый URL Calendar API, TokenURL/AuthURL - OAuth endpoint Google
	Endpoint string
	TokenURL string
	AuthURL  string
}

// TokenStore хранилище OAuth-токена
type TokenStore interface {
	Get(ctx context.Context) (*domain.CalendarToken, error)
	Save(ctx context.Context, token *domain.CalendarToken) error
	Delete(ctx context.Context) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
