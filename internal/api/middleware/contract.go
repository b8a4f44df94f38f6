package middleware

import (
	"time"

	"github.com/mastercuts/BookingService/internal/service/auth"
)

// HTTPMetrics сбор метрик HTTP-запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// TokenParser проверка токена администратора
type TokenParser interface {
	ParseToken(token string) (*auth.Claims, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
