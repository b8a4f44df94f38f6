package admin_login

import (
	"context"

	"github.com/mastercuts/BookingService/internal/service/auth"
)

type AuthService interface {
	Login(ctx context.Context, password string) (*auth.LoginResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
