package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType назначение токена
type TokenType string

const (
	TokenAdmin TokenType = "admin"
	TokenState TokenType = "oauth_state" // state для привязки календаря
)

const (
	adminSubject = "admin"
	stateTTL     = 10 * time.Minute
)

// Config параметры сервиса
type Config struct {
	PasswordHash string // bcrypt
	Secret       string // HS256
	TokenTTL     time.Duration
	Issuer       string
}

// Claims содержимое токена
type Claims struct {
	Type TokenType `json:"type"`
	jwt.RegisteredClaims
}

// LoginResponse выданный токен администратора
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}
