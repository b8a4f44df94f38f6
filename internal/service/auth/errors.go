package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном пароле администратора
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken возвращается при невалидном или чужом токене
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrExpiredToken возвращается при истёкшем токене
	ErrExpiredToken = errors.New("auth: token has expired")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
