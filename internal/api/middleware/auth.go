package middleware

import (
	"errors"
	"net/http"

	"github.com/mastercuts/BookingService/internal/api/handlers"
	"github.com/mastercuts/BookingService/internal/service/auth"
)

const (
	msgAuthRequired   = "Autenticación requerida."
	msgSessionExpired = "La sesión expiró. Inicia sesión de nuevo."
	msgInvalidToken   = "Token inválido."
)

// AdminAuth пропускает только запросы с действующим токеном администратора
// Authorization: Bearer <token>
func AdminAuth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.ExtractBearer(r.Header.Get("Authorization"))
			if !ok {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgAuthRequired)
				return
			}

			if _, err := parser.ParseToken(token); err != nil {
				if errors.Is(err, auth.ErrExpiredToken) {
					logger.Info("%s %s - Admin token expired", r.Method, r.URL.Path)
					handlers.RespondUnauthorized(w, msgSessionExpired)
					return
				}
				logger.Warn("%s %s - Invalid admin token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
