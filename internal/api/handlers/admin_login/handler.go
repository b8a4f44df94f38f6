package admin_login

import (
	"errors"
	"net/http"

	"github.com/mastercuts/BookingService/internal/api/handlers"
	"github.com/mastercuts/BookingService/internal/service/auth"
)

const (
	msgInvalidRequestBody = "Cuerpo de la solicitud inválido."
	msgInvalidCredentials = "Contraseña incorrecta."
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.logger.Warn("POST /admin/login - Invalid credentials from %s", r.RemoteAddr)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /admin/login - Failed to login: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/login - Admin logged in from %s", r.RemoteAddr)
	handlers.RespondJSON(w, http.StatusOK, result)
}
