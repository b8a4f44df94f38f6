package get_services

import (
	"net/http"

	"github.com/mastercuts/BookingService/internal/api/handlers"
	"github.com/mastercuts/BookingService/internal/domain"
)

type Handler struct {
	catalog domain.ServiceCatalog
	logger  Logger
}

func NewHandler(catalog domain.ServiceCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	h.logger.Info("GET /services - Catalog retrieved: services_count=%d", len(h.catalog))
	handlers.RespondJSON(w, http.StatusOK, FromDomainCatalog(h.catalog))
}
