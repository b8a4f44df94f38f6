package get_services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mastercuts/BookingService/internal/domain"
	"github.com/mastercuts/BookingService/pkg/logger"
)

func TestHandle_ReturnsCatalogWithDescriptions(t *testing.T) {
	catalog := domain.ServiceCatalog{
		{Name: "Grecas", Description: "Diseños rasurados.", Price: 25, DurationMinutes: 10},
		{Name: "Arreglo de Barba", Price: 50, DurationMinutes: 20},
	}

	rec := httptest.NewRecorder()
	NewHandler(catalog, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"services":[
		{"name":"Grecas","description":"Diseños rasurados.","price":25,"durationMinutes":10},
		{"name":"Arreglo de Barba","description":"","price":50,"durationMinutes":20}
	]}`, rec.Body.String())
}

func TestDefaultCatalog_HasDescriptions(t *testing.T) {
	for _, item := range domain.DefaultServiceCatalog() {
		assert.NotEmpty(t, item.Description, item.Name)
	}
}
