package get_services

import "github.com/mastercuts/BookingService/internal/domain"

// ServiceResponse HTTP response model
type ServiceResponse struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           int    `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ServicesResponse каталог услуг
type ServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainCatalog конвертирует каталог в HTTP response
func FromDomainCatalog(catalog domain.ServiceCatalog) *ServicesResponse {
	services := make([]ServiceResponse, len(catalog))
	for i, item := range catalog {
		services[i] = ServiceResponse{
			Name:            item.Name,
			Description:     item.Description,
			Price:           item.Price,
			DurationMinutes: item.DurationMinutes,
		}
	}
	return &ServicesResponse{Services: services}
}
