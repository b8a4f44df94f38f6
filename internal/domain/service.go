package domain

// ServiceItem услуга барбершопа из каталога
type ServiceItem struct {
	Name            string
	Description     string
	Price           int // MXN
	DurationMinutes int
}

// ServiceCatalog упорядоченный список услуг
type ServiceCatalog []ServiceItem

// Contains проверяет, что услуга с таким названием есть в каталоге
func (c ServiceCatalog) Contains(name string) bool {
	for _, item := range c {
		if item.Name == name {
			return true
		}
	}
	return false
}

// DefaultServiceCatalog каталог по умолчанию
func DefaultServiceCatalog() ServiceCatalog {
	return ServiceCatalog{
		{
			Name:            "Corte Clásico",
			Description:     "Corte tradicional corto en los laterales y parte posterior de la cabeza.",
			Price:           90,
			DurationMinutes: 25,
		},
		{
			Name:            "Corte Moderno",
			Description:     "Corte donde el cabello se degrada progresivamente desde la parte superior hacia los lados y la nuca.",
			Price:           100,
			DurationMinutes: 30,
		},
		{
			Name:            "Grecas",
			Description:     "Diseños artísticos rasurados o dibujados en los laterales o parte posterior del cabello.",
			Price:           25,
			DurationMinutes: 10,
		},
		{
			Name:            "Arreglo de Barba",
			Description:     "Recorte de precisión para una barba uniforme y bien definida.",
			Price:           50,
			DurationMinutes: 20,
		},
	}
}
