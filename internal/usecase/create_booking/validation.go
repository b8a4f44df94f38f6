package create_booking

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mastercuts/BookingService/internal/domain"
)

var customerNamePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]{2,}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("slot_label", func(fl validator.FieldLevel) bool {
		return domain.SlotLabel(fl.Field().String()).Validate() == nil
	}); err != nil {
		panic(err)
	}

	if err := v.RegisterValidation("customer_name", func(fl validator.FieldLevel) bool {
		return customerNamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// normalizeRequest приводит ввод к каноническому виду: телефон только цифры, услуги без повторов
func normalizeRequest(req *Request) *Request {
	return &Request{
		Services:     domain.DedupServices(trimAll(req.Services)),
		Date:         strings.TrimSpace(req.Date),
		Time:         domain.SlotLabel(strings.TrimSpace(string(req.Time))),
		CustomerName: strings.Join(strings.Fields(req.CustomerName), " "),
		Phone:        domain.NormalizePhone(req.Phone),
	}
}

// validateRequest валидирует нормализованный запрос
func validateRequest(req *Request, catalog domain.ServiceCatalog) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, s := range req.Services {
		if !catalog.Contains(s) {
			return fmt.Errorf("%w: %q", ErrUnknownService, s)
		}
	}
	return nil
}

func trimAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		result = append(result, strings.TrimSpace(v))
	}
	return result
}
