package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mastercuts/BookingService/internal/domain"
	getAvailableSlots "github.com/mastercuts/BookingService/internal/usecase/get_available_slots"
	"github.com/mastercuts/BookingService/pkg/logger"
)

type stubUseCase struct {
	resp *getAvailableSlots.Response
	err  error
	got  *getAvailableSlots.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func TestHandle_OK(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:        "2025-06-13",
		DayCategory: domain.DayStandard,
		Slots:       []domain.SlotLabel{"10:00 AM", "11:00 AM"},
		Degraded:    true,
	}}

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/available-slots?date=2025-06-13", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-06-13","dayCategory":"standard","slots":["10:00 AM","11:00 AM"]}`, rec.Body.String())
	assert.Equal(t, "2025-06-13", uc.got.Date)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		err    error
		status int
	}{
		{"missing date", "/api/v1/available-slots", nil, http.StatusBadRequest},
		{"invalid date", "/api/v1/available-slots?date=13-06-2025", getAvailableSlots.ErrInvalidInput, http.StatusBadRequest},
		{"past", "/api/v1/available-slots?date=2020-01-01", getAvailableSlots.ErrInvalidDate, http.StatusBadRequest},
		{"too far", "/api/v1/available-slots?date=2030-01-01", getAvailableSlots.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"internal", "/api/v1/available-slots?date=2025-06-13", getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubUseCase{err: tt.err}, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
