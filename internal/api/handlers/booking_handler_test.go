package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/api/handlers"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/application/services"
	apperrors "github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/errors"
)

type stubBookingService struct {
	lastRequest services.BookingRequest
	result      *services.BookingResult
	err         error
}

func (s *stubBookingService) Book(ctx context.Context, req services.BookingRequest) (*services.BookingResult, error) {
	s.lastRequest = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestBookingHandler_CreateBooking_Submitted(t *testing.T) {
	service := &stubBookingService{
		result: &services.BookingResult{BookingID: "b1", Submitted: true},
	}
	handler := handlers.NewBookingHandler(service)

	body := `{"patient_id":"p1","doctor_id":"d1","appointment_date":"2026-09-10","appointment_time":"10:00"}`
	req := httptest.NewRequest("POST", "/api/v1/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateBooking(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response services.BookingResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "b1", response.BookingID)
	assert.True(t, response.Submitted)
}

func TestBookingHandler_CreateBooking_QueuedOffline(t *testing.T) {
	service := &stubBookingService{
		result: &services.BookingResult{BookingID: "b1", QueuedOffline: true},
	}
	handler := handlers.NewBookingHandler(service)

	body := `{"patient_id":"p1","doctor_id":"d1","appointment_date":"2026-09-10","appointment_time":"10:00"}`
	req := httptest.NewRequest("POST", "/api/v1/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateBooking(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestBookingHandler_CreateBooking_IgnoresEmergencyFlag(t *testing.T) {
	service := &stubBookingService{
		result: &services.BookingResult{BookingID: "b1", Submitted: true},
	}
	handler := handlers.NewBookingHandler(service)

	// The regular endpoint never produces emergency bookings.
	body := `{"patient_id":"p1","doctor_id":"d1","appointment_date":"2026-09-10","appointment_time":"10:00","is_emergency":true}`
	req := httptest.NewRequest("POST", "/api/v1/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateBooking(w, req)

	assert.False(t, service.lastRequest.IsEmergency)
}

func TestBookingHandler_CreateEmergencyBooking(t *testing.T) {
	service := &stubBookingService{
		result: &services.BookingResult{BookingID: "e1", Submitted: true},
	}
	handler := handlers.NewBookingHandler(service)

	body := `{"patient_id":"p1","doctor_id":"d1","medical_description":"chest pain"}`
	req := httptest.NewRequest("POST", "/api/v1/bookings/emergency", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateEmergencyBooking(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, service.lastRequest.IsEmergency)
	assert.Equal(t, "chest pain", service.lastRequest.MedicalDescription)
}

func TestBookingHandler_CreateBooking_InvalidPayload(t *testing.T) {
	handler := handlers.NewBookingHandler(&stubBookingService{})

	req := httptest.NewRequest("POST", "/api/v1/bookings", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.CreateBooking(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_CreateBooking_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation error", apperrors.NewValidationError("missing patient"), http.StatusBadRequest},
		{"storage error", apperrors.NewStorageError("write failed", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.NewBookingHandler(&stubBookingService{err: tt.err})

			body := `{"patient_id":"p1","doctor_id":"d1"}`
			req := httptest.NewRequest("POST", "/api/v1/bookings", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.CreateBooking(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
