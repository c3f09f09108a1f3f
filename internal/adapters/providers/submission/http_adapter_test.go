package submission

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/providers"
	apperrors "github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/errors"
)

func TestHTTPAdapter_SubmitAppointment(t *testing.T) {
	var gotPath, gotAuth, gotAPIKey string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	adapter := NewHTTPAdapter(server.URL, "secret-key", time.Second)

	err := adapter.SubmitAppointment(context.Background(), providers.AppointmentSubmission{
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
		Date:      "2026-09-10",
		Time:      "10:00",
		ClientRef: "booking-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "/rest/v1/appointments", gotPath)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "secret-key", gotAPIKey)
	assert.Equal(t, "patient-1", gotBody["patient_id"])
	assert.Equal(t, "booking-1", gotBody["client_ref"])
}

func TestHTTPAdapter_SubmitEmergencyRequest(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	adapter := NewHTTPAdapter(server.URL, "", time.Second)

	err := adapter.SubmitEmergencyRequest(context.Background(), providers.EmergencySubmission{
		PatientID:   "patient-1",
		DoctorID:    "doctor-1",
		Description: "chest pain",
		ClientRef:   "booking-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "/rest/v1/emergency_requests", gotPath)
}

func TestHTTPAdapter_BackendRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "row level security violation", http.StatusForbidden)
	}))
	defer server.Close()

	adapter := NewHTTPAdapter(server.URL, "key", time.Second)

	err := adapter.SubmitAppointment(context.Background(), providers.AppointmentSubmission{
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSubmission))
	assert.Contains(t, err.Error(), "status 403")
}

func TestHTTPAdapter_UnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	adapter := NewHTTPAdapter(server.URL, "key", time.Second)

	err := adapter.SubmitAppointment(context.Background(), providers.AppointmentSubmission{
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeSubmission))
}
