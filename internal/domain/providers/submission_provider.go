package providers

import (
	"context"
)

// AppointmentSubmission is the payload for a regular appointment insert.
// ClientRef carries the booking's locally assigned UUID so an
// idempotency-aware backend can de-duplicate crash-replayed submissions.
type AppointmentSubmission struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Notes     string `json:"notes,omitempty"`
	ClientRef string `json:"client_ref,omitempty"`
}

// EmergencySubmission is the payload for an emergency request insert
type EmergencySubmission struct {
	PatientID   string `json:"patient_id"`
	DoctorID    string `json:"doctor_id"`
	Description string `json:"description"`
	Notes       string `json:"notes,omitempty"`
	ClientRef   string `json:"client_ref,omitempty"`
}

// SubmissionProvider defines the interface for the remote booking backend.
// The engine treats it as an opaque capability; the sync coordinator is the
// only component that retries through it.
type SubmissionProvider interface {
	// SubmitAppointment inserts a regular appointment on the backend
	SubmitAppointment(ctx context.Context, submission AppointmentSubmission) error

	// SubmitEmergencyRequest inserts an emergency request on the backend
	SubmitEmergencyRequest(ctx context.Context, submission EmergencySubmission) error
}
