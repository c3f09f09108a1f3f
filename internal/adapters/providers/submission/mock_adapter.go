package submission

import (
	"context"
	"sync"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/providers"
	apperrors "github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/errors"
)

// MockAdapter accepts every submission and records it, for local development
// and tests. It can be scripted to fail specific client refs.
type MockAdapter struct {
	mu           sync.Mutex
	appointments []providers.AppointmentSubmission
	emergencies  []providers.EmergencySubmission
	failRefs     map[string]struct{}
}

// NewMockAdapter creates a mock submission provider
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		failRefs: make(map[string]struct{}),
	}
}

// FailClientRef makes submissions carrying the given client ref fail
func (m *MockAdapter) FailClientRef(ref string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRefs[ref] = struct{}{}
}

// SubmitAppointment records a regular appointment submission
func (m *MockAdapter) SubmitAppointment(ctx context.Context, sub providers.AppointmentSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, fail := m.failRefs[sub.ClientRef]; fail {
		return apperrors.NewSubmissionError("mock backend rejected appointment", nil)
	}
	m.appointments = append(m.appointments, sub)
	return nil
}

// SubmitEmergencyRequest records an emergency submission
func (m *MockAdapter) SubmitEmergencyRequest(ctx context.Context, sub providers.EmergencySubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, fail := m.failRefs[sub.ClientRef]; fail {
		return apperrors.NewSubmissionError("mock backend rejected emergency request", nil)
	}
	m.emergencies = append(m.emergencies, sub)
	return nil
}

// Appointments returns all recorded appointment submissions
func (m *MockAdapter) Appointments() []providers.AppointmentSubmission {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]providers.AppointmentSubmission, len(m.appointments))
	copy(out, m.appointments)
	return out
}

// Emergencies returns all recorded emergency submissions
func (m *MockAdapter) Emergencies() []providers.EmergencySubmission {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]providers.EmergencySubmission, len(m.emergencies))
	copy(out, m.emergencies)
	return out
}
