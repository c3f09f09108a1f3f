package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/providers"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/repositories"
	apperrors "github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/errors"
)

// BookingRequest is a booking as entered by the patient
type BookingRequest struct {
	PatientID          string `json:"patient_id"`
	DoctorID           string `json:"doctor_id"`
	AppointmentDate    string `json:"appointment_date"`
	AppointmentTime    string `json:"appointment_time"`
	Notes              string `json:"notes"`
	IsEmergency        bool   `json:"is_emergency"`
	MedicalDescription string `json:"medical_description"`
}

// BookingResult reports how a booking was handled: submitted straight to the
// backend, or captured in the offline queue for later reconciliation.
type BookingResult struct {
	BookingID     string `json:"booking_id"`
	Submitted     bool   `json:"submitted"`
	QueuedOffline bool   `json:"queued_offline"`
}

// BookingService handles booking intake. When the network is up it submits
// directly; a failed or offline submission falls back to the durable queue.
type BookingService struct {
	repo     repositories.OfflineBookingRepository
	provider providers.SubmissionProvider
	network  providers.ConnectivityProvider
	bus      providers.EventBus
	logger   zerolog.Logger

	submissionTimeout time.Duration
}

// NewBookingService creates a new booking service. The event bus may be nil
// when no UI listeners exist (e.g. in tests).
func NewBookingService(
	repo repositories.OfflineBookingRepository,
	provider providers.SubmissionProvider,
	network providers.ConnectivityProvider,
	bus providers.EventBus,
	logger zerolog.Logger,
	submissionTimeout time.Duration,
) *BookingService {
	return &BookingService{
		repo:              repo,
		provider:          provider,
		network:           network,
		bus:               bus,
		logger:            logger,
		submissionTimeout: submissionTimeout,
	}
}

// Book validates the request, attempts a direct submission when online and
// otherwise persists the booking as pending. Only a durable-store failure is
// returned as an error; a remote failure degrades to the offline queue.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	if req.PatientID == "" || req.DoctorID == "" {
		return nil, apperrors.NewValidationError("patient id and doctor id are required")
	}
	if req.IsEmergency && req.MedicalDescription == "" {
		return nil, apperrors.NewValidationError("emergency bookings require a medical description")
	}
	if !req.IsEmergency && (req.AppointmentDate == "" || req.AppointmentTime == "") {
		return nil, apperrors.NewValidationError("appointment date and time are required")
	}

	id := uuid.New().String()

	if s.network.Status().IsOnline {
		err := s.submit(ctx, id, req)
		if err == nil {
			return &BookingResult{BookingID: id, Submitted: true}, nil
		}
		s.logger.Warn().Err(err).Str("booking_id", id).
			Msg("direct submission failed, queueing booking offline")
	}

	booking := &entities.OfflineBooking{
		ID:                 id,
		PatientID:          req.PatientID,
		DoctorID:           req.DoctorID,
		AppointmentDate:    req.AppointmentDate,
		AppointmentTime:    req.AppointmentTime,
		Notes:              req.Notes,
		IsEmergency:        req.IsEmergency,
		MedicalDescription: req.MedicalDescription,
		CreatedOfflineAt:   time.Now().UTC(),
		SyncStatus:         entities.SyncStatusPending,
	}

	if err := s.repo.Add(ctx, booking); err != nil {
		// Losing track of a booking is a correctness violation; surface it.
		return nil, err
	}

	s.publish(ctx, entities.NewSyncEvent(entities.SyncEventBookingQueued, id, nil))

	return &BookingResult{BookingID: id, QueuedOffline: true}, nil
}

func (s *BookingService) submit(ctx context.Context, id string, req BookingRequest) error {
	ctx, cancel := context.WithTimeout(ctx, s.submissionTimeout)
	defer cancel()

	if req.IsEmergency {
		return s.provider.SubmitEmergencyRequest(ctx, providers.EmergencySubmission{
			PatientID:   req.PatientID,
			DoctorID:    req.DoctorID,
			Description: req.MedicalDescription,
			Notes:       req.Notes,
			ClientRef:   id,
		})
	}
	return s.provider.SubmitAppointment(ctx, providers.AppointmentSubmission{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.AppointmentDate,
		Time:      req.AppointmentTime,
		Notes:     req.Notes,
		ClientRef: id,
	})
}

func (s *BookingService) publish(ctx context.Context, event *entities.SyncEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, providers.EventChannelSyncUpdates, event); err != nil {
		s.logger.Warn().Err(err).Str("event_type", string(event.EventType)).
			Msg("failed to publish sync event")
	}
}
