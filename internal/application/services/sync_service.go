package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/providers"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/repositories"
)

// Coordinator states
const (
	SyncStateIdle    = "idle"
	SyncStateSyncing = "syncing"
)

// SyncService reconciles the offline booking queue against the remote
// backend. Bookings drain one at a time in creation order; a booking's
// status transition is persisted before the next submission begins, so a
// crash mid-pass leaves a well-defined prefix synced and the rest pending.
type SyncService struct {
	repo     repositories.OfflineBookingRepository
	provider providers.SubmissionProvider
	network  providers.ConnectivityProvider
	bus      providers.EventBus
	logger   zerolog.Logger

	submissionTimeout time.Duration
	syncedRetention   time.Duration

	mu      sync.Mutex
	syncing bool

	unsubscribe func()
	done        chan struct{}
	stopOnce    sync.Once
}

// NewSyncService creates a new sync coordinator
func NewSyncService(
	repo repositories.OfflineBookingRepository,
	provider providers.SubmissionProvider,
	network providers.ConnectivityProvider,
	bus providers.EventBus,
	logger zerolog.Logger,
	submissionTimeout time.Duration,
	syncedRetention time.Duration,
) *SyncService {
	return &SyncService{
		repo:              repo,
		provider:          provider,
		network:           network,
		bus:               bus,
		logger:            logger,
		submissionTimeout: submissionTimeout,
		syncedRetention:   syncedRetention,
	}
}

// Start subscribes to connectivity transitions and triggers a sync pass each
// time the network comes back. The subscription is owned by the coordinator
// and released by Stop.
func (s *SyncService) Start(ctx context.Context) {
	events, unsubscribe := s.network.Subscribe()
	s.unsubscribe = unsubscribe
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				if event.Type != entities.NetworkEventWentOnline {
					continue
				}
				s.logger.Info().Msg("connectivity restored, draining offline bookings")
				if _, err := s.TriggerSync(ctx); err != nil {
					s.logger.Error().Err(err).Msg("reconnect sync pass failed")
				}
			}
		}
	}()
}

// Stop releases the connectivity subscription and waits for the event loop
func (s *SyncService) Stop() {
	s.stopOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		if s.done != nil {
			<-s.done
		}
	})
}

// State returns the coordinator state, idle or syncing
func (s *SyncService) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.syncing {
		return SyncStateSyncing
	}
	return SyncStateIdle
}

// TriggerSync drains all pending bookings through the submission provider,
// sequentially and in creation order. A no-op returning an empty report when
// a pass is already in flight. Submission failures are recorded per booking
// and never abort the batch; a store failure aborts the pass and propagates.
func (s *SyncService) TriggerSync(ctx context.Context) (entities.SyncReport, error) {
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		s.logger.Debug().Msg("sync pass already in flight, ignoring trigger")
		return entities.SyncReport{}, nil
	}
	s.syncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
	}()

	pending, err := s.repo.ListByStatus(ctx, entities.SyncStatusPending)
	if err != nil {
		return entities.SyncReport{}, err
	}

	report := entities.SyncReport{}
	if len(pending) == 0 {
		return report, nil
	}

	s.publish(ctx, entities.NewSyncEvent(entities.SyncEventPassStarted, "", nil))

	for _, booking := range pending {
		report.Attempted++

		if submitErr := s.submit(ctx, booking); submitErr != nil {
			s.logger.Warn().Err(submitErr).Str("booking_id", booking.ID).
				Msg("booking submission failed")
			if err := s.repo.MarkStatus(ctx, booking.ID, entities.SyncStatusFailed); err != nil {
				return report, err
			}
			report.Failed++
			s.publish(ctx, entities.NewSyncEvent(entities.SyncEventBookingFailed, booking.ID, nil))
			continue
		}

		if err := s.repo.MarkStatus(ctx, booking.ID, entities.SyncStatusSynced); err != nil {
			return report, err
		}
		report.Synced++
		s.publish(ctx, entities.NewSyncEvent(entities.SyncEventBookingSynced, booking.ID, nil))
	}

	s.logger.Info().
		Int("attempted", report.Attempted).
		Int("synced", report.Synced).
		Int("failed", report.Failed).
		Msg("sync pass completed")
	s.publish(ctx, entities.NewSyncEvent(entities.SyncEventPassCompleted, "", &report))

	return report, nil
}

// RetryFailed moves every failed booking back to pending, then triggers a
// sync pass when the network is currently online. Offline, the bookings stay
// queued until the next wentOnline transition.
func (s *SyncService) RetryFailed(ctx context.Context) (int, entities.SyncReport, error) {
	failed, err := s.repo.ListByStatus(ctx, entities.SyncStatusFailed)
	if err != nil {
		return 0, entities.SyncReport{}, err
	}

	requeued := 0
	for _, booking := range failed {
		if err := s.repo.MarkStatus(ctx, booking.ID, entities.SyncStatusPending); err != nil {
			return requeued, entities.SyncReport{}, err
		}
		requeued++
	}

	if requeued == 0 || !s.network.Status().IsOnline {
		return requeued, entities.SyncReport{}, nil
	}

	report, err := s.TriggerSync(ctx)
	return requeued, report, err
}

// PurgeExpired garbage-collects synced bookings older than the retention
// window. Pending and failed bookings are never purged.
func (s *SyncService) PurgeExpired(ctx context.Context) (int, error) {
	return s.repo.PurgeExpiredSynced(ctx, time.Now().UTC(), s.syncedRetention)
}

// Status reports the store counts alongside coordinator and network state,
// everything the UI needs to rebuild a consistent view after a restart.
func (s *SyncService) Status(ctx context.Context) (map[entities.SyncStatus]int, string, entities.NetworkStatus, error) {
	counts, err := s.repo.CountsByStatus(ctx)
	if err != nil {
		return nil, "", entities.NetworkStatus{}, err
	}
	return counts, s.State(), s.network.Status(), nil
}

func (s *SyncService) submit(ctx context.Context, booking *entities.OfflineBooking) error {
	ctx, cancel := context.WithTimeout(ctx, s.submissionTimeout)
	defer cancel()

	if booking.IsEmergency {
		return s.provider.SubmitEmergencyRequest(ctx, providers.EmergencySubmission{
			PatientID:   booking.PatientID,
			DoctorID:    booking.DoctorID,
			Description: booking.MedicalDescription,
			Notes:       booking.Notes,
			ClientRef:   booking.ID,
		})
	}
	return s.provider.SubmitAppointment(ctx, providers.AppointmentSubmission{
		PatientID: booking.PatientID,
		DoctorID:  booking.DoctorID,
		Date:      booking.AppointmentDate,
		Time:      booking.AppointmentTime,
		Notes:     booking.Notes,
		ClientRef: booking.ID,
	})
}

func (s *SyncService) publish(ctx context.Context, event *entities.SyncEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, providers.EventChannelSyncUpdates, event); err != nil {
		s.logger.Warn().Err(err).Str("event_type", string(event.EventType)).
			Msg("failed to publish sync event")
	}
}
