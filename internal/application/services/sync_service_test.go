package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/application/services"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/providers"
	apperrors "github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/errors"
)

// Fakes

// fakeBookingRepo is an in-memory OfflineBookingRepository preserving
// insertion order, so FIFO assertions are meaningful.
type fakeBookingRepo struct {
	mu            sync.Mutex
	bookings      []*entities.OfflineBooking
	failAdd       error
	failMarkAfter int
	markErr       error
	markCalls     int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{}
}

func (r *fakeBookingRepo) Add(ctx context.Context, booking *entities.OfflineBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAdd != nil {
		return r.failAdd
	}
	clone := *booking
	r.bookings = append(r.bookings, &clone)
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*entities.OfflineBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			clone := *b
			return &clone, nil
		}
	}
	return nil, apperrors.NewNotFoundError("booking not found")
}

func (r *fakeBookingRepo) ListByStatus(ctx context.Context, status entities.SyncStatus) ([]*entities.OfflineBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.OfflineBooking
	for _, b := range r.bookings {
		if b.SyncStatus == status {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountsByStatus(ctx context.Context) (map[entities.SyncStatus]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[entities.SyncStatus]int{}
	for _, b := range r.bookings {
		counts[b.SyncStatus]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) MarkStatus(ctx context.Context, id string, status entities.SyncStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markCalls++
	if r.markErr != nil && r.markCalls > r.failMarkAfter {
		return r.markErr
	}
	for _, b := range r.bookings {
		if b.ID != id {
			continue
		}
		if b.SyncStatus == status {
			return nil
		}
		if !b.CanTransitionTo(status) {
			return apperrors.NewConflictError("invalid transition")
		}
		b.SyncStatus = status
		return nil
	}
	return apperrors.NewNotFoundError("booking not found")
}

func (r *fakeBookingRepo) PurgeExpiredSynced(ctx context.Context, now time.Time, retention time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := now.Add(-retention)
	kept := r.bookings[:0]
	removed := 0
	for _, b := range r.bookings {
		if b.SyncStatus == entities.SyncStatusSynced && b.CreatedOfflineAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	r.bookings = kept
	return removed, nil
}

func (r *fakeBookingRepo) seed(id string, status entities.SyncStatus, emergency bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = append(r.bookings, &entities.OfflineBooking{
		ID:               id,
		PatientID:        "patient-1",
		DoctorID:         "doctor-1",
		AppointmentDate:  "2026-09-10",
		AppointmentTime:  "10:00",
		IsEmergency:      emergency,
		CreatedOfflineAt: time.Now().UTC(),
		SyncStatus:       status,
	})
}

// stubNetwork implements ConnectivityProvider with a settable status
type stubNetwork struct {
	mu     sync.Mutex
	status entities.NetworkStatus
	events chan entities.NetworkEvent
}

func newStubNetwork(online bool) *stubNetwork {
	return &stubNetwork{
		status: entities.NetworkStatus{IsOnline: online},
		events: make(chan entities.NetworkEvent, 8),
	}
}

func (n *stubNetwork) Status() entities.NetworkStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.status
}

func (n *stubNetwork) Subscribe() (<-chan entities.NetworkEvent, func()) {
	return n.events, func() { close(n.events) }
}

func (n *stubNetwork) goOnline() {
	n.mu.Lock()
	n.status = entities.NetworkStatus{IsOnline: true}
	n.mu.Unlock()
	n.events <- entities.NetworkEvent{Type: entities.NetworkEventWentOnline, Status: n.Status()}
}

// stubProvider records submissions in call order and fails scripted refs
type stubProvider struct {
	mu       sync.Mutex
	calls    []string
	failRefs map[string]bool
	failAll  bool
}

func newStubProvider() *stubProvider {
	return &stubProvider{failRefs: map[string]bool{}}
}

func (p *stubProvider) SubmitAppointment(ctx context.Context, sub providers.AppointmentSubmission) error {
	return p.record(sub.ClientRef)
}

func (p *stubProvider) SubmitEmergencyRequest(ctx context.Context, sub providers.EmergencySubmission) error {
	return p.record("emergency:" + sub.ClientRef)
}

func (p *stubProvider) record(ref string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, ref)
	if p.failAll || p.failRefs[ref] {
		return apperrors.NewSubmissionError("rejected", fmt.Errorf("scripted failure"))
	}
	return nil
}

func (p *stubProvider) callOrder() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.calls))
	copy(out, p.calls)
	return out
}

func newSyncService(repo *fakeBookingRepo, provider *stubProvider, network *stubNetwork) *services.SyncService {
	return services.NewSyncService(
		repo, provider, network, nil, zerolog.Nop(),
		time.Second, 24*time.Hour,
	)
}

// Tests

func TestSyncService_TriggerSync(t *testing.T) {
	t.Run("drains pending in creation order isolating failures", func(t *testing.T) {
		repo := newFakeBookingRepo()
		repo.seed("b1", entities.SyncStatusPending, false)
		repo.seed("b2", entities.SyncStatusPending, false)
		repo.seed("b3", entities.SyncStatusPending, false)

		provider := newStubProvider()
		provider.failRefs["b2"] = true

		svc := newSyncService(repo, provider, newStubNetwork(true))

		report, err := svc.TriggerSync(context.Background())
		require.NoError(t, err)

		assert.Equal(t, entities.SyncReport{Attempted: 3, Synced: 2, Failed: 1}, report)
		assert.Equal(t, []string{"b1", "b2", "b3"}, provider.callOrder())

		b1, _ := repo.GetByID(context.Background(), "b1")
		b2, _ := repo.GetByID(context.Background(), "b2")
		b3, _ := repo.GetByID(context.Background(), "b3")
		assert.Equal(t, entities.SyncStatusSynced, b1.SyncStatus)
		assert.Equal(t, entities.SyncStatusFailed, b2.SyncStatus)
		assert.Equal(t, entities.SyncStatusSynced, b3.SyncStatus)
	})

	t.Run("routes emergency bookings to the emergency capability", func(t *testing.T) {
		repo := newFakeBookingRepo()
		repo.seed("e1", entities.SyncStatusPending, true)

		provider := newStubProvider()
		svc := newSyncService(repo, provider, newStubNetwork(true))

		_, err := svc.TriggerSync(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"emergency:e1"}, provider.callOrder())
	})

	t.Run("empty queue reports nothing attempted", func(t *testing.T) {
		svc := newSyncService(newFakeBookingRepo(), newStubProvider(), newStubNetwork(true))

		report, err := svc.TriggerSync(context.Background())
		require.NoError(t, err)
		assert.Zero(t, report.Attempted)
		assert.Equal(t, services.SyncStateIdle, svc.State())
	})

	t.Run("store failure aborts the pass and propagates", func(t *testing.T) {
		repo := newFakeBookingRepo()
		repo.seed("b1", entities.SyncStatusPending, false)
		repo.seed("b2", entities.SyncStatusPending, false)
		repo.markErr = apperrors.NewStorageError("disk gone", fmt.Errorf("io failure"))

		provider := newStubProvider()
		svc := newSyncService(repo, provider, newStubNetwork(true))

		_, err := svc.TriggerSync(context.Background())
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
		// The second booking was never submitted.
		assert.Equal(t, []string{"b1"}, provider.callOrder())
		assert.Equal(t, services.SyncStateIdle, svc.State())
	})

	t.Run("returns to idle after a pass", func(t *testing.T) {
		repo := newFakeBookingRepo()
		repo.seed("b1", entities.SyncStatusPending, false)
		svc := newSyncService(repo, newStubProvider(), newStubNetwork(true))

		_, err := svc.TriggerSync(context.Background())
		require.NoError(t, err)
		assert.Equal(t, services.SyncStateIdle, svc.State())
	})
}

func TestSyncService_RetryFailed(t *testing.T) {
	t.Run("offline retry requeues without submitting", func(t *testing.T) {
		repo := newFakeBookingRepo()
		repo.seed("f1", entities.SyncStatusFailed, false)
		repo.seed("f2", entities.SyncStatusFailed, false)

		provider := newStubProvider()
		network := newStubNetwork(false)
		svc := newSyncService(repo, provider, network)

		requeued, report, err := svc.RetryFailed(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, requeued)
		assert.Zero(t, report.Attempted)
		assert.Empty(t, provider.callOrder())

		pending, _ := repo.ListByStatus(context.Background(), entities.SyncStatusPending)
		assert.Len(t, pending, 2)
	})

	t.Run("online retry submits immediately", func(t *testing.T) {
		repo := newFakeBookingRepo()
		repo.seed("f1", entities.SyncStatusFailed, false)
		repo.seed("f2", entities.SyncStatusFailed, false)

		provider := newStubProvider()
		svc := newSyncService(repo, provider, newStubNetwork(true))

		requeued, report, err := svc.RetryFailed(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, requeued)
		assert.Equal(t, entities.SyncReport{Attempted: 2, Synced: 2}, report)

		synced, _ := repo.ListByStatus(context.Background(), entities.SyncStatusSynced)
		assert.Len(t, synced, 2)
	})

	t.Run("requeued bookings resolve on reconnect", func(t *testing.T) {
		repo := newFakeBookingRepo()
		repo.seed("f1", entities.SyncStatusFailed, false)
		repo.seed("f2", entities.SyncStatusFailed, false)

		provider := newStubProvider()
		network := newStubNetwork(false)
		svc := newSyncService(repo, provider, network)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		svc.Start(ctx)
		defer svc.Stop()

		requeued, _, err := svc.RetryFailed(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, requeued)

		network.goOnline()

		require.Eventually(t, func() bool {
			synced, _ := repo.ListByStatus(ctx, entities.SyncStatusSynced)
			return len(synced) == 2
		}, 2*time.Second, 10*time.Millisecond)
	})
}

func TestSyncService_PurgeExpired(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.seed("old", entities.SyncStatusSynced, false)
	repo.seed("fresh", entities.SyncStatusSynced, false)
	repo.seed("stale-pending", entities.SyncStatusPending, false)

	repo.mu.Lock()
	repo.bookings[0].CreatedOfflineAt = time.Now().UTC().Add(-25 * time.Hour)
	repo.bookings[1].CreatedOfflineAt = time.Now().UTC().Add(-23 * time.Hour)
	repo.bookings[2].CreatedOfflineAt = time.Now().UTC().Add(-48 * time.Hour)
	repo.mu.Unlock()

	svc := newSyncService(repo, newStubProvider(), newStubNetwork(true))

	removed, err := svc.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = repo.GetByID(context.Background(), "old")
	assert.Error(t, err)

	_, err = repo.GetByID(context.Background(), "fresh")
	assert.NoError(t, err)

	// Pending bookings survive regardless of age.
	_, err = repo.GetByID(context.Background(), "stale-pending")
	assert.NoError(t, err)
}
