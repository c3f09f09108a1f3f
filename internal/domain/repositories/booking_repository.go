package repositories

import (
	"context"
	"time"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
)

// OfflineBookingRepository defines the interface for the durable offline
// booking queue. Every mutating operation writes through to durable storage
// before returning.
type OfflineBookingRepository interface {
	// Add persists a new booking. The caller is expected to have assigned
	// the ID, creation timestamp and initial status.
	Add(ctx context.Context, booking *entities.OfflineBooking) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.OfflineBooking, error)

	// ListByStatus retrieves bookings with the given status in creation order
	ListByStatus(ctx context.Context, status entities.SyncStatus) ([]*entities.OfflineBooking, error)

	// CountsByStatus returns the number of bookings per status
	CountsByStatus(ctx context.Context) (map[entities.SyncStatus]int, error)

	// MarkStatus applies a status transition. Moving a synced booking
	// backward is rejected with a conflict error and leaves state untouched.
	MarkStatus(ctx context.Context, id string, status entities.SyncStatus) error

	// PurgeExpiredSynced removes synced bookings created before now minus
	// retention. Pending and failed bookings are never removed.
	PurgeExpiredSynced(ctx context.Context, now time.Time, retention time.Duration) (int, error)
}
