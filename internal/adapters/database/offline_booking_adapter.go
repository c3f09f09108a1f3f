package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/infrastructure/clients/sqlite"
	apperrors "github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/errors"
)

// Timestamps are stored as fixed-width UTC strings so lexicographic
// comparison in SQL matches chronological order.
const storeTimeLayout = "2006-01-02T15:04:05Z"

// OfflineBookingAdapter implements OfflineBookingRepository on the local
// SQLite file. Every mutation is written through before the call returns.
type OfflineBookingAdapter struct {
	client *sqlite.Client
	db     *goqu.Database
}

// NewOfflineBookingAdapter creates a new offline booking adapter and ensures
// the schema exists.
func NewOfflineBookingAdapter(client *sqlite.Client) (*OfflineBookingAdapter, error) {
	a := &OfflineBookingAdapter{
		client: client,
		db:     goqu.New("sqlite3", client.DB()),
	}
	if err := a.ensureSchema(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *OfflineBookingAdapter) ensureSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS offline_bookings (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        id TEXT NOT NULL UNIQUE,
        patient_id TEXT NOT NULL,
        doctor_id TEXT NOT NULL,
        appointment_date TEXT NOT NULL DEFAULT '',
        appointment_time TEXT NOT NULL DEFAULT '',
        notes TEXT NOT NULL DEFAULT '',
        is_emergency INTEGER NOT NULL DEFAULT 0,
        medical_description TEXT NOT NULL DEFAULT '',
        created_offline_at TEXT NOT NULL,
        sync_status TEXT NOT NULL,
        updated_at TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_offline_bookings_status ON offline_bookings(sync_status, seq);
    `
	if _, err := a.client.DB().Exec(schema); err != nil {
		return apperrors.NewStorageError("failed to create offline booking schema", err)
	}
	return nil
}

// Add persists a new booking as written by the booking service
func (a *OfflineBookingAdapter) Add(ctx context.Context, booking *entities.OfflineBooking) error {
	if booking.UpdatedAt.IsZero() {
		booking.UpdatedAt = booking.CreatedOfflineAt
	}

	record := goqu.Record{
		"id":                  booking.ID,
		"patient_id":          booking.PatientID,
		"doctor_id":           booking.DoctorID,
		"appointment_date":    booking.AppointmentDate,
		"appointment_time":    booking.AppointmentTime,
		"notes":               booking.Notes,
		"is_emergency":        booking.IsEmergency,
		"medical_description": booking.MedicalDescription,
		"created_offline_at":  booking.CreatedOfflineAt.UTC().Format(storeTimeLayout),
		"sync_status":         booking.SyncStatus,
		"updated_at":          booking.UpdatedAt.UTC().Format(storeTimeLayout),
	}

	query, args, err := a.db.Insert("offline_bookings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewStorageError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewStorageError("failed to persist offline booking", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (a *OfflineBookingAdapter) GetByID(ctx context.Context, id string) (*entities.OfflineBooking, error) {
	query, args, err := a.selectQuery().Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to build query", err)
	}

	booking, err := a.scanBooking(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("offline booking %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read offline booking", err)
	}
	return booking, nil
}

// ListByStatus retrieves bookings with the given status in creation order
func (a *OfflineBookingAdapter) ListByStatus(ctx context.Context, status entities.SyncStatus) ([]*entities.OfflineBooking, error) {
	query, args, err := a.selectQuery().
		Where(goqu.Ex{"sync_status": status}).
		Order(goqu.I("seq").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list offline bookings", err)
	}
	defer rows.Close()

	var bookings []*entities.OfflineBooking
	for rows.Next() {
		booking, err := a.scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan offline booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate offline bookings", err)
	}

	return bookings, nil
}

// CountsByStatus returns the number of bookings per status
func (a *OfflineBookingAdapter) CountsByStatus(ctx context.Context) (map[entities.SyncStatus]int, error) {
	query, args, err := a.db.Select("sync_status", goqu.COUNT("*").As("n")).
		From("offline_bookings").
		GroupBy("sync_status").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewStorageError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to count offline bookings", err)
	}
	defer rows.Close()

	counts := map[entities.SyncStatus]int{
		entities.SyncStatusPending: 0,
		entities.SyncStatusSynced:  0,
		entities.SyncStatusFailed:  0,
	}
	for rows.Next() {
		var status entities.SyncStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, apperrors.NewStorageError("failed to scan status count", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate status counts", err)
	}

	return counts, nil
}

// MarkStatus applies a monotonic status transition. A synced booking never
// moves backward; that attempt is rejected without touching state.
func (a *OfflineBookingAdapter) MarkStatus(ctx context.Context, id string, status entities.SyncStatus) error {
	if !status.IsValid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown sync status %q", status))
	}

	current, err := a.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.SyncStatus == status {
		return nil
	}
	if !current.CanTransitionTo(status) {
		return apperrors.NewConflictError(fmt.Sprintf(
			"invalid sync transition %s -> %s for booking %s", current.SyncStatus, status, id))
	}

	query, args, err := a.db.Update("offline_bookings").
		Set(goqu.Record{
			"sync_status": status,
			"updated_at":  time.Now().UTC().Format(storeTimeLayout),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewStorageError("failed to build update query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewStorageError("failed to update sync status", err)
	}

	return nil
}

// PurgeExpiredSynced removes synced bookings older than the retention window
func (a *OfflineBookingAdapter) PurgeExpiredSynced(ctx context.Context, now time.Time, retention time.Duration) (int, error) {
	cutoff := now.Add(-retention).UTC().Format(storeTimeLayout)

	query, args, err := a.db.Delete("offline_bookings").
		Where(goqu.Ex{"sync_status": entities.SyncStatusSynced}).
		Where(goqu.C("created_offline_at").Lt(cutoff)).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewStorageError("failed to build purge query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewStorageError("failed to purge synced bookings", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewStorageError("failed to read purge result", err)
	}
	return int(removed), nil
}

func (a *OfflineBookingAdapter) selectQuery() *goqu.SelectDataset {
	return a.db.Select(
		"id", "patient_id", "doctor_id", "appointment_date", "appointment_time",
		"notes", "is_emergency", "medical_description",
		"created_offline_at", "sync_status", "updated_at",
	).From("offline_bookings")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (a *OfflineBookingAdapter) scanBooking(row rowScanner) (*entities.OfflineBooking, error) {
	booking := &entities.OfflineBooking{}
	var createdAt, updatedAt string

	err := row.Scan(
		&booking.ID,
		&booking.PatientID,
		&booking.DoctorID,
		&booking.AppointmentDate,
		&booking.AppointmentTime,
		&booking.Notes,
		&booking.IsEmergency,
		&booking.MedicalDescription,
		&createdAt,
		&booking.SyncStatus,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if booking.CreatedOfflineAt, err = time.Parse(storeTimeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("malformed created_offline_at %q: %w", createdAt, err)
	}
	if booking.UpdatedAt, err = time.Parse(storeTimeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("malformed updated_at %q: %w", updatedAt, err)
	}

	return booking, nil
}
