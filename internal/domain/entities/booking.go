package entities

import (
	"time"
)

// SyncStatus represents the synchronization state of an offline booking
type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusFailed  SyncStatus = "failed"
)

// IsValid reports whether s is a known sync status
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusPending, SyncStatusSynced, SyncStatusFailed:
		return true
	}
	return false
}

// OfflineBooking represents a booking captured while disconnected (or after a
// failed direct submission) awaiting reconciliation with the remote backend.
type OfflineBooking struct {
	ID                 string     `json:"id" db:"id"`
	PatientID          string     `json:"patient_id" db:"patient_id"`
	DoctorID           string     `json:"doctor_id" db:"doctor_id"`
	AppointmentDate    string     `json:"appointment_date" db:"appointment_date"`
	AppointmentTime    string     `json:"appointment_time" db:"appointment_time"`
	Notes              string     `json:"notes" db:"notes"`
	IsEmergency        bool       `json:"is_emergency" db:"is_emergency"`
	MedicalDescription string     `json:"medical_description" db:"medical_description"`
	CreatedOfflineAt   time.Time  `json:"created_offline_at" db:"created_offline_at"`
	SyncStatus         SyncStatus `json:"sync_status" db:"sync_status"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// CanTransitionTo reports whether the booking may move to the given status.
// A synced booking is terminal; pending may resolve either way; failed can
// only be re-queued as pending.
func (b *OfflineBooking) CanTransitionTo(next SyncStatus) bool {
	if b.SyncStatus == next {
		return true
	}
	switch b.SyncStatus {
	case SyncStatusPending:
		return next == SyncStatusSynced || next == SyncStatusFailed
	case SyncStatusFailed:
		return next == SyncStatusPending
	case SyncStatusSynced:
		return false
	}
	return false
}
