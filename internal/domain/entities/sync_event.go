package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// SyncEventType represents the type of sync lifecycle event
type SyncEventType string

const (
	SyncEventBookingQueued SyncEventType = "booking_queued"
	SyncEventBookingSynced SyncEventType = "booking_synced"
	SyncEventBookingFailed SyncEventType = "booking_failed"
	SyncEventPassStarted   SyncEventType = "sync_started"
	SyncEventPassCompleted SyncEventType = "sync_completed"
)

// SyncEvent is a real-time update about the offline booking queue, published
// for UI listeners (pending/failed badges, sync progress).
type SyncEvent struct {
	ID        string        `json:"id"`
	EventType SyncEventType `json:"event_type"`
	BookingID string        `json:"booking_id,omitempty"`
	Report    *SyncReport   `json:"report,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// SyncReport summarizes one sync pass
type SyncReport struct {
	Attempted int `json:"attempted"`
	Synced    int `json:"synced"`
	Failed    int `json:"failed"`
}

// NewSyncEvent creates a new sync event
func NewSyncEvent(eventType SyncEventType, bookingID string, report *SyncReport) *SyncEvent {
	return &SyncEvent{
		ID:        generateEventID(),
		EventType: eventType,
		BookingID: bookingID,
		Report:    report,
		Timestamp: time.Now(),
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random hex string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		return "00000000"[:length]
	}
	return hex.EncodeToString(bytes)[:length]
}
