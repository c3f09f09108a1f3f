package entities

import "time"

// NetworkStatus is the current connectivity classification
type NetworkStatus struct {
	IsOnline         bool `json:"is_online"`
	IsSlowConnection bool `json:"is_slow_connection"`
}

// NetworkEventType represents a connectivity transition
type NetworkEventType string

const (
	NetworkEventWentOnline     NetworkEventType = "went_online"
	NetworkEventWentOffline    NetworkEventType = "went_offline"
	NetworkEventQualityChanged NetworkEventType = "quality_changed"
)

// NetworkEvent is emitted by the connectivity monitor on each transition
type NetworkEvent struct {
	Type      NetworkEventType `json:"type"`
	Status    NetworkStatus    `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
}
