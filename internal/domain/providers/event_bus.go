package providers

import (
	"context"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to sync events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.SyncEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.SyncEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelSyncUpdates is the channel carrying booking sync lifecycle events
const EventChannelSyncUpdates = "sync:updates"
