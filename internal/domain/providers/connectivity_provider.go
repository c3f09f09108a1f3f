package providers

import (
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
)

// ConnectivityProvider exposes the current network status and transition
// events. It is purely observational; the sync coordinator is the only
// consumer that acts on its events.
type ConnectivityProvider interface {
	// Status returns the current connectivity classification
	Status() entities.NetworkStatus

	// Subscribe registers a listener for connectivity transitions. The
	// returned function removes the subscription; callers own the
	// subscription lifecycle and must call it when done.
	Subscribe() (<-chan entities.NetworkEvent, func())
}
