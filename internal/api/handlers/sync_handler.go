package handlers

import (
	"net/http"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/application/services"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/entities"
)

// SyncHandler exposes the sync coordinator's imperative entry points and the
// status view the UI rebuilds its badges from.
type SyncHandler struct {
	sync *services.SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(sync *services.SyncService) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// GetStatus handles GET /api/v1/sync/status
func (h *SyncHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	counts, state, network, err := h.sync.Status(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"state":   state,
		"network": network,
		"counts": map[string]int{
			string(entities.SyncStatusPending): counts[entities.SyncStatusPending],
			string(entities.SyncStatusSynced):  counts[entities.SyncStatusSynced],
			string(entities.SyncStatusFailed):  counts[entities.SyncStatusFailed],
		},
	})
}

// TriggerSync handles POST /api/v1/sync/trigger
func (h *SyncHandler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	report, err := h.sync.TriggerSync(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// RetryFailed handles POST /api/v1/sync/retry
func (h *SyncHandler) RetryFailed(w http.ResponseWriter, r *http.Request) {
	requeued, report, err := h.sync.RetryFailed(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"requeued": requeued,
		"report":   report,
	})
}
