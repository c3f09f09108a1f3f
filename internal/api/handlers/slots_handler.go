package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/application/services"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/config"
)

// SlotsHandler serves the wait-time-annotated slot plan and doctor
// recommendations for the booking view.
type SlotsHandler struct {
	planner   *services.SlotPlanner
	estimator *services.WaitEstimator
	ranker    *services.DoctorRanker
	defaults  config.QueueingConfig
}

// NewSlotsHandler creates a new slots handler
func NewSlotsHandler(
	planner *services.SlotPlanner,
	estimator *services.WaitEstimator,
	ranker *services.DoctorRanker,
	defaults config.QueueingConfig,
) *SlotsHandler {
	return &SlotsHandler{
		planner:   planner,
		estimator: estimator,
		ranker:    ranker,
		defaults:  defaults,
	}
}

// GetSlots handles GET /api/v1/doctors/slots
func (h *SlotsHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := services.SlotPlanRequest{
		StartTime:        queryOr(query.Get("start"), "09:00"),
		EndTime:          queryOr(query.Get("end"), "17:00"),
		SlotDuration:     30 * time.Minute,
		EmergencyReserve: 2,
		ArrivalRate:      h.defaults.ArrivalRate,
		ServiceRate:      h.defaults.ServiceRate,
		Servers:          h.defaults.Servers,
		BookedTimes:      map[string]struct{}{},
	}

	if v := query.Get("duration_minutes"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			respondWithError(w, http.StatusBadRequest, "invalid duration_minutes")
			return
		}
		req.SlotDuration = time.Duration(minutes) * time.Minute
	}
	if v := query.Get("emergency_reserve"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondWithError(w, http.StatusBadRequest, "invalid emergency_reserve")
			return
		}
		req.EmergencyReserve = n
	}
	if v := query.Get("arrival_rate"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid arrival_rate")
			return
		}
		req.ArrivalRate = rate
	}
	if v := query.Get("service_rate"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid service_rate")
			return
		}
		req.ServiceRate = rate
	}
	if v := query.Get("servers"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid servers")
			return
		}
		req.Servers = n
	}
	for _, t := range strings.Split(query.Get("booked"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			req.BookedTimes[t] = struct{}{}
		}
	}

	slots, err := h.planner.PlanSlots(req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	metrics, err := h.estimator.ComputeMetrics(req.ArrivalRate, req.ServiceRate, req.Servers)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"slots":   slots,
		"metrics": metrics,
	})
}

// RecommendDoctor handles GET /api/v1/doctors/recommendation
func (h *SlotsHandler) RecommendDoctor(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")

	doctor, ok, err := h.ranker.Recommend(r.Context(), department)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if !ok {
		// Full capacity is an expected outcome, not an error.
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"available": false,
		})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"available": true,
		"doctor":    doctor,
	})
}

func queryOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
