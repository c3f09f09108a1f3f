package routes

import (
	"net/http"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/api/handlers"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	slotsHandler   *handlers.SlotsHandler
	bookingHandler *handlers.BookingHandler
	syncHandler    *handlers.SyncHandler
	sseHandler     *handlers.SSEHandler
}

// NewRouter creates a new router. The SSE handler may be nil when no event
// bus is configured.
func NewRouter(
	slotsHandler *handlers.SlotsHandler,
	bookingHandler *handlers.BookingHandler,
	syncHandler *handlers.SyncHandler,
	sseHandler *handlers.SSEHandler,
) *Router {
	r := &Router{
		mux:            http.NewServeMux(),
		slotsHandler:   slotsHandler,
		bookingHandler: bookingHandler,
		syncHandler:    syncHandler,
		sseHandler:     sseHandler,
	}
	r.registerRoutes()
	return r
}

func (r *Router) registerRoutes() {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.mux.HandleFunc("GET /api/v1/doctors/slots", r.slotsHandler.GetSlots)
	r.mux.HandleFunc("GET /api/v1/doctors/recommendation", r.slotsHandler.RecommendDoctor)

	r.mux.HandleFunc("POST /api/v1/bookings", r.bookingHandler.CreateBooking)
	r.mux.HandleFunc("POST /api/v1/bookings/emergency", r.bookingHandler.CreateEmergencyBooking)

	r.mux.HandleFunc("GET /api/v1/sync/status", r.syncHandler.GetStatus)
	r.mux.HandleFunc("POST /api/v1/sync/trigger", r.syncHandler.TriggerSync)
	r.mux.HandleFunc("POST /api/v1/sync/retry", r.syncHandler.RetryFailed)

	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/v1/sync/events", r.sseHandler.StreamSyncEvents)
	}
}

// Handler returns the router wrapped with middleware
func (r *Router) Handler() http.Handler {
	return middleware.LoggingMiddleware(r.mux)
}
