package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/application/services"
)

// BookingCreator defines the interface for booking intake
type BookingCreator interface {
	Book(ctx context.Context, req services.BookingRequest) (*services.BookingResult, error)
}

// BookingHandler handles booking requests
type BookingHandler struct {
	service BookingCreator
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingCreator) *BookingHandler {
	return &BookingHandler{service: service}
}

// CreateBooking handles POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	req.IsEmergency = false
	h.book(w, r, req)
}

// CreateEmergencyBooking handles POST /api/v1/bookings/emergency
func (h *BookingHandler) CreateEmergencyBooking(w http.ResponseWriter, r *http.Request) {
	var req services.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	req.IsEmergency = true
	h.book(w, r, req)
}

func (h *BookingHandler) book(w http.ResponseWriter, r *http.Request, req services.BookingRequest) {
	result, err := h.service.Book(r.Context(), req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	// 202 signals the booking was captured offline and will reconcile later.
	status := http.StatusCreated
	if result.QueuedOffline {
		status = http.StatusAccepted
	}
	respondWithJSON(w, status, result)
}
