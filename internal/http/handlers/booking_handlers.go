package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kvitka/hotel-bookings/internal/domain"
	"github.com/kvitka/hotel-bookings/internal/http/response"
)

// CreateBooking handles booking creation for the authenticated user.
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Missing authentication")
		return
	}

	var req domain.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	booking, err := h.bookings.Create(r.Context(), claims.Sub, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking.ToView())
}

// ListMyBookings returns the user's bookings, newest first.
func (h *Handlers) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Missing authentication")
		return
	}

	limit, offset := parsePagination(r)
	bookings, err := h.bookings.ListByUser(r.Context(), claims.Sub, limit, offset)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	views := make([]*domain.BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, bookings[i].ToView())
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": views,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetBooking returns a single booking. Owners and staff may read it.
func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Missing authentication")
		return
	}

	token, err := uuid.Parse(chi.URLParam(r, "token"))
	if err != nil {
		response.BadRequest(w, "Invalid booking token")
		return
	}

	booking, err := h.bookings.Get(r.Context(), token)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	if booking.UserID != claims.Sub && claims.Role == domain.RoleUser {
		response.NotFound(w, "not found")
		return
	}

	writeJSON(w, http.StatusOK, booking.ToView())
}

// ListAllBookings is the staff overview of every booking.
func (h *Handlers) ListAllBookings(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	bookings, err := h.bookings.ListAll(r.Context(), limit, offset)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	views := make([]*domain.BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, bookings[i].ToView())
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": views,
		"limit":    limit,
		"offset":   offset,
	})
}

// AssignRooms is the staff action attaching rooms to a booking.
func (h *Handlers) AssignRooms(w http.ResponseWriter, r *http.Request) {
	token, err := uuid.Parse(chi.URLParam(r, "token"))
	if err != nil {
		response.BadRequest(w, "Invalid booking token")
		return
	}

	var req struct {
		RoomIDs []int64 `json:"room_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	booking, err := h.bookings.AssignRooms(r.Context(), token, req.RoomIDs)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking.ToView())
}

// CreatePaymentIntent opens a payment for the booking's total.
func (h *Handlers) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Missing authentication")
		return
	}

	token, err := uuid.Parse(chi.URLParam(r, "token"))
	if err != nil {
		response.BadRequest(w, "Invalid booking token")
		return
	}

	intent, err := h.payments.CreateIntent(r.Context(), token, claims.Sub)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, intent)
}

// ConfirmPayment marks the booking paid once its intent succeeded.
func (h *Handlers) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	token, err := uuid.Parse(chi.URLParam(r, "token"))
	if err != nil {
		response.BadRequest(w, "Invalid booking token")
		return
	}

	var req struct {
		IntentID string `json:"intent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IntentID == "" {
		response.BadRequest(w, "intent_id is required")
		return
	}

	booking, err := h.payments.ConfirmPaid(r.Context(), token, req.IntentID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking.ToView())
}
