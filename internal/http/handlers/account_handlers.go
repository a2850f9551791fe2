package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kvitka/hotel-bookings/internal/domain"
	"github.com/kvitka/hotel-bookings/internal/http/response"
)

// Register handles user sign-up.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	user, confirmURL, err := h.accounts.Register(r.Context(), &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	resp := map[string]interface{}{
		"message": "Registration successful. Please check your email to confirm your account.",
		"user":    user.ToUserInfo(false),
	}

	// Surface the confirmation URL in development mode
	if h.config.Email.DevMode {
		resp["dev_confirm_url"] = confirmURL
	}

	writeJSON(w, http.StatusCreated, resp)
}

// ConfirmEmail handles the confirmation link from the sign-up email.
func (h *Handlers) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	uid, err := strconv.ParseInt(r.URL.Query().Get("uid"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Missing or invalid uid")
		return
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		response.BadRequest(w, "Missing confirmation token")
		return
	}

	user, err := h.accounts.ConfirmEmail(r.Context(), uid, token)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Email confirmed successfully",
		"user":    user.ToUserInfo(false),
	})
}

// ResendConfirmation handles resending the confirmation email.
func (h *Handlers) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		response.BadRequest(w, "Email is required")
		return
	}

	if err := h.accounts.ResendConfirmation(r.Context(), req.Email); err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Confirmation email sent",
	})
}

// Login handles user authentication.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	resp, err := h.accounts.Login(r.Context(), &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Account returns the current user's account page payload. Clients redirect
// to the continue-registration flow while profile_complete is false.
func (h *Handlers) Account(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Missing authentication")
		return
	}

	view, err := h.accounts.Account(r.Context(), claims.Sub)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// UpdateProfile handles the continue-registration form.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Missing authentication")
		return
	}

	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	profile, err := h.accounts.UpdateProfile(r.Context(), claims.Sub, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// ListUsers is the admin user listing.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	users, err := h.accounts.ListUsers(r.Context(), limit, offset)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}
