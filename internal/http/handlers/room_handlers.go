package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kvitka/hotel-bookings/internal/domain"
	"github.com/kvitka/hotel-bookings/internal/http/response"
)

// ListRoomTypes is the public room catalog.
func (h *Handlers) ListRoomTypes(w http.ResponseWriter, r *http.Request) {
	items, err := h.rooms.ListRoomData(r.Context())
	if err != nil {
		response.DomainError(w, err)
		return
	}

	type roomTypeView struct {
		domain.RoomData
		CategoryLabel string `json:"category_label"`
		Persons       int    `json:"persons"`
	}

	views := make([]roomTypeView, 0, len(items))
	for _, rd := range items {
		views = append(views, roomTypeView{
			RoomData:      rd,
			CategoryLabel: rd.Category.Label(),
			Persons:       rd.Persons(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"room_types": views})
}

// CreateRoomType is the admin action adding a room template.
func (h *Handlers) CreateRoomType(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRoomDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	rd, err := h.rooms.CreateRoomData(r.Context(), &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rd)
}

// UpdateRoomType patches a room template.
func (h *Handlers) UpdateRoomType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid room type id")
		return
	}

	var req domain.UpdateRoomDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	rd, err := h.rooms.UpdateRoomData(r.Context(), id, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rd)
}

// DeleteRoomType removes a template; refused while rooms reference it.
func (h *Handlers) DeleteRoomType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid room type id")
		return
	}

	if err := h.rooms.DeleteRoomData(r.Context(), id); err != nil {
		response.DomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateRoom registers a physical room.
func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	room, err := h.rooms.CreateRoom(r.Context(), &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, room)
}

// ListRooms lists physical rooms for staff; ?free=true narrows to
// assignable ones.
func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	onlyFree := r.URL.Query().Get("free") == "true"

	rooms, err := h.rooms.ListRooms(r.Context(), onlyFree)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"rooms": rooms})
}
