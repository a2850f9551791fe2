package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoRoomsAssigned is returned by RoomListText while staff have not attached
// rooms to the booking yet.
const NoRoomsAssigned = "no rooms assigned yet"

type Booking struct {
	Token       uuid.UUID    `json:"token"`
	UserID      int64        `json:"user_id"`
	Rooms       []Room       `json:"rooms"`
	Persons     int          `json:"persons"`
	Category    RoomCategory `json:"category"`
	HasChildren bool         `json:"has_children"`
	IsPaid      bool         `json:"is_paid"`
	CheckIn     time.Time    `json:"check_in"`
	CheckOut    time.Time    `json:"check_out"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// RoomListText returns the comma-joined room numbers, or a sentinel while
// no rooms are assigned.
func (b *Booking) RoomListText() string {
	if len(b.Rooms) == 0 {
		return NoRoomsAssigned
	}
	numbers := make([]string, 0, len(b.Rooms))
	for _, room := range b.Rooms {
		numbers = append(numbers, room.Number)
	}
	return strings.Join(numbers, ", ")
}

// TotalPrice sums the prices of assigned rooms, in minor currency units.
// Meaningful only once rooms are assigned.
func (b *Booking) TotalPrice() int64 {
	var total int64
	for _, room := range b.Rooms {
		if room.RoomData != nil {
			total += room.RoomData.Price
		}
	}
	return total
}

type CreateBookingRequest struct {
	Persons     int    `json:"persons"`
	Category    string `json:"category"`
	HasChildren bool   `json:"has_children"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
}

type BookingView struct {
	Token       string `json:"token"`
	Persons     int    `json:"persons"`
	Category    string `json:"category"`
	HasChildren bool   `json:"has_children"`
	IsPaid      bool   `json:"is_paid"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	RoomList    string `json:"room_list"`
	TotalPrice  *int64 `json:"total_price,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ToView renders the booking for API responses. TotalPrice stays null until
// rooms are assigned; the UI shows a placeholder for it.
func (b *Booking) ToView() *BookingView {
	view := &BookingView{
		Token:       b.Token.String(),
		Persons:     b.Persons,
		Category:    b.Category.Label(),
		HasChildren: b.HasChildren,
		IsPaid:      b.IsPaid,
		CheckIn:     b.CheckIn.Format(time.DateOnly),
		CheckOut:    b.CheckOut.Format(time.DateOnly),
		RoomList:    b.RoomListText(),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
	if len(b.Rooms) > 0 {
		total := b.TotalPrice()
		view.TotalPrice = &total
	}
	return view
}
