package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func intPtr(n int) *int { return &n }

func TestRoomListText(t *testing.T) {
	b := &Booking{Token: uuid.New()}
	if got := b.RoomListText(); got != NoRoomsAssigned {
		t.Errorf("RoomListText() = %q, want %q", got, NoRoomsAssigned)
	}

	b.Rooms = []Room{{Number: "101"}, {Number: "102"}}
	if got := b.RoomListText(); got != "101, 102" {
		t.Errorf("RoomListText() = %q, want %q", got, "101, 102")
	}
}

func TestTotalPrice(t *testing.T) {
	b := &Booking{}
	if got := b.TotalPrice(); got != 0 {
		t.Errorf("TotalPrice() = %d, want 0", got)
	}

	b.Rooms = []Room{
		{Number: "101", RoomData: &RoomData{Price: 150000}},
		{Number: "102", RoomData: &RoomData{Price: 250000}},
	}
	if got := b.TotalPrice(); got != 400000 {
		t.Errorf("TotalPrice() = %d, want 400000", got)
	}
}

func TestToView(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	b := &Booking{
		Token:    uuid.New(),
		Persons:  10,
		Category: CategoryStandard,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}

	view := b.ToView()
	if view.RoomList != NoRoomsAssigned {
		t.Errorf("RoomList = %q, want %q", view.RoomList, NoRoomsAssigned)
	}
	if view.TotalPrice != nil {
		t.Errorf("TotalPrice = %v, want nil before rooms are assigned", *view.TotalPrice)
	}
	if view.CheckIn != "2026-09-01" || view.CheckOut != "2026-09-10" {
		t.Errorf("dates = %q..%q", view.CheckIn, view.CheckOut)
	}
	if view.Category != "Standard" {
		t.Errorf("Category = %q, want Standard", view.Category)
	}

	b.Rooms = []Room{{Number: "101", RoomData: &RoomData{Price: 99900}}}
	view = b.ToView()
	if view.TotalPrice == nil || *view.TotalPrice != 99900 {
		t.Errorf("TotalPrice = %v, want 99900", view.TotalPrice)
	}
	if view.RoomList != "101" {
		t.Errorf("RoomList = %q, want 101", view.RoomList)
	}
}
