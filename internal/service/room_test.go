package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kvitka/hotel-bookings/internal/domain"
)

func TestCreateRoomDataGeneratesSlug(t *testing.T) {
	svc := NewRoomService(newMockRoomRepo())

	rd, err := svc.CreateRoomData(context.Background(), &domain.CreateRoomDataRequest{
		Name:     "Standard Twin",
		Category: "standard",
		Price:    150000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rd.Slug != "standard-twin" {
		t.Errorf("Slug = %q, want standard-twin", rd.Slug)
	}
	if rd.Category != domain.CategoryStandard {
		t.Errorf("Category = %q", rd.Category)
	}
}

func TestCreateRoomDataRejectsBadInput(t *testing.T) {
	svc := NewRoomService(newMockRoomRepo())
	ctx := context.Background()

	if _, err := svc.CreateRoomData(ctx, &domain.CreateRoomDataRequest{Price: 100}); err == nil {
		t.Error("missing name accepted")
	}
	if _, err := svc.CreateRoomData(ctx, &domain.CreateRoomDataRequest{Name: "X", Price: -1}); err == nil {
		t.Error("negative price accepted")
	}
	if _, err := svc.CreateRoomData(ctx, &domain.CreateRoomDataRequest{Name: "X", Category: "penthouse"}); err == nil {
		t.Error("unknown category accepted")
	}
	if _, err := svc.CreateRoomData(ctx, &domain.CreateRoomDataRequest{Name: "X", Slug: "Люкс"}); err == nil {
		t.Error("non-ascii slug accepted")
	}
}

func TestDeleteRoomDataInUse(t *testing.T) {
	repo := newMockRoomRepo()
	svc := NewRoomService(repo)
	ctx := context.Background()

	rd, err := svc.CreateRoomData(ctx, &domain.CreateRoomDataRequest{Name: "Deluxe", Category: "deluxe", Price: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateRoom(ctx, &domain.CreateRoomRequest{RoomDataID: rd.ID, Number: "301"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteRoomData(ctx, rd.ID); !errors.Is(err, domain.ErrRoomDataInUse) {
		t.Errorf("error = %v, want ErrRoomDataInUse", err)
	}
}

func TestCreateRoomValidation(t *testing.T) {
	svc := NewRoomService(newMockRoomRepo())
	ctx := context.Background()

	if _, err := svc.CreateRoom(ctx, &domain.CreateRoomRequest{RoomDataID: 1}); err == nil {
		t.Error("missing room number accepted")
	}
	if _, err := svc.CreateRoom(ctx, &domain.CreateRoomRequest{Number: "101"}); err == nil {
		t.Error("missing room_data_id accepted")
	}
}
