package service

import (
	"context"
	"fmt"

	"github.com/kvitka/hotel-bookings/internal/domain"
	"github.com/kvitka/hotel-bookings/internal/repo/postgres"
	"github.com/kvitka/hotel-bookings/internal/utils"
)

type RoomService interface {
	CreateRoomData(ctx context.Context, req *domain.CreateRoomDataRequest) (*domain.RoomData, error)
	ListRoomData(ctx context.Context) ([]domain.RoomData, error)
	UpdateRoomData(ctx context.Context, id int64, req *domain.UpdateRoomDataRequest) (*domain.RoomData, error)
	DeleteRoomData(ctx context.Context, id int64) error
	CreateRoom(ctx context.Context, req *domain.CreateRoomRequest) (*domain.Room, error)
	ListRooms(ctx context.Context, onlyFree bool) ([]domain.Room, error)
}

type roomService struct {
	roomRepo postgres.RoomRepository
}

func NewRoomService(roomRepo postgres.RoomRepository) RoomService {
	return &roomService{roomRepo: roomRepo}
}

func (s *roomService) CreateRoomData(ctx context.Context, req *domain.CreateRoomDataRequest) (*domain.RoomData, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	category := domain.CategoryStandard
	if req.Category != "" {
		parsed, ok := domain.ParseRoomCategory(req.Category)
		if !ok {
			return nil, fmt.Errorf("invalid room category: %q", req.Category)
		}
		category = parsed
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	if !utils.IsValidSlug(slug) {
		return nil, fmt.Errorf("invalid slug: %q", slug)
	}

	rd := &domain.RoomData{
		Name:        req.Name,
		Slug:        slug,
		Category:    category,
		SingleBeds:  req.SingleBeds,
		DoubleBeds:  req.DoubleBeds,
		Price:       req.Price,
		Description: req.Description,
	}

	created, err := s.roomRepo.CreateRoomData(ctx, rd)
	if err != nil {
		return nil, fmt.Errorf("failed to create room type: %w", err)
	}
	return created, nil
}

func (s *roomService) ListRoomData(ctx context.Context) ([]domain.RoomData, error) {
	return s.roomRepo.ListRoomData(ctx)
}

func (s *roomService) UpdateRoomData(ctx context.Context, id int64, req *domain.UpdateRoomDataRequest) (*domain.RoomData, error) {
	if req.Category != nil {
		if _, ok := domain.ParseRoomCategory(*req.Category); !ok {
			return nil, fmt.Errorf("invalid room category: %q", *req.Category)
		}
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	return s.roomRepo.UpdateRoomData(ctx, id, req)
}

func (s *roomService) DeleteRoomData(ctx context.Context, id int64) error {
	return s.roomRepo.DeleteRoomData(ctx, id)
}

func (s *roomService) CreateRoom(ctx context.Context, req *domain.CreateRoomRequest) (*domain.Room, error) {
	if req.Number == "" {
		return nil, fmt.Errorf("room number is required")
	}
	if req.RoomDataID <= 0 {
		return nil, fmt.Errorf("room_data_id is required")
	}

	room, err := s.roomRepo.CreateRoom(ctx, req.RoomDataID, req.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

func (s *roomService) ListRooms(ctx context.Context, onlyFree bool) ([]domain.Room, error) {
	return s.roomRepo.ListRooms(ctx, onlyFree)
}
