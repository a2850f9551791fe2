package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kvitka/hotel-bookings/internal/domain"
	"github.com/kvitka/hotel-bookings/internal/mailer"
	"github.com/kvitka/hotel-bookings/internal/repo/postgres"
	"github.com/kvitka/hotel-bookings/internal/validate"
	"github.com/kvitka/hotel-bookings/pkg/config"
	"github.com/kvitka/hotel-bookings/pkg/events"
	"github.com/kvitka/hotel-bookings/pkg/logger"
)

type BookingService interface {
	Create(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error)
	Get(ctx context.Context, token uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	AssignRooms(ctx context.Context, token uuid.UUID, roomIDs []int64) (*domain.Booking, error)
}

type bookingService struct {
	bookingRepo postgres.BookingRepository
	roomRepo    postgres.RoomRepository
	userRepo    postgres.UserRepository
	mailer      mailer.Service
	eventBus    events.EventBus
	config      *config.Config
}

func NewBookingService(
	bookingRepo postgres.BookingRepository,
	roomRepo postgres.RoomRepository,
	userRepo postgres.UserRepository,
	mailer mailer.Service,
	eventBus events.EventBus,
	config *config.Config,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		userRepo:    userRepo,
		mailer:      mailer,
		eventBus:    eventBus,
		config:      config,
	}
}

func (s *bookingService) Create(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	// Account-state gate: booking requires a confirmed email and a
	// completed profile.
	if !user.EmailConfirmed {
		return nil, domain.ErrEmailNotConfirmed
	}
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil || !profile.HasNecessaryData() {
		return nil, domain.ErrProfileIncomplete
	}

	if err := validate.Persons(req.Persons); err != nil {
		return nil, err
	}

	category, ok := domain.ParseRoomCategory(req.Category)
	if !ok {
		return nil, fmt.Errorf("invalid room category: %q", req.Category)
	}

	checkIn, err := time.Parse(time.DateOnly, req.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid check_in date: %w", err)
	}
	checkOut, err := time.Parse(time.DateOnly, req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid check_out date: %w", err)
	}

	if err := validate.BookingDates(checkIn, checkOut, time.Now()); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Token:       uuid.New(),
		UserID:      userID,
		Persons:     req.Persons,
		Category:    category,
		HasChildren: req.HasChildren,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
	}

	created, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := s.mailer.SendBookingReceivedEmail(user.Email, created.Token.String(), created.CheckIn, created.CheckOut); err != nil {
		logger.ErrorContext(ctx, "Failed to send booking email", "error", err, "booking_token", created.Token)
	}

	event := events.BookingCreatedEvent{
		BookingToken: created.Token.String(),
		UserID:       created.UserID,
		Persons:      created.Persons,
		Category:     string(created.Category),
		CheckIn:      created.CheckIn,
		CheckOut:     created.CheckOut,
		CreatedAt:    created.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_token", created.Token)
	}

	return created, nil
}

func (s *bookingService) Get(ctx context.Context, token uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}
	return booking, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *bookingService) ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	return s.bookingRepo.List(ctx, limit, offset)
}

// AssignRooms is the staff action attaching physical rooms to a booking.
func (s *bookingService) AssignRooms(ctx context.Context, token uuid.UUID, roomIDs []int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}

	rooms, err := s.roomRepo.GetRoomsByIDs(ctx, roomIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	if len(rooms) != len(roomIDs) {
		return nil, domain.ErrNotFound
	}

	// Rooms already held by this booking may be re-assigned; rooms booked
	// elsewhere may not.
	ours := make(map[int64]bool, len(booking.Rooms))
	for _, room := range booking.Rooms {
		ours[room.ID] = true
	}
	for _, room := range rooms {
		if !room.IsAvailable {
			return nil, fmt.Errorf("room %s is not available", room.Number)
		}
		if room.Status == domain.RoomBooked && !ours[room.ID] {
			return nil, fmt.Errorf("room %s is already booked", room.Number)
		}
	}

	if err := s.bookingRepo.AssignRooms(ctx, token, roomIDs); err != nil {
		return nil, fmt.Errorf("failed to assign rooms: %w", err)
	}

	updated, err := s.bookingRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	event := events.BookingRoomsChangedEvent{
		BookingToken: token.String(),
		RoomNumbers:  make([]string, 0, len(updated.Rooms)),
	}
	for _, room := range updated.Rooms {
		event.RoomNumbers = append(event.RoomNumbers, room.Number)
	}
	if err := s.eventBus.Publish(ctx, events.BookingRoomsChanged, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish rooms changed event", "error", err, "booking_token", token)
	}

	return updated, nil
}
