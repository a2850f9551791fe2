package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kvitka/hotel-bookings/internal/domain"
	"github.com/kvitka/hotel-bookings/pkg/config"
	"github.com/kvitka/hotel-bookings/pkg/events"
)

// In-memory doubles for the repository and infrastructure interfaces.

type mockUserRepo struct {
	users    map[int64]*domain.User
	profiles map[int64]*domain.Profile
	nextID   int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:    make(map[int64]*domain.User),
		profiles: make(map[int64]*domain.Profile),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, email, passwordHash string) (*domain.User, *domain.Profile, error) {
	for _, u := range m.users {
		if u.Email == email {
			return nil, nil, domain.ErrDuplicateAccount
		}
	}
	m.nextID++
	u := &domain.User{
		ID:           m.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		Joined:       time.Now(),
	}
	p := &domain.Profile{UserID: u.ID}
	m.users[u.ID] = u
	m.profiles[u.ID] = p
	return u, p, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) MarkEmailConfirmed(ctx context.Context, userID int64) error {
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.EmailConfirmed = true
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if _, ok := m.profiles[p.UserID]; !ok {
		return nil, domain.ErrNotFound
	}
	copied := *p
	m.profiles[p.UserID] = &copied
	out := copied
	return &out, nil
}

type mockRoomRepo struct {
	rooms    map[int64]domain.Room
	roomData map[int64]domain.RoomData
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{
		rooms:    make(map[int64]domain.Room),
		roomData: make(map[int64]domain.RoomData),
	}
}

func (m *mockRoomRepo) CreateRoomData(ctx context.Context, rd *domain.RoomData) (*domain.RoomData, error) {
	rd.ID = int64(len(m.roomData) + 1)
	m.roomData[rd.ID] = *rd
	return rd, nil
}

func (m *mockRoomRepo) GetRoomDataBySlug(ctx context.Context, slug string) (*domain.RoomData, error) {
	for _, rd := range m.roomData {
		if rd.Slug == slug {
			copied := rd
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockRoomRepo) ListRoomData(ctx context.Context) ([]domain.RoomData, error) {
	var out []domain.RoomData
	for _, rd := range m.roomData {
		out = append(out, rd)
	}
	return out, nil
}

func (m *mockRoomRepo) UpdateRoomData(ctx context.Context, id int64, req *domain.UpdateRoomDataRequest) (*domain.RoomData, error) {
	rd, ok := m.roomData[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if req.Name != nil {
		rd.Name = *req.Name
	}
	if req.Price != nil {
		rd.Price = *req.Price
	}
	m.roomData[id] = rd
	return &rd, nil
}

func (m *mockRoomRepo) DeleteRoomData(ctx context.Context, id int64) error {
	if _, ok := m.roomData[id]; !ok {
		return domain.ErrNotFound
	}
	for _, room := range m.rooms {
		if room.RoomDataID == id {
			return domain.ErrRoomDataInUse
		}
	}
	delete(m.roomData, id)
	return nil
}

func (m *mockRoomRepo) CreateRoom(ctx context.Context, roomDataID int64, number string) (*domain.Room, error) {
	room := domain.Room{
		ID:          int64(len(m.rooms) + 1),
		RoomDataID:  roomDataID,
		Number:      number,
		Status:      domain.RoomFree,
		IsAvailable: true,
	}
	if rd, ok := m.roomData[roomDataID]; ok {
		copied := rd
		room.RoomData = &copied
	}
	m.rooms[room.ID] = room
	return &room, nil
}

func (m *mockRoomRepo) ListRooms(ctx context.Context, onlyFree bool) ([]domain.Room, error) {
	var out []domain.Room
	for _, room := range m.rooms {
		if onlyFree && room.Status != domain.RoomFree {
			continue
		}
		out = append(out, room)
	}
	return out, nil
}

func (m *mockRoomRepo) GetRoomsByIDs(ctx context.Context, ids []int64) ([]domain.Room, error) {
	var out []domain.Room
	for _, id := range ids {
		if room, ok := m.rooms[id]; ok {
			out = append(out, room)
		}
	}
	return out, nil
}

type mockBookingRepo struct {
	bookings map[uuid.UUID]*domain.Booking
	order    []uuid.UUID
	assigned map[uuid.UUID][]int64
	rooms    *mockRoomRepo
	clock    time.Time
}

func newMockBookingRepo(rooms *mockRoomRepo) *mockBookingRepo {
	return &mockBookingRepo{
		bookings: make(map[uuid.UUID]*domain.Booking),
		assigned: make(map[uuid.UUID][]int64),
		rooms:    rooms,
		clock:    time.Now(),
	}
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.clock = m.clock.Add(time.Second)
	copied := *b
	copied.CreatedAt = m.clock
	copied.UpdatedAt = copied.CreatedAt
	m.bookings[b.Token] = &copied
	m.order = append(m.order, b.Token)
	out := copied
	return &out, nil
}

func (m *mockBookingRepo) GetByToken(ctx context.Context, token uuid.UUID) (*domain.Booking, error) {
	b, ok := m.bookings[token]
	if !ok {
		return nil, nil
	}
	copied := *b
	copied.Rooms = nil
	for _, id := range m.assigned[token] {
		if room, ok := m.rooms.rooms[id]; ok {
			copied.Rooms = append(copied.Rooms, room)
		}
	}
	return &copied, nil
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	for i := len(m.order) - 1; i >= 0; i-- {
		token := m.order[i]
		if m.bookings[token].UserID != userID {
			continue
		}
		loaded, _ := m.GetByToken(ctx, token)
		out = append(out, *loaded)
	}
	return out, nil
}

func (m *mockBookingRepo) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	for i := len(m.order) - 1; i >= 0; i-- {
		loaded, _ := m.GetByToken(ctx, m.order[i])
		out = append(out, *loaded)
	}
	return out, nil
}

func (m *mockBookingRepo) AssignRooms(ctx context.Context, token uuid.UUID, roomIDs []int64) error {
	if _, ok := m.bookings[token]; !ok {
		return domain.ErrNotFound
	}
	for _, id := range m.assigned[token] {
		if room, ok := m.rooms.rooms[id]; ok {
			room.Status = domain.RoomFree
			m.rooms.rooms[id] = room
		}
	}
	m.assigned[token] = roomIDs
	for _, id := range roomIDs {
		if room, ok := m.rooms.rooms[id]; ok {
			room.Status = domain.RoomBooked
			m.rooms.rooms[id] = room
		}
	}
	return nil
}

func (m *mockBookingRepo) MarkPaid(ctx context.Context, token uuid.UUID) error {
	b, ok := m.bookings[token]
	if !ok {
		return domain.ErrNotFound
	}
	b.IsPaid = true
	return nil
}

type sentMail struct {
	to         string
	confirmURL string
	booking    string
}

type mockMailer struct {
	confirmations []sentMail
	bookings      []sentMail
}

func (m *mockMailer) SendConfirmationEmail(toEmail, confirmURL string) error {
	m.confirmations = append(m.confirmations, sentMail{to: toEmail, confirmURL: confirmURL})
	return nil
}

func (m *mockMailer) SendBookingReceivedEmail(toEmail, bookingToken string, checkIn, checkOut time.Time) error {
	m.bookings = append(m.bookings, sentMail{to: toEmail, booking: bookingToken})
	return nil
}

type mockEventBus struct {
	published []string
}

func (m *mockEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	m.published = append(m.published, subject)
	return nil
}

func (m *mockEventBus) Subscribe(subject string, handler func(msg *events.Message)) error {
	return nil
}

func (m *mockEventBus) QueueSubscribe(subject, queue string, handler func(msg *events.Message)) error {
	return nil
}

func (m *mockEventBus) Close() error { return nil }

func (m *mockEventBus) has(subject string) bool {
	for _, s := range m.published {
		if s == subject {
			return true
		}
	}
	return false
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			ConfirmTokenTTL: 2 * time.Hour,
		},
		Stripe: config.StripeConfig{Currency: "uah"},
		Site: config.SiteConfig{
			Name:    "Hotel Kvitka",
			BaseURL: "http://localhost:8080",
		},
	}
}
