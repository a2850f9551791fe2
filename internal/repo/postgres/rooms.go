package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kvitka/hotel-bookings/internal/domain"
)

type RoomRepository interface {
	CreateRoomData(ctx context.Context, rd *domain.RoomData) (*domain.RoomData, error)
	GetRoomDataBySlug(ctx context.Context, slug string) (*domain.RoomData, error)
	ListRoomData(ctx context.Context) ([]domain.RoomData, error)
	UpdateRoomData(ctx context.Context, id int64, req *domain.UpdateRoomDataRequest) (*domain.RoomData, error)
	// DeleteRoomData fails with ErrRoomDataInUse while rooms reference the
	// template; the FK is declared RESTRICT.
	DeleteRoomData(ctx context.Context, id int64) error

	CreateRoom(ctx context.Context, roomDataID int64, number string) (*domain.Room, error)
	ListRooms(ctx context.Context, onlyFree bool) ([]domain.Room, error)
	GetRoomsByIDs(ctx context.Context, ids []int64) ([]domain.Room, error)
}

type roomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) RoomRepository {
	return &roomRepository{pool: pool}
}

const roomDataCols = `id, name, slug, category, single_beds, double_beds, price, description, created_at, updated_at`

func scanRoomData(row pgx.Row) (*domain.RoomData, error) {
	var rd domain.RoomData
	err := row.Scan(
		&rd.ID, &rd.Name, &rd.Slug, &rd.Category, &rd.SingleBeds, &rd.DoubleBeds,
		&rd.Price, &rd.Description, &rd.CreatedAt, &rd.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *roomRepository) CreateRoomData(ctx context.Context, rd *domain.RoomData) (*domain.RoomData, error) {
	const q = `
		INSERT INTO room_data (name, slug, category, single_beds, double_beds, price, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + roomDataCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out, err := scanRoomData(r.pool.QueryRow(ctx, q,
		rd.Name, rd.Slug, rd.Category, rd.SingleBeds, rd.DoubleBeds, rd.Price, rd.Description,
	))
	if err != nil && isUniqueViolation(err) {
		return nil, domain.ErrAlreadyExists
	}
	return out, err
}

func (r *roomRepository) GetRoomDataBySlug(ctx context.Context, slug string) (*domain.RoomData, error) {
	const q = `SELECT ` + roomDataCols + ` FROM room_data WHERE slug = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out, err := scanRoomData(r.pool.QueryRow(ctx, q, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return out, err
}

func (r *roomRepository) ListRoomData(ctx context.Context) ([]domain.RoomData, error) {
	// Mirrors the catalog ordering: cheapest category first.
	const q = `
		SELECT ` + roomDataCols + `
		FROM room_data
		ORDER BY CASE category
			WHEN 'economy' THEN 0
			WHEN 'standard' THEN 1
			WHEN 'deluxe' THEN 2
			WHEN 'luxe' THEN 3
		END, slug`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.RoomData
	for rows.Next() {
		rd, err := scanRoomData(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rd)
	}

	return items, rows.Err()
}

func (r *roomRepository) UpdateRoomData(ctx context.Context, id int64, req *domain.UpdateRoomDataRequest) (*domain.RoomData, error) {
	const q = `
		UPDATE room_data
		SET
			name = COALESCE($2, name),
			category = COALESCE($3, category),
			single_beds = COALESCE($4, single_beds),
			double_beds = COALESCE($5, double_beds),
			price = COALESCE($6, price),
			description = COALESCE($7, description),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + roomDataCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out, err := scanRoomData(r.pool.QueryRow(ctx, q,
		id, req.Name, req.Category, req.SingleBeds, req.DoubleBeds, req.Price, req.Description,
	))
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return out, err
}

func (r *roomRepository) DeleteRoomData(ctx context.Context, id int64) error {
	const q = `DELETE FROM room_data WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrRoomDataInUse
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

const roomCols = `r.id, r.room_data_id, r.number, r.status, r.is_available, r.created_at, r.updated_at`

const roomDataColsQualified = `room_data.id, room_data.name, room_data.slug, room_data.category, room_data.single_beds, room_data.double_beds, room_data.price, room_data.description, room_data.created_at, room_data.updated_at`

func scanRoomWithData(rows pgx.Rows) (*domain.Room, error) {
	var (
		room domain.Room
		rd   domain.RoomData
	)
	err := rows.Scan(
		&room.ID, &room.RoomDataID, &room.Number, &room.Status, &room.IsAvailable, &room.CreatedAt, &room.UpdatedAt,
		&rd.ID, &rd.Name, &rd.Slug, &rd.Category, &rd.SingleBeds, &rd.DoubleBeds, &rd.Price, &rd.Description, &rd.CreatedAt, &rd.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	room.RoomData = &rd
	return &room, nil
}

func (r *roomRepository) CreateRoom(ctx context.Context, roomDataID int64, number string) (*domain.Room, error) {
	const q = `
		INSERT INTO rooms (room_data_id, number, status, is_available)
		VALUES ($1, $2, 'free', true)
		RETURNING id, room_data_id, number, status, is_available, created_at, updated_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var room domain.Room
	err := r.pool.QueryRow(ctx, q, roomDataID, number).Scan(
		&room.ID, &room.RoomDataID, &room.Number, &room.Status, &room.IsAvailable, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &room, nil
}

func (r *roomRepository) ListRooms(ctx context.Context, onlyFree bool) ([]domain.Room, error) {
	q := `
		SELECT ` + roomCols + `, ` + roomDataColsQualified + `
		FROM rooms r
		JOIN room_data ON room_data.id = r.room_data_id`
	if onlyFree {
		q += ` WHERE r.status = 'free' AND r.is_available`
	}
	q += ` ORDER BY r.number`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoomWithData(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}

	return rooms, rows.Err()
}

func (r *roomRepository) GetRoomsByIDs(ctx context.Context, ids []int64) ([]domain.Room, error) {
	const q = `
		SELECT ` + roomCols + `, ` + roomDataColsQualified + `
		FROM rooms r
		JOIN room_data ON room_data.id = r.room_data_id
		WHERE r.id = ANY($1)
		ORDER BY r.number`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoomWithData(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}

	return rooms, rows.Err()
}
