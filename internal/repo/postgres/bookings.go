package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kvitka/hotel-bookings/internal/domain"
	"github.com/kvitka/hotel-bookings/internal/validate"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByToken(ctx context.Context, token uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	// AssignRooms replaces the booking's room set and flips the rooms to
	// booked, atomically.
	AssignRooms(ctx context.Context, token uuid.UUID, roomIDs []int64) error
	MarkPaid(ctx context.Context, token uuid.UUID) error
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingCols = `token, user_id, persons, category, has_children, is_paid, check_in, check_out, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.Token, &b.UserID, &b.Persons, &b.Category, &b.HasChildren, &b.IsPaid,
		&b.CheckIn, &b.CheckOut, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	// Refuse to persist data the validator would reject.
	if err := validate.Persons(b.Persons); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrSaveRejected)
	}
	if err := validate.BookingDates(b.CheckIn, b.CheckOut, time.Now()); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrSaveRejected)
	}

	const q = `
		INSERT INTO bookings (token, user_id, persons, category, has_children, is_paid, check_in, check_out)
		VALUES ($1, $2, $3, $4, $5, false, $6, $7)
		RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanBooking(r.pool.QueryRow(ctx, q,
		b.Token, b.UserID, b.Persons, b.Category, b.HasChildren, b.CheckIn, b.CheckOut,
	))
}

func (r *bookingRepository) GetByToken(ctx context.Context, token uuid.UUID) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE token = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanBooking(r.pool.QueryRow(ctx, q, token))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadRooms(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	const q = `
		SELECT ` + bookingCols + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	return r.list(ctx, q, userID, limit, offset)
}

func (r *bookingRepository) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	const q = `
		SELECT ` + bookingCols + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	return r.list(ctx, q, limit, offset)
}

func (r *bookingRepository) list(ctx context.Context, q string, args ...any) ([]domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range bookings {
		if err := r.loadRooms(ctx, &bookings[i]); err != nil {
			return nil, err
		}
	}

	return bookings, nil
}

func (r *bookingRepository) loadRooms(ctx context.Context, b *domain.Booking) error {
	const q = `
		SELECT ` + roomCols + `, ` + roomDataColsQualified + `
		FROM booking_rooms br
		JOIN rooms r ON r.id = br.room_id
		JOIN room_data ON room_data.id = r.room_data_id
		WHERE br.booking_token = $1
		ORDER BY r.number`

	rows, err := r.pool.Query(ctx, q, b.Token)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		room, err := scanRoomWithData(rows)
		if err != nil {
			return err
		}
		b.Rooms = append(b.Rooms, *room)
	}

	return rows.Err()
}

func (r *bookingRepository) AssignRooms(ctx context.Context, token uuid.UUID, roomIDs []int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Release previously assigned rooms before replacing the set.
	const freeOld = `
		UPDATE rooms SET status = 'free', updated_at = now()
		WHERE id IN (SELECT room_id FROM booking_rooms WHERE booking_token = $1)`
	if _, err := tx.Exec(ctx, freeOld, token); err != nil {
		return err
	}

	const clear = `DELETE FROM booking_rooms WHERE booking_token = $1`
	if _, err := tx.Exec(ctx, clear, token); err != nil {
		return err
	}

	for _, roomID := range roomIDs {
		const attach = `INSERT INTO booking_rooms (booking_token, room_id) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, attach, token, roomID); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return err
		}

		const book = `UPDATE rooms SET status = 'booked', updated_at = now() WHERE id = $1`
		if _, err := tx.Exec(ctx, book, roomID); err != nil {
			return err
		}
	}

	const touch = `UPDATE bookings SET updated_at = now() WHERE token = $1`
	if _, err := tx.Exec(ctx, touch, token); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *bookingRepository) MarkPaid(ctx context.Context, token uuid.UUID) error {
	const q = `UPDATE bookings SET is_paid = true, updated_at = now() WHERE token = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, token)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}
