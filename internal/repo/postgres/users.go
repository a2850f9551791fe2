package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kvitka/hotel-bookings/internal/domain"
)

type UserRepository interface {
	// Create inserts the user together with its empty profile in one
	// transaction. Either both records exist afterwards, or neither.
	Create(ctx context.Context, email, passwordHash string) (*domain.User, *domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	MarkEmailConfirmed(ctx context.Context, userID int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	GetProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userCols = `id, email, password_hash, email_confirmed, is_active, is_staff, is_superuser, joined`

const profileCols = `user_id, first_name, last_name, birthday, telephone`

func (r *userRepository) Create(ctx context.Context, email, passwordHash string) (*domain.User, *domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	const insertUser = `
		INSERT INTO users (email, password_hash, email_confirmed, is_active, is_staff, is_superuser)
		VALUES ($1, $2, false, true, false, false)
		RETURNING ` + userCols

	var u domain.User
	err = tx.QueryRow(ctx, insertUser, email, passwordHash).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.EmailConfirmed, &u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.Joined,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, domain.ErrDuplicateAccount
		}
		return nil, nil, err
	}

	const insertProfile = `INSERT INTO profiles (user_id) VALUES ($1)`
	if _, err := tx.Exec(ctx, insertProfile, u.ID); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return &u, &domain.Profile{UserID: u.ID}, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE email = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.User
	err := r.pool.QueryRow(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.EmailConfirmed, &u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.Joined,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &u, err
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.User
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.EmailConfirmed, &u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.Joined,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &u, err
}

func (r *userRepository) MarkEmailConfirmed(ctx context.Context, userID int64) error {
	const q = `UPDATE users SET email_confirmed = true WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, userID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `
		SELECT ` + userCols + `
		FROM users
		ORDER BY joined DESC
		LIMIT $1 OFFSET $2`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.EmailConfirmed, &u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.Joined,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *userRepository) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	const q = `SELECT ` + profileCols + ` FROM profiles WHERE user_id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p domain.Profile
	err := r.pool.QueryRow(ctx, q, userID).Scan(
		&p.UserID, &p.FirstName, &p.LastName, &p.Birthday, &p.Telephone,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &p, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	const q = `
		UPDATE profiles
		SET first_name = $2, last_name = $3, birthday = $4, telephone = $5
		WHERE user_id = $1
		RETURNING ` + profileCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var out domain.Profile
	err := r.pool.QueryRow(ctx, q, p.UserID, p.FirstName, p.LastName, p.Birthday, p.Telephone).Scan(
		&out.UserID, &out.FirstName, &out.LastName, &out.Birthday, &out.Telephone,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return &out, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
