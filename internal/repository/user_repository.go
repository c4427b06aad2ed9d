package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/learnnest/learnnest-backend/internal/model"
)

// UserRepository handles user record data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, name, photo_url, role, status, created_at, last_login_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.Status, &u.CreatedAt, &u.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByEmail retrieves a user by their unique email. This is the point
// lookup every role decision goes through, so it stays a single indexed
// query.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// Create inserts a new user record. The unique email index turns a
// concurrent duplicate insert into ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, photo_url, role, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, last_login_at`,
		u.Email, u.Name, u.PhotoURL, u.Role, u.Status,
	).Scan(&u.ID, &u.CreatedAt, &u.LastLoginAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// TouchLastLogin refreshes last_login_at for a repeat sign-in and returns
// the stored timestamp so callers can echo it back without a second read.
func (r *UserRepository) TouchLastLogin(ctx context.Context, email string) (time.Time, error) {
	var at time.Time
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET last_login_at = CURRENT_TIMESTAMP WHERE email = $1
		 RETURNING last_login_at`, email).Scan(&at)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	return at, err
}

// UpdateRole changes a user's role. Promoting to admin also marks the
// account verified.
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role, status model.UserStatus) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET role = $1, status = $2 WHERE id = $3
		 RETURNING `+userColumns, role, status, id))
}

// SearchPaginated lists users matching an optional email/name search,
// always excluding the requesting admin's own record.
func (r *UserRepository) SearchPaginated(ctx context.Context, search, excludeEmail string, limit, offset int) ([]model.User, int, error) {
	where := ` WHERE email <> $1`
	args := []interface{}{excludeEmail}

	if search != "" {
		where += ` AND (email ILIKE $2 OR name ILIKE $2)`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	argIdx := len(args) + 1
	query := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.Status, &u.CreatedAt, &u.LastLoginAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
