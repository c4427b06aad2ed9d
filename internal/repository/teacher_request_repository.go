package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/learnnest/learnnest-backend/internal/model"
)

// TeacherRequestRepository handles teacher application data access.
type TeacherRequestRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRequestRepository creates a new TeacherRequestRepository.
func NewTeacherRequestRepository(pool *pgxpool.Pool) *TeacherRequestRepository {
	return &TeacherRequestRepository{pool: pool}
}

const requestColumns = `id, email, name, experience, category, title, status, created_at, updated_at`

func scanRequest(row pgx.Row) (*model.TeacherRequest, error) {
	t := &model.TeacherRequest{}
	err := row.Scan(&t.ID, &t.Email, &t.Name, &t.Experience, &t.Category, &t.Title, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetByEmail retrieves a teacher request by the applicant's email.
func (r *TeacherRequestRepository) GetByEmail(ctx context.Context, email string) (*model.TeacherRequest, error) {
	return scanRequest(r.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM teacher_requests WHERE email = $1`, email))
}

// Create inserts a new teacher request with status pending.
func (r *TeacherRequestRepository) Create(ctx context.Context, t *model.TeacherRequest) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO teacher_requests (email, name, experience, category, title, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		t.Email, t.Name, t.Experience, t.Category, t.Title, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Resubmit moves an existing request back to pending and refreshes its
// details. Used when a rejected applicant applies again.
func (r *TeacherRequestRepository) Resubmit(ctx context.Context, t *model.TeacherRequest) (*model.TeacherRequest, error) {
	return scanRequest(r.pool.QueryRow(ctx,
		`UPDATE teacher_requests
		 SET name = $1, experience = $2, category = $3, title = $4,
		     status = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE email = $6
		 RETURNING `+requestColumns,
		t.Name, t.Experience, t.Category, t.Title, model.RequestStatusPending, t.Email))
}

// ListPaginated retrieves teacher requests newest-first.
func (r *TeacherRequestRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.TeacherRequest, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teacher_requests`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+requestColumns+` FROM teacher_requests
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []model.TeacherRequest
	for rows.Next() {
		var t model.TeacherRequest
		if err := rows.Scan(&t.ID, &t.Email, &t.Name, &t.Experience, &t.Category, &t.Title, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		requests = append(requests, t)
	}
	return requests, total, rows.Err()
}

// Approve marks the request approved and promotes the applicant's user
// record to the teacher role in a single transaction. Either both rows
// change or neither does.
func (r *TeacherRequestRepository) Approve(ctx context.Context, id uuid.UUID) (*model.TeacherRequest, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	req, err := scanRequest(tx.QueryRow(ctx,
		`UPDATE teacher_requests
		 SET status = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2
		 RETURNING `+requestColumns, model.RequestStatusApproved, id))
	if err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE users SET role = $1 WHERE email = $2`, model.RoleTeacher, req.Email)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// The applicant has no user record; approving would strand the
		// request in an approved state with no teacher behind it.
		return nil, ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return req, nil
}

// Reject marks the request rejected.
func (r *TeacherRequestRepository) Reject(ctx context.Context, id uuid.UUID) (*model.TeacherRequest, error) {
	return scanRequest(r.pool.QueryRow(ctx,
		`UPDATE teacher_requests
		 SET status = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2
		 RETURNING `+requestColumns, model.RequestStatusRejected, id))
}
