package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/learnnest/learnnest-backend/internal/model"
)

// ClassRepository handles class data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

const classColumns = `id, title, teacher_email, teacher_name, image_url, price,
	description, status, enrolled_count, assignment_count, created_at, updated_at`

func scanClass(row pgx.Row) (*model.Class, error) {
	cl := &model.Class{}
	err := row.Scan(&cl.ID, &cl.Title, &cl.TeacherEmail, &cl.TeacherName, &cl.ImageURL,
		&cl.Price, &cl.Description, &cl.Status, &cl.EnrolledCount, &cl.AssignmentCount,
		&cl.CreatedAt, &cl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cl, nil
}

func collectClasses(rows pgx.Rows) ([]model.Class, error) {
	defer rows.Close()
	var classes []model.Class
	for rows.Next() {
		var cl model.Class
		if err := rows.Scan(&cl.ID, &cl.Title, &cl.TeacherEmail, &cl.TeacherName, &cl.ImageURL,
			&cl.Price, &cl.Description, &cl.Status, &cl.EnrolledCount, &cl.AssignmentCount,
			&cl.CreatedAt, &cl.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, cl)
	}
	return classes, rows.Err()
}

// GetByID retrieves a class by ID.
func (r *ClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	return scanClass(r.pool.QueryRow(ctx,
		`SELECT `+classColumns+` FROM classes WHERE id = $1`, id))
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, cl *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (title, teacher_email, teacher_name, image_url, price, description, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, enrolled_count, assignment_count, created_at, updated_at`,
		cl.Title, cl.TeacherEmail, cl.TeacherName, cl.ImageURL, cl.Price, cl.Description, cl.Status,
	).Scan(&cl.ID, &cl.EnrolledCount, &cl.AssignmentCount, &cl.CreatedAt, &cl.UpdatedAt)
}

// Update modifies a class's teacher-editable fields.
func (r *ClassRepository) Update(ctx context.Context, cl *model.Class) (*model.Class, error) {
	return scanClass(r.pool.QueryRow(ctx,
		`UPDATE classes
		 SET title = $1, image_url = $2, price = $3, description = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5
		 RETURNING `+classColumns,
		cl.Title, cl.ImageURL, cl.Price, cl.Description, cl.ID))
}

// UpdateStatus transitions a class's moderation status.
func (r *ClassRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ClassStatus) (*model.Class, error) {
	return scanClass(r.pool.QueryRow(ctx,
		`UPDATE classes SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2
		 RETURNING `+classColumns, status, id))
}

// Delete removes a class by ID.
func (r *ClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPaginated retrieves classes newest-first, optionally filtered by
// status or teacher email. A nil status means all statuses.
func (r *ClassRepository) ListPaginated(ctx context.Context, status *model.ClassStatus, teacherEmail string, limit, offset int) ([]model.Class, int, error) {
	where := ``
	var args []interface{}

	appendCond := func(cond string, val interface{}) {
		if where == "" {
			where = ` WHERE `
		} else {
			where += ` AND `
		}
		args = append(args, val)
		where += cond + `$` + strconv.Itoa(len(args))
	}

	if status != nil {
		appendCond(`status = `, *status)
	}
	if teacherEmail != "" {
		appendCond(`teacher_email = `, teacherEmail)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM classes`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	argIdx := len(args) + 1
	query := `SELECT ` + classColumns + ` FROM classes` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	classes, err := collectClasses(rows)
	return classes, total, err
}

// ListPopular retrieves the most-enrolled approved classes.
func (r *ClassRepository) ListPopular(ctx context.Context, limit int) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+classColumns+` FROM classes
		 WHERE status = $1 ORDER BY enrolled_count DESC, created_at DESC LIMIT $2`,
		model.ClassStatusApproved, limit)
	if err != nil {
		return nil, err
	}
	return collectClasses(rows)
}

// Count returns the total number of classes with the given status, or all
// classes when status is nil.
func (r *ClassRepository) Count(ctx context.Context, status *model.ClassStatus) (int, error) {
	var n int
	if status == nil {
		err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM classes`).Scan(&n)
		return n, err
	}
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM classes WHERE status = $1`, *status).Scan(&n)
	return n, err
}
