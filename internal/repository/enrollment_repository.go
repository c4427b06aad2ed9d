package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/learnnest/learnnest-backend/internal/model"
)

// EnrollmentRepository handles enrollment data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Create records an enrollment and bumps the class's enrolled counter in one
// transaction. The counter update is a relative increment, so concurrent
// enrollments into the same class never lose updates.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO enrollments (class_id, student_email, payment_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		e.ClassID, e.StudentEmail, e.PaymentID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return ErrDuplicateEnrollment
			case "23503": // FK violation: class does not exist
				return ErrNotFound
			}
		}
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE classes SET enrolled_count = enrolled_count + 1 WHERE id = $1`, e.ClassID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Exists reports whether the student is enrolled in the class.
func (r *EnrollmentRepository) Exists(ctx context.Context, classID uuid.UUID, studentEmail string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE class_id = $1 AND student_email = $2)`,
		classID, studentEmail,
	).Scan(&exists)
	return exists, err
}

// ListByStudent retrieves a student's enrollments joined with their classes,
// newest enrollment first.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentEmail string) ([]model.EnrolledClass, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.class_id, e.student_email, e.payment_id, e.created_at,
		        c.id, c.title, c.teacher_email, c.teacher_name, c.image_url, c.price,
		        c.description, c.status, c.enrolled_count, c.assignment_count, c.created_at, c.updated_at
		 FROM enrollments e
		 JOIN classes c ON c.id = e.class_id
		 WHERE e.student_email = $1
		 ORDER BY e.created_at DESC`, studentEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrolled []model.EnrolledClass
	for rows.Next() {
		var ec model.EnrolledClass
		e := &ec.Enrollment
		cl := &ec.Class
		if err := rows.Scan(&e.ID, &e.ClassID, &e.StudentEmail, &e.PaymentID, &e.CreatedAt,
			&cl.ID, &cl.Title, &cl.TeacherEmail, &cl.TeacherName, &cl.ImageURL, &cl.Price,
			&cl.Description, &cl.Status, &cl.EnrolledCount, &cl.AssignmentCount, &cl.CreatedAt, &cl.UpdatedAt); err != nil {
			return nil, err
		}
		enrolled = append(enrolled, ec)
	}
	return enrolled, rows.Err()
}

// Count returns the total number of enrollments.
func (r *EnrollmentRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&n)
	return n, err
}
