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

// AssignmentRepository handles assignment and submission data access.
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

const assignmentColumns = `id, class_id, title, description, deadline, submission_count, created_at`

// GetByID retrieves an assignment by ID.
func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	a := &model.Assignment{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id,
	).Scan(&a.ID, &a.ClassID, &a.Title, &a.Description, &a.Deadline, &a.SubmissionCount, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Create inserts an assignment and bumps the class's assignment counter in
// one transaction.
func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO assignments (class_id, title, description, deadline)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, submission_count, created_at`,
		a.ClassID, a.Title, a.Description, a.Deadline,
	).Scan(&a.ID, &a.SubmissionCount, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE classes SET assignment_count = assignment_count + 1 WHERE id = $1`, a.ClassID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListByClass retrieves all assignments for a class, newest first.
func (r *AssignmentRepository) ListByClass(ctx context.Context, classID uuid.UUID) ([]model.Assignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+assignmentColumns+` FROM assignments
		 WHERE class_id = $1 ORDER BY created_at DESC`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.ClassID, &a.Title, &a.Description, &a.Deadline, &a.SubmissionCount, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// CreateSubmission inserts a submission and bumps the assignment's
// submission counter in one transaction.
func (r *AssignmentRepository) CreateSubmission(ctx context.Context, s *model.Submission) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO submissions (assignment_id, student_email, body)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		s.AssignmentID, s.StudentEmail, s.Body,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE assignments SET submission_count = submission_count + 1 WHERE id = $1`, s.AssignmentID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
