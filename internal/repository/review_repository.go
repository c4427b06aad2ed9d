package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/learnnest/learnnest-backend/internal/model"
)

// ReviewRepository handles class review data access.
type ReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const reviewColumns = `id, class_id, student_email, student_name, rating, body, created_at`

// Create inserts a new review.
func (r *ReviewRepository) Create(ctx context.Context, rv *model.Review) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reviews (class_id, student_email, student_name, rating, body)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		rv.ClassID, rv.StudentEmail, rv.StudentName, rv.Rating, rv.Body,
	).Scan(&rv.ID, &rv.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ListLatest retrieves the most recent reviews across all classes.
func (r *ReviewRepository) ListLatest(ctx context.Context, limit int) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ClassID, &rv.StudentEmail, &rv.StudentName, &rv.Rating, &rv.Body, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// ListByClass retrieves all reviews for one class, newest first.
func (r *ReviewRepository) ListByClass(ctx context.Context, classID uuid.UUID) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE class_id = $1 ORDER BY created_at DESC`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ClassID, &rv.StudentEmail, &rv.StudentName, &rv.Rating, &rv.Body, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
