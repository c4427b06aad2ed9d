package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/model"
)

// ReviewStore is the review persistence surface ReviewService depends on.
type ReviewStore interface {
	Create(ctx context.Context, rv *model.Review) error
	ListLatest(ctx context.Context, limit int) ([]model.Review, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]model.Review, error)
}

// ReviewService handles class review business logic. Only enrolled students
// may review a class.
type ReviewService struct {
	reviews     ReviewStore
	enrollments enrollmentCheck
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews ReviewStore, enrollments enrollmentCheck) *ReviewService {
	return &ReviewService{reviews: reviews, enrollments: enrollments}
}

// Create posts a review after checking the student is enrolled. The bool
// reports whether the enrollment check passed.
func (s *ReviewService) Create(ctx context.Context, classID uuid.UUID, student *model.User, req *model.CreateReviewRequest) (*model.Review, bool, error) {
	enrolled, err := s.enrollments.Exists(ctx, classID, student.Email)
	if err != nil {
		return nil, false, err
	}
	if !enrolled {
		return nil, false, nil
	}

	rv := &model.Review{
		ClassID:      classID,
		StudentEmail: student.Email,
		StudentName:  student.Name,
		Rating:       req.Rating,
		Body:         req.Body,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, false, err
	}
	return rv, true, nil
}

// ListLatest retrieves the most recent reviews across all classes.
func (s *ReviewService) ListLatest(ctx context.Context, limit int) ([]model.Review, error) {
	return s.reviews.ListLatest(ctx, limit)
}

// ListByClass retrieves all reviews for one class.
func (s *ReviewService) ListByClass(ctx context.Context, classID uuid.UUID) ([]model.Review, error) {
	return s.reviews.ListByClass(ctx, classID)
}
