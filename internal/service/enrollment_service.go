package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/model"
)

// EnrollmentStore is the enrollment persistence surface EnrollmentService
// depends on.
type EnrollmentStore interface {
	Create(ctx context.Context, e *model.Enrollment) error
	Exists(ctx context.Context, classID uuid.UUID, studentEmail string) (bool, error)
	ListByStudent(ctx context.Context, studentEmail string) ([]model.EnrolledClass, error)
	Count(ctx context.Context) (int, error)
}

// EnrollmentService handles enrollment business logic. Recording an
// enrollment and bumping the class counter happen in one store transaction;
// the counter moves by relative increments only.
type EnrollmentService struct {
	enrollments EnrollmentStore
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(enrollments EnrollmentStore) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments}
}

// Enroll records the student's enrollment after client-side payment
// confirmation.
func (s *EnrollmentService) Enroll(ctx context.Context, studentEmail string, req *model.CreateEnrollmentRequest) (*model.Enrollment, error) {
	e := &model.Enrollment{
		ClassID:      req.ClassID,
		StudentEmail: studentEmail,
		PaymentID:    req.PaymentID,
	}
	if err := s.enrollments.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// IsEnrolled reports whether the student is enrolled in the class.
func (s *EnrollmentService) IsEnrolled(ctx context.Context, classID uuid.UUID, studentEmail string) (bool, error) {
	return s.enrollments.Exists(ctx, classID, studentEmail)
}

// ListForStudent retrieves the student's enrollments with their classes.
func (s *EnrollmentService) ListForStudent(ctx context.Context, studentEmail string) ([]model.EnrolledClass, error) {
	return s.enrollments.ListByStudent(ctx, studentEmail)
}

// Count returns the total number of enrollments.
func (s *EnrollmentService) Count(ctx context.Context) (int, error) {
	return s.enrollments.Count(ctx)
}
