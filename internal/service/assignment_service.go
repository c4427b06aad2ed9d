package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/model"
)

// AssignmentStore is the assignment persistence surface AssignmentService
// depends on.
type AssignmentStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	Create(ctx context.Context, a *model.Assignment) error
	ListByClass(ctx context.Context, classID uuid.UUID) ([]model.Assignment, error)
	CreateSubmission(ctx context.Context, s *model.Submission) error
}

// enrollmentCheck is the slice of EnrollmentStore the assignment flow needs.
type enrollmentCheck interface {
	Exists(ctx context.Context, classID uuid.UUID, studentEmail string) (bool, error)
}

// classLookup is the slice of ClassStore the assignment flow needs.
type classLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error)
}

// AssignmentService handles assignment business logic. Teachers create
// assignments on classes they own; students read and submit only for
// classes they are enrolled in.
type AssignmentService struct {
	assignments AssignmentStore
	classes     classLookup
	enrollments enrollmentCheck
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(assignments AssignmentStore, classes classLookup, enrollments enrollmentCheck) *AssignmentService {
	return &AssignmentService{assignments: assignments, classes: classes, enrollments: enrollments}
}

// Create adds an assignment to a class the teacher owns. The class's
// assignment counter is bumped atomically in the same store transaction.
func (s *AssignmentService) Create(ctx context.Context, classID uuid.UUID, teacherEmail string, req *model.CreateAssignmentRequest) (*model.Assignment, error) {
	cl, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if cl.TeacherEmail != teacherEmail {
		return nil, ErrNotOwner
	}

	a := &model.Assignment{
		ClassID:     classID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListForStudent retrieves a class's assignments for an enrolled student.
// Returns ErrNotEnrolled-equivalent via the bool for callers to map to 403.
func (s *AssignmentService) ListForStudent(ctx context.Context, classID uuid.UUID, studentEmail string) ([]model.Assignment, bool, error) {
	enrolled, err := s.enrollments.Exists(ctx, classID, studentEmail)
	if err != nil {
		return nil, false, err
	}
	if !enrolled {
		return nil, false, nil
	}

	assignments, err := s.assignments.ListByClass(ctx, classID)
	return assignments, true, err
}

// Submit records a student's submission for an assignment in a class they
// are enrolled in. The assignment's submission counter is bumped atomically
// in the same store transaction.
func (s *AssignmentService) Submit(ctx context.Context, assignmentID uuid.UUID, studentEmail string, req *model.CreateSubmissionRequest) (*model.Submission, bool, error) {
	a, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, false, err
	}

	enrolled, err := s.enrollments.Exists(ctx, a.ClassID, studentEmail)
	if err != nil {
		return nil, false, err
	}
	if !enrolled {
		return nil, false, nil
	}

	sub := &model.Submission{
		AssignmentID: assignmentID,
		StudentEmail: studentEmail,
		Body:         req.Body,
	}
	if err := s.assignments.CreateSubmission(ctx, sub); err != nil {
		return nil, false, err
	}
	return sub, true, nil
}
