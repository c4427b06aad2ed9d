package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/repository"
)

// TeacherRequestStore is the persistence surface TeacherRequestService
// depends on.
type TeacherRequestStore interface {
	GetByEmail(ctx context.Context, email string) (*model.TeacherRequest, error)
	Create(ctx context.Context, t *model.TeacherRequest) error
	Resubmit(ctx context.Context, t *model.TeacherRequest) (*model.TeacherRequest, error)
	ListPaginated(ctx context.Context, limit, offset int) ([]model.TeacherRequest, int, error)
	Approve(ctx context.Context, id uuid.UUID) (*model.TeacherRequest, error)
	Reject(ctx context.Context, id uuid.UUID) (*model.TeacherRequest, error)
}

// TeacherRequestService handles teacher application business logic.
type TeacherRequestService struct {
	requests TeacherRequestStore
}

// NewTeacherRequestService creates a new TeacherRequestService.
func NewTeacherRequestService(requests TeacherRequestStore) *TeacherRequestService {
	return &TeacherRequestService{requests: requests}
}

// Submit is the upsert-by-email application flow. A first application
// inserts a pending request; re-applying refreshes the details and moves
// the request back to pending. Returns the request and whether one already
// existed.
func (s *TeacherRequestService) Submit(ctx context.Context, email string, req *model.CreateTeacherRequestRequest) (*model.TeacherRequest, bool, error) {
	t := &model.TeacherRequest{
		Email:      email,
		Name:       req.Name,
		Experience: req.Experience,
		Category:   req.Category,
		Title:      req.Title,
		Status:     model.RequestStatusPending,
	}

	_, err := s.requests.GetByEmail(ctx, email)
	if err == nil {
		updated, err := s.requests.Resubmit(ctx, t)
		return updated, true, err
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	err = s.requests.Create(ctx, t)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		updated, err := s.requests.Resubmit(ctx, t)
		return updated, true, err
	}
	if err != nil {
		return nil, false, err
	}
	return t, false, nil
}

// List retrieves teacher requests with pagination.
func (s *TeacherRequestService) List(ctx context.Context, page, perPage int) ([]model.TeacherRequest, int, error) {
	offset := (page - 1) * perPage
	return s.requests.ListPaginated(ctx, perPage, offset)
}

// Approve approves a request and promotes the applicant to teacher. The two
// updates happen in one store transaction; a failed promotion rolls the
// approval back.
func (s *TeacherRequestService) Approve(ctx context.Context, id uuid.UUID) (*model.TeacherRequest, error) {
	return s.requests.Approve(ctx, id)
}

// Reject rejects a request.
func (s *TeacherRequestService) Reject(ctx context.Context, id uuid.UUID) (*model.TeacherRequest, error) {
	return s.requests.Reject(ctx, id)
}
