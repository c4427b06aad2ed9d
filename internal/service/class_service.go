package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/repository"
)

// ErrNotOwner is returned when a teacher operates on a class they do not own.
var ErrNotOwner = errors.New("caller does not own this class")

// ClassStore is the class persistence surface ClassService depends on.
type ClassStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error)
	Create(ctx context.Context, cl *model.Class) error
	Update(ctx context.Context, cl *model.Class) (*model.Class, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ClassStatus) (*model.Class, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListPaginated(ctx context.Context, status *model.ClassStatus, teacherEmail string, limit, offset int) ([]model.Class, int, error)
	ListPopular(ctx context.Context, limit int) ([]model.Class, error)
	Count(ctx context.Context, status *model.ClassStatus) (int, error)
}

// ClassService handles class business logic, including the status-gated
// visibility rule: public surfaces only ever see approved classes.
type ClassService struct {
	classes ClassStore
}

// NewClassService creates a new ClassService.
func NewClassService(classes ClassStore) *ClassService {
	return &ClassService{classes: classes}
}

// ListApproved retrieves approved classes with pagination.
func (s *ClassService) ListApproved(ctx context.Context, page, perPage int) ([]model.Class, int, error) {
	status := model.ClassStatusApproved
	offset := (page - 1) * perPage
	return s.classes.ListPaginated(ctx, &status, "", perPage, offset)
}

// ListPopular retrieves the most-enrolled approved classes.
func (s *ClassService) ListPopular(ctx context.Context, limit int) ([]model.Class, error) {
	return s.classes.ListPopular(ctx, limit)
}

// GetApproved retrieves one approved class. A pending or rejected class is
// reported as not found on the public surface, not as forbidden.
func (s *ClassService) GetApproved(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	cl, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cl.Status != model.ClassStatusApproved {
		return nil, repository.ErrNotFound
	}
	return cl, nil
}

// Create inserts a new class owned by the teacher, always starting pending.
func (s *ClassService) Create(ctx context.Context, teacher *model.User, req *model.CreateClassRequest) (*model.Class, error) {
	cl := &model.Class{
		Title:        req.Title,
		TeacherEmail: teacher.Email,
		TeacherName:  teacher.Name,
		ImageURL:     req.ImageURL,
		Price:        req.Price,
		Description:  req.Description,
		Status:       model.ClassStatusPending,
	}
	if err := s.classes.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

// ListByTeacher retrieves a teacher's own classes, any status.
func (s *ClassService) ListByTeacher(ctx context.Context, teacherEmail string, page, perPage int) ([]model.Class, int, error) {
	offset := (page - 1) * perPage
	return s.classes.ListPaginated(ctx, nil, teacherEmail, perPage, offset)
}

// UpdateOwned modifies a class after checking the caller owns it.
func (s *ClassService) UpdateOwned(ctx context.Context, id uuid.UUID, teacherEmail string, req *model.CreateClassRequest) (*model.Class, error) {
	cl, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cl.TeacherEmail != teacherEmail {
		return nil, ErrNotOwner
	}

	cl.Title = req.Title
	cl.ImageURL = req.ImageURL
	cl.Price = req.Price
	cl.Description = req.Description
	return s.classes.Update(ctx, cl)
}

// DeleteOwned removes a class after checking the caller owns it.
func (s *ClassService) DeleteOwned(ctx context.Context, id uuid.UUID, teacherEmail string) error {
	cl, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cl.TeacherEmail != teacherEmail {
		return ErrNotOwner
	}
	return s.classes.Delete(ctx, id)
}

// GetOwned retrieves a class after checking the caller owns it.
func (s *ClassService) GetOwned(ctx context.Context, id uuid.UUID, teacherEmail string) (*model.Class, error) {
	cl, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cl.TeacherEmail != teacherEmail {
		return nil, ErrNotOwner
	}
	return cl, nil
}

// AdminList retrieves classes of every status for moderation.
func (s *ClassService) AdminList(ctx context.Context, page, perPage int) ([]model.Class, int, error) {
	offset := (page - 1) * perPage
	return s.classes.ListPaginated(ctx, nil, "", perPage, offset)
}

// UpdateStatus transitions a class between moderation states.
func (s *ClassService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ClassStatus) (*model.Class, error) {
	return s.classes.UpdateStatus(ctx, id, status)
}

// Count returns the total class count, optionally filtered by status.
func (s *ClassService) Count(ctx context.Context, status *model.ClassStatus) (int, error) {
	return s.classes.Count(ctx, status)
}
