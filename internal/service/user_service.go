package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/repository"
)

// UserStore is the user persistence surface UserService depends on.
// Satisfied by *repository.UserRepository; tests substitute fakes.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	TouchLastLogin(ctx context.Context, email string) (time.Time, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role model.Role, status model.UserStatus) (*model.User, error)
	SearchPaginated(ctx context.Context, search, excludeEmail string, limit, offset int) ([]model.User, int, error)
	Count(ctx context.Context) (int, error)
}

// UserService handles user business logic, including the role resolution
// every authorization decision depends on.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// SignIn is the upsert-by-email sign-in flow. A first sign-in inserts a
// student record; a repeat sign-in only refreshes last_login_at. Returns the
// record and whether it was newly created. A concurrent duplicate insert
// collapses into the repeat-sign-in path via the unique email index.
func (s *UserService) SignIn(ctx context.Context, req *model.SignInRequest) (*model.User, bool, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		at, err := s.users.TouchLastLogin(ctx, existing.Email)
		if err != nil {
			return nil, false, err
		}
		existing.LastLoginAt = at
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	u := &model.User{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     model.RoleStudent,
		Status:   model.UserStatusNotVerified,
	}
	err = s.users.Create(ctx, u)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// Lost the race against an identical concurrent sign-in.
		existing, err := s.users.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, false, err
		}
		at, err := s.users.TouchLastLogin(ctx, existing.Email)
		if err != nil {
			return nil, false, err
		}
		existing.LastLoginAt = at
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// ResolveRole maps a verified identity's email to its stored user record.
// Role is mutable data, so this is a fresh store read on every call — never
// cached, never derived from the credential.
func (s *UserService) ResolveRole(ctx context.Context, email string) (*model.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// GetByEmail retrieves a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// UpdateRole changes a user's role. Promotion to admin also marks the
// account verified; other role changes keep the current status.
func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := u.Status
	if role == model.RoleAdmin {
		status = model.UserStatusVerified
	}
	return s.users.UpdateRole(ctx, id, role, status)
}

// Search lists users matching an optional search term, excluding the
// requesting admin's own record.
func (s *UserService) Search(ctx context.Context, search, excludeEmail string, page, perPage int) ([]model.User, int, error) {
	offset := (page - 1) * perPage
	return s.users.SearchPaginated(ctx, search, excludeEmail, perPage, offset)
}

// Count returns the total number of users.
func (s *UserService) Count(ctx context.Context) (int, error) {
	return s.users.Count(ctx)
}
