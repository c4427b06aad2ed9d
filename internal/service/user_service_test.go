package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/repository"
	"github.com/stretchr/testify/require"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	byEmail map[string]*model.User

	creates int
	touches int

	// failFirstCreate simulates losing the insert race: the first Create
	// reports a duplicate and materializes the competing record.
	failFirstCreate bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*model.User{}}
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	f.creates++
	if f.failFirstCreate {
		f.failFirstCreate = false
		f.byEmail[u.Email] = &model.User{
			ID:     uuid.New(),
			Email:  u.Email,
			Name:   "winner",
			Role:   model.RoleStudent,
			Status: model.UserStatusNotVerified,
		}
		return repository.ErrDuplicateEmail
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserStore) TouchLastLogin(_ context.Context, email string) (time.Time, error) {
	f.touches++
	u, ok := f.byEmail[email]
	if !ok {
		return time.Time{}, repository.ErrNotFound
	}
	u.LastLoginAt = time.Now()
	return u.LastLoginAt, nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id uuid.UUID, role model.Role, status model.UserStatus) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			u.Role = role
			u.Status = status
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) SearchPaginated(_ context.Context, _, excludeEmail string, limit, offset int) ([]model.User, int, error) {
	var out []model.User
	for _, u := range f.byEmail {
		if u.Email != excludeEmail {
			out = append(out, *u)
		}
	}
	return out, len(out), nil
}

func (f *fakeUserStore) Count(_ context.Context) (int, error) {
	return len(f.byEmail), nil
}

func TestUserService_SignIn_FirstTime(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	u, created, err := svc.SignIn(context.Background(), &model.SignInRequest{
		Email: "new@x.com", Name: "New User",
	})

	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, model.RoleStudent, u.Role)
	require.Equal(t, model.UserStatusNotVerified, u.Status)
	require.Equal(t, 1, store.creates)
	require.Zero(t, store.touches)
}

func TestUserService_SignIn_Repeat(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	first, _, err := svc.SignIn(context.Background(), &model.SignInRequest{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)
	before := first.LastLoginAt

	u, created, err := svc.SignIn(context.Background(), &model.SignInRequest{Email: "a@x.com", Name: "A"})

	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "a@x.com", u.Email)
	// Second sign-in only refreshes last_login_at, and the returned record
	// carries the refreshed timestamp, not the previous login time.
	require.Equal(t, 1, store.creates)
	require.Equal(t, 1, store.touches)
	require.True(t, u.LastLoginAt.After(before))
	require.Equal(t, store.byEmail["a@x.com"].LastLoginAt, u.LastLoginAt)
}

func TestUserService_SignIn_LostInsertRace(t *testing.T) {
	store := newFakeUserStore()
	store.failFirstCreate = true
	svc := NewUserService(store)

	u, created, err := svc.SignIn(context.Background(), &model.SignInRequest{Email: "racer@x.com", Name: "Racer"})

	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "winner", u.Name)
	require.Equal(t, 1, store.touches)
}

func TestUserService_SignIn_RepeatKeepsRole(t *testing.T) {
	store := newFakeUserStore()
	store.byEmail["t@x.com"] = &model.User{
		ID: uuid.New(), Email: "t@x.com", Role: model.RoleTeacher, Status: model.UserStatusVerified,
	}
	svc := NewUserService(store)

	u, created, err := svc.SignIn(context.Background(), &model.SignInRequest{Email: "t@x.com", Name: "T"})

	require.NoError(t, err)
	require.False(t, created)
	// Sign-in never rewrites an existing record's role or status.
	require.Equal(t, model.RoleTeacher, u.Role)
	require.Equal(t, model.UserStatusVerified, u.Status)
}

func TestUserService_UpdateRole(t *testing.T) {
	store := newFakeUserStore()
	id := uuid.New()
	store.byEmail["a@x.com"] = &model.User{
		ID: id, Email: "a@x.com", Role: model.RoleStudent, Status: model.UserStatusNotVerified,
	}
	svc := NewUserService(store)

	u, err := svc.UpdateRole(context.Background(), id, model.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, u.Role)
	// Promotion to admin verifies the account in the same write.
	require.Equal(t, model.UserStatusVerified, u.Status)

	u, err = svc.UpdateRole(context.Background(), id, model.RoleStudent)
	require.NoError(t, err)
	require.Equal(t, model.RoleStudent, u.Role)
	// Demotion keeps whatever status the record already had.
	require.Equal(t, model.UserStatusVerified, u.Status)
}

func TestUserService_UpdateRole_Unknown(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.UpdateRole(context.Background(), uuid.New(), model.RoleTeacher)

	require.ErrorIs(t, err, repository.ErrNotFound)
}
