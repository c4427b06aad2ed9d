package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/repository"
	"github.com/stretchr/testify/require"
)

// fakeClassStore is an in-memory ClassStore keyed by class ID.
type fakeClassStore struct {
	byID map[uuid.UUID]*model.Class
}

func newFakeClassStore(classes ...*model.Class) *fakeClassStore {
	f := &fakeClassStore{byID: map[uuid.UUID]*model.Class{}}
	for _, cl := range classes {
		f.byID[cl.ID] = cl
	}
	return f
}

func (f *fakeClassStore) GetByID(_ context.Context, id uuid.UUID) (*model.Class, error) {
	cl, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *cl
	return &cp, nil
}

func (f *fakeClassStore) Create(_ context.Context, cl *model.Class) error {
	cl.ID = uuid.New()
	f.byID[cl.ID] = cl
	return nil
}

func (f *fakeClassStore) Update(_ context.Context, cl *model.Class) (*model.Class, error) {
	if _, ok := f.byID[cl.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	f.byID[cl.ID] = cl
	return cl, nil
}

func (f *fakeClassStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.ClassStatus) (*model.Class, error) {
	cl, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cl.Status = status
	return cl, nil
}

func (f *fakeClassStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeClassStore) ListPaginated(_ context.Context, status *model.ClassStatus, teacherEmail string, limit, offset int) ([]model.Class, int, error) {
	var matched []model.Class
	for _, cl := range f.byID {
		if status != nil && cl.Status != *status {
			continue
		}
		if teacherEmail != "" && cl.TeacherEmail != teacherEmail {
			continue
		}
		matched = append(matched, *cl)
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeClassStore) ListPopular(_ context.Context, _ int) ([]model.Class, error) {
	return nil, nil
}

func (f *fakeClassStore) Count(_ context.Context, status *model.ClassStatus) (int, error) {
	n := 0
	for _, cl := range f.byID {
		if status == nil || cl.Status == *status {
			n++
		}
	}
	return n, nil
}

func TestClassService_Create_AlwaysPending(t *testing.T) {
	store := newFakeClassStore()
	svc := NewClassService(store)
	teacher := &model.User{Email: "t@x.com", Name: "Teacher", Role: model.RoleTeacher}

	cl, err := svc.Create(context.Background(), teacher, &model.CreateClassRequest{
		Title: "Algebra", Price: 19.99, Description: "Linear equations",
	})

	require.NoError(t, err)
	require.Equal(t, model.ClassStatusPending, cl.Status)
	require.Equal(t, "t@x.com", cl.TeacherEmail)
	require.Equal(t, "Teacher", cl.TeacherName)
}

func TestClassService_GetApproved_HidesUnapproved(t *testing.T) {
	pending := &model.Class{ID: uuid.New(), Title: "Draft", Status: model.ClassStatusPending}
	rejected := &model.Class{ID: uuid.New(), Title: "Nope", Status: model.ClassStatusRejected}
	approved := &model.Class{ID: uuid.New(), Title: "Live", Status: model.ClassStatusApproved}
	svc := NewClassService(newFakeClassStore(pending, rejected, approved))

	got, err := svc.GetApproved(context.Background(), approved.ID)
	require.NoError(t, err)
	require.Equal(t, "Live", got.Title)

	// An existing but unapproved class looks exactly like a missing one on
	// the public surface.
	_, err = svc.GetApproved(context.Background(), pending.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.GetApproved(context.Background(), rejected.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClassService_ListApproved_FiltersStatus(t *testing.T) {
	svc := NewClassService(newFakeClassStore(
		&model.Class{ID: uuid.New(), Status: model.ClassStatusApproved},
		&model.Class{ID: uuid.New(), Status: model.ClassStatusApproved},
		&model.Class{ID: uuid.New(), Status: model.ClassStatusPending},
	))

	classes, total, err := svc.ListApproved(context.Background(), 1, 6)

	require.NoError(t, err)
	require.Len(t, classes, 2)
	require.Equal(t, 2, total)
}

func TestClassService_ListApproved_PageSlices(t *testing.T) {
	store := newFakeClassStore()
	for i := 0; i < 7; i++ {
		id := uuid.New()
		store.byID[id] = &model.Class{ID: id, Status: model.ClassStatusApproved}
	}
	svc := NewClassService(store)

	// 7 items at 3 per page: full, full, remainder of one.
	page1, total, err := svc.ListApproved(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Len(t, page1, 3)
	require.Equal(t, 7, total)

	page3, total, err := svc.ListApproved(context.Background(), 3, 3)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	require.Equal(t, 7, total)

	// A page beyond the data is empty; the total still reports everything.
	page4, total, err := svc.ListApproved(context.Background(), 4, 3)
	require.NoError(t, err)
	require.Empty(t, page4)
	require.Equal(t, 7, total)
}

func TestClassService_OwnershipChecks(t *testing.T) {
	owned := &model.Class{ID: uuid.New(), TeacherEmail: "t@x.com", Status: model.ClassStatusApproved}
	store := newFakeClassStore(owned)
	svc := NewClassService(store)

	req := &model.CreateClassRequest{Title: "Renamed", Price: 5}

	_, err := svc.UpdateOwned(context.Background(), owned.ID, "other@x.com", req)
	require.ErrorIs(t, err, ErrNotOwner)

	err = svc.DeleteOwned(context.Background(), owned.ID, "other@x.com")
	require.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.GetOwned(context.Background(), owned.ID, "other@x.com")
	require.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.UpdateOwned(context.Background(), owned.ID, "t@x.com", req)
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)

	require.NoError(t, svc.DeleteOwned(context.Background(), owned.ID, "t@x.com"))
	_, err = svc.GetOwned(context.Background(), owned.ID, "t@x.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClassService_UpdateStatus(t *testing.T) {
	cl := &model.Class{ID: uuid.New(), Status: model.ClassStatusPending}
	svc := NewClassService(newFakeClassStore(cl))

	got, err := svc.UpdateStatus(context.Background(), cl.ID, model.ClassStatusApproved)
	require.NoError(t, err)
	require.Equal(t, model.ClassStatusApproved, got.Status)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), model.ClassStatusApproved)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
