package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/config"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/repository"
	"github.com/learnnest/learnnest-backend/internal/service"
	"github.com/learnnest/learnnest-backend/internal/validator"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// memUserStore is a minimal in-memory service.UserStore for handler tests.
type memUserStore struct {
	byEmail map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: map[string]*model.User{}}
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *memUserStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserStore) Create(_ context.Context, u *model.User) error {
	if _, exists := m.byEmail[u.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserStore) TouchLastLogin(_ context.Context, email string) (time.Time, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return time.Time{}, repository.ErrNotFound
	}
	u.LastLoginAt = time.Now()
	return u.LastLoginAt, nil
}

func (m *memUserStore) UpdateRole(_ context.Context, id uuid.UUID, role model.Role, status model.UserStatus) (*model.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			u.Role = role
			u.Status = status
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserStore) SearchPaginated(_ context.Context, _, excludeEmail string, _, _ int) ([]model.User, int, error) {
	var out []model.User
	for _, u := range m.byEmail {
		if u.Email != excludeEmail {
			out = append(out, *u)
		}
	}
	return out, len(out), nil
}

func (m *memUserStore) Count(_ context.Context) (int, error) {
	return len(m.byEmail), nil
}

func signInRouter(store *memUserStore) *gin.Engine {
	cfg := &config.Config{DefaultPageSize: 6, MaxPageSize: 50}
	h := NewUserHandler(service.NewUserService(store), cfg)
	r := gin.New()
	r.POST("/api/v1/users", h.SignIn)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserHandler_SignIn(t *testing.T) {
	store := newMemUserStore()
	r := signInRouter(store)
	body := `{"email":"new@x.com","name":"New User"}`

	w := postJSON(r, "/api/v1/users", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			User    model.User `json:"user"`
			Created bool       `json:"created"`
		} `json:"data"`
		Metadata struct {
			RequestID string `json:"request_id"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Data.Created)
	require.Equal(t, "new@x.com", resp.Data.User.Email)
	require.Equal(t, model.RoleStudent, resp.Data.User.Role)
	require.Equal(t, model.UserStatusNotVerified, resp.Data.User.Status)
	require.NotEmpty(t, resp.Metadata.RequestID)

	// Repeat sign-in is still 200 but not a create.
	w = postJSON(r, "/api/v1/users", body)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Data.Created)
	require.Len(t, store.byEmail, 1)
}

func TestUserHandler_SignIn_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"name":"No Email"}`},
		{name: "malformed email", body: `{"email":"not-an-email","name":"X"}`},
		{name: "broken json", body: `{"email":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemUserStore()
			w := postJSON(signInRouter(store), "/api/v1/users", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Error struct {
					Code   string            `json:"code"`
					Fields map[string]string `json:"fields"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
			require.NotEmpty(t, resp.Error.Fields)
			// Nothing was written for a rejected payload.
			require.Empty(t, store.byEmail)
		})
	}
}
