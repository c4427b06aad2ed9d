package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/config"
	"github.com/learnnest/learnnest-backend/internal/middleware"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/repository"
	"github.com/learnnest/learnnest-backend/internal/response"
	"github.com/learnnest/learnnest-backend/internal/service"
	"github.com/learnnest/learnnest-backend/internal/validator"
)

// UserHandler handles sign-in, profile, and admin user management.
type UserHandler struct {
	userService *service.UserService
	cfg         *config.Config
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{userService: userService, cfg: cfg}
}

// SignIn godoc
// POST /api/v1/users
// Upserts the user record by email: first sign-in inserts a student record,
// repeat sign-in only refreshes last_login_at. Both paths return 200.
func (h *UserHandler) SignIn(c *gin.Context) {
	var req model.SignInRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, created, err := h.userService.SignIn(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user, "created": created})
}

// Me godoc
// GET /api/v1/users/me
// Returns the caller's own user record.
func (h *UserHandler) Me(c *gin.Context) {
	claims := middleware.GetIdentity(c)

	user, err := h.userService.GetByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Search godoc
// GET /api/v1/admin/users?search=&page=&limit=
// Lists users for the admin, excluding the admin's own record.
func (h *UserHandler) Search(c *gin.Context) {
	admin := middleware.GetUser(c)
	page, perPage := pageParams(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)

	users, total, err := h.userService.Search(c.Request.Context(), c.Query("search"), admin.Email, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if users == nil {
		users = []model.User{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"users": users},
		response.NewPagination(page, perPage, total))
}

// UpdateRole godoc
// PATCH /api/v1/admin/users/:id/role
// Changes a user's role; promotion to admin also marks the account verified.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateRoleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
