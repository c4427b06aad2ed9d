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

// popularLimit caps the public popular-classes listing.
const popularLimit = 6

// ClassHandler handles public browsing, teacher management, and admin
// moderation of classes.
type ClassHandler struct {
	classService *service.ClassService
	cfg          *config.Config
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService, cfg *config.Config) *ClassHandler {
	return &ClassHandler{classService: classService, cfg: cfg}
}

// ListApproved godoc
// GET /api/v1/classes?page=&limit=
// Public listing: approved classes only. An out-of-range page returns an
// empty data array with the total unchanged.
func (h *ClassHandler) ListApproved(c *gin.Context) {
	page, perPage := pageParams(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)

	classes, total, err := h.classService.ListApproved(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if classes == nil {
		classes = []model.Class{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"classes": classes},
		response.NewPagination(page, perPage, total))
}

// ListPopular godoc
// GET /api/v1/classes/popular
func (h *ClassHandler) ListPopular(c *gin.Context) {
	classes, err := h.classService.ListPopular(c.Request.Context(), popularLimit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if classes == nil {
		classes = []model.Class{}
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// Get godoc
// GET /api/v1/classes/:id
// Public detail; non-approved classes read as 404 here.
func (h *ClassHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	class, err := h.classService.GetApproved(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// Create godoc
// POST /api/v1/teacher/classes
// Creates a class owned by the calling teacher, status pending until an
// admin approves it.
func (h *ClassHandler) Create(c *gin.Context) {
	teacher := middleware.GetUser(c)

	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Create(c.Request.Context(), teacher, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// ListMine godoc
// GET /api/v1/teacher/classes?page=&limit=
// The calling teacher's own classes, any status.
func (h *ClassHandler) ListMine(c *gin.Context) {
	teacher := middleware.GetUser(c)
	page, perPage := pageParams(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)

	classes, total, err := h.classService.ListByTeacher(c.Request.Context(), teacher.Email, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if classes == nil {
		classes = []model.Class{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"classes": classes},
		response.NewPagination(page, perPage, total))
}

// Update godoc
// PUT /api/v1/teacher/classes/:id
func (h *ClassHandler) Update(c *gin.Context) {
	teacher := middleware.GetUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.UpdateOwned(c.Request.Context(), id, teacher.Email, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNotOwner):
			response.Fail(c, http.StatusForbidden, response.ErrNotClassOwner)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// Delete godoc
// DELETE /api/v1/teacher/classes/:id
func (h *ClassHandler) Delete(c *gin.Context) {
	teacher := middleware.GetUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classService.DeleteOwned(c.Request.Context(), id, teacher.Email); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNotOwner):
			response.Fail(c, http.StatusForbidden, response.ErrNotClassOwner)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "class deleted successfully"})
}

// AdminList godoc
// GET /api/v1/admin/classes?page=&limit=
// Lists classes of every status for moderation.
func (h *ClassHandler) AdminList(c *gin.Context) {
	page, perPage := pageParams(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)

	classes, total, err := h.classService.AdminList(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if classes == nil {
		classes = []model.Class{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"classes": classes},
		response.NewPagination(page, perPage, total))
}

// UpdateStatus godoc
// PATCH /api/v1/admin/classes/:id/status
// Transitions a class to approved or rejected.
func (h *ClassHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateClassStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}
