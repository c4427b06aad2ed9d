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

// TeacherRequestHandler handles teacher application submission and review.
type TeacherRequestHandler struct {
	requestService *service.TeacherRequestService
	cfg            *config.Config
}

// NewTeacherRequestHandler creates a new TeacherRequestHandler.
func NewTeacherRequestHandler(requestService *service.TeacherRequestService, cfg *config.Config) *TeacherRequestHandler {
	return &TeacherRequestHandler{requestService: requestService, cfg: cfg}
}

// Submit godoc
// POST /api/v1/teacher-requests
// Upserts the caller's teacher application by email. Re-applying moves a
// rejected request back to pending; both paths return 200.
func (h *TeacherRequestHandler) Submit(c *gin.Context) {
	claims := middleware.GetIdentity(c)

	var req model.CreateTeacherRequestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	request, existed, err := h.requestService.Submit(c.Request.Context(), claims.Email, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": request, "existed": existed})
}

// List godoc
// GET /api/v1/admin/teacher-requests?page=&limit=
// Lists teacher applications of every status for review.
func (h *TeacherRequestHandler) List(c *gin.Context) {
	page, perPage := pageParams(c, h.cfg.DefaultPageSize, h.cfg.MaxPageSize)

	requests, total, err := h.requestService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if requests == nil {
		requests = []model.TeacherRequest{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"requests": requests},
		response.NewPagination(page, perPage, total))
}

// Approve godoc
// PATCH /api/v1/admin/teacher-requests/:id/approve
// Approves the application and promotes the applicant to teacher. Both
// updates commit together or not at all.
func (h *TeacherRequestHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	request, err := h.requestService.Approve(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": request})
}

// Reject godoc
// PATCH /api/v1/admin/teacher-requests/:id/reject
func (h *TeacherRequestHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	request, err := h.requestService.Reject(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": request})
}
