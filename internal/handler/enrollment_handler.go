package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnnest/learnnest-backend/internal/middleware"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/repository"
	"github.com/learnnest/learnnest-backend/internal/response"
	"github.com/learnnest/learnnest-backend/internal/service"
	"github.com/learnnest/learnnest-backend/internal/validator"
)

// EnrollmentHandler handles enrollment recording and listing.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// Enroll godoc
// POST /api/v1/enrollments
// Records an enrollment after the client completes payment. Enrolling twice
// in the same class is a 409.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	user := middleware.GetUser(c)

	var req model.CreateEnrollmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), user.Email, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEnrollment):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// ListMine godoc
// GET /api/v1/users/me/enrollments
func (h *EnrollmentHandler) ListMine(c *gin.Context) {
	user := middleware.GetUser(c)

	enrolled, err := h.enrollmentService.ListForStudent(c.Request.Context(), user.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if enrolled == nil {
		enrolled = []model.EnrolledClass{}
	}

	response.Success(c, http.StatusOK, gin.H{"enrollments": enrolled})
}
