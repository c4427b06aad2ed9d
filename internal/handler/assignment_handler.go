package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/middleware"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/repository"
	"github.com/learnnest/learnnest-backend/internal/response"
	"github.com/learnnest/learnnest-backend/internal/service"
	"github.com/learnnest/learnnest-backend/internal/validator"
)

// AssignmentHandler handles assignment creation, listing, and submissions.
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// Create godoc
// POST /api/v1/teacher/classes/:id/assignments
// Adds an assignment to a class the caller owns; the class's assignment
// counter moves in the same store transaction.
func (h *AssignmentHandler) Create(c *gin.Context) {
	teacher := middleware.GetUser(c)

	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), classID, teacher.Email, &req)
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

	response.Success(c, http.StatusCreated, gin.H{"assignment": assignment})
}

// ListForClass godoc
// GET /api/v1/classes/:id/assignments
// Lists a class's assignments for an enrolled student.
func (h *AssignmentHandler) ListForClass(c *gin.Context) {
	user := middleware.GetUser(c)

	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	assignments, enrolled, err := h.assignmentService.ListForStudent(c.Request.Context(), classID, user.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !enrolled {
		response.Fail(c, http.StatusForbidden, response.ErrNotEnrolled)
		return
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}

	response.Success(c, http.StatusOK, gin.H{"assignments": assignments})
}

// Submit godoc
// POST /api/v1/assignments/:id/submissions
// Records an enrolled student's submission; the assignment's submission
// counter moves in the same store transaction.
func (h *AssignmentHandler) Submit(c *gin.Context) {
	user := middleware.GetUser(c)

	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, enrolled, err := h.assignmentService.Submit(c.Request.Context(), assignmentID, user.Email, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !enrolled {
		response.Fail(c, http.StatusForbidden, response.ErrNotEnrolled)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"submission": submission})
}
