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

// latestReviewLimit caps the public homepage review feed.
const latestReviewLimit = 10

// ReviewHandler handles class review posting and listing.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Create godoc
// POST /api/v1/classes/:id/reviews
// Posts a review; only students enrolled in the class may review it.
func (h *ReviewHandler) Create(c *gin.Context) {
	user := middleware.GetUser(c)

	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateReviewRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	review, enrolled, err := h.reviewService.Create(c.Request.Context(), classID, user, &req)
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

	response.Success(c, http.StatusCreated, gin.H{"review": review})
}

// ListLatest godoc
// GET /api/v1/reviews
// Public feed of the most recent reviews.
func (h *ReviewHandler) ListLatest(c *gin.Context) {
	reviews, err := h.reviewService.ListLatest(c.Request.Context(), latestReviewLimit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}

// ListByClass godoc
// GET /api/v1/classes/:id/reviews
func (h *ReviewHandler) ListByClass(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	reviews, err := h.reviewService.ListByClass(c.Request.Context(), classID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}
