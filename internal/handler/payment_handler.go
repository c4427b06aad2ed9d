package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/repository"
	"github.com/learnnest/learnnest-backend/internal/response"
	"github.com/learnnest/learnnest-backend/internal/service"
	"github.com/learnnest/learnnest-backend/internal/validator"
)

// PaymentHandler handles payment-intent creation.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateIntent godoc
// POST /api/v1/payments/intent
// Creates a payment intent for a class's price and returns only the client
// secret. The enrollment record is written later by a separate call once
// the client completes payment.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req model.CreatePaymentIntentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	clientSecret, err := h.paymentService.CreateIntent(c.Request.Context(), req.ClassID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrPaymentProvider)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"client_secret": clientSecret})
}
