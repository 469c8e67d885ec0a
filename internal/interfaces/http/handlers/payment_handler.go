package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"homequote.backend/internal/domain/entities"
	"homequote.backend/internal/interfaces/http/middleware"
	"homequote.backend/internal/interfaces/http/response"
)

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, input *entities.CreatePaymentIntentInput, idempotencyKey string) (*entities.PaymentIntentResult, error)
}

// PaymentHandler handles card payment endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// CreatePaymentIntent creates a Stripe payment intent
// POST /api/stripe/create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var input entities.CreatePaymentIntentInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.paymentUsecase.CreatePaymentIntent(c.Request.Context(), &input, c.GetHeader(middleware.IdempotencyHeader))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
