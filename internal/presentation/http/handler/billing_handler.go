package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cdzlabs/pos-api/internal/application/service"
	"github.com/cdzlabs/pos-api/internal/presentation/http/dto/response"
	"github.com/cdzlabs/pos-api/pkg/billing"
)

// BillingHandler handles card-payment HTTP requests
type BillingHandler struct {
	gateway billing.Gateway
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(gateway billing.Gateway) *BillingHandler {
	return &BillingHandler{gateway: gateway}
}

// CreatePaymentIntent authorizes a card payment for the given amount and
// returns the client secret the terminal needs to capture it.
func (h *BillingHandler) CreatePaymentIntent(c *gin.Context) {
	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	amount := decimal.NewFromFloat(req.Amount)
	clientSecret, err := h.gateway.CreatePaymentIntent(c.Request.Context(), service.MinorUnits(amount))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment intent created successfully", gin.H{
		"client_secret": clientSecret,
	})
}
