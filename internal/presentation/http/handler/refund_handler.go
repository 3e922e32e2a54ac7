package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cdzlabs/pos-api/internal/application/service"
	"github.com/cdzlabs/pos-api/internal/presentation/http/dto/response"
)

// RefundHandler handles refund-related HTTP requests
type RefundHandler struct {
	refundService *service.RefundService
}

// NewRefundHandler creates a new refund handler
func NewRefundHandler(refundService *service.RefundService) *RefundHandler {
	return &RefundHandler{refundService: refundService}
}

// Create handles refund creation against an order
func (h *RefundHandler) Create(c *gin.Context) {
	cashierID := GetUserID(c)
	if cashierID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		OrderID uuid.UUID `json:"order_id" binding:"required"`
		Amount  float64   `json:"amount" binding:"required,gt=0"`
		Reason  string    `json:"reason"`
		Items   []struct {
			ProductID uuid.UUID `json:"product_id" binding:"required"`
			Quantity  int       `json:"quantity" binding:"required,gt=0"`
		} `json:"items" binding:"omitempty,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateRefundInput{
		OrderID:   req.OrderID,
		CashierID: *cashierID,
		Amount:    decimal.NewFromFloat(req.Amount),
		Reason:    req.Reason,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.RefundItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	refund, err := h.refundService.CreateRefund(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Refund created successfully", refund)
}

// Get handles retrieving a single refund
func (h *RefundHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid refund ID")
		return
	}

	refund, err := h.refundService.GetRefund(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refund retrieved successfully", refund)
}

// List handles listing all refunds
func (h *RefundHandler) List(c *gin.Context) {
	refunds, err := h.refundService.ListRefunds(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refunds retrieved successfully", refunds)
}

// ListByCashier handles listing refunds issued by a cashier, optionally
// limited to a date range (?start_date=...&end_date=..., both inclusive)
func (h *RefundHandler) ListByCashier(c *gin.Context) {
	cashierID, err := uuid.Parse(c.Param("cashierId"))
	if err != nil {
		response.BadRequest(c, "Invalid cashier ID")
		return
	}

	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		end, err := time.Parse("2006-01-02", c.Query("end_date"))
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}

		refunds, err := h.refundService.ListRefundsByCashierBetween(c.Request.Context(), cashierID, start, end.AddDate(0, 0, 1))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Refunds retrieved successfully", refunds)
		return
	}

	refunds, err := h.refundService.ListRefundsByCashier(c.Request.Context(), cashierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refunds retrieved successfully", refunds)
}

// ListByStore handles listing a store's refunds
func (h *RefundHandler) ListByStore(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	refunds, err := h.refundService.ListRefundsByStore(c.Request.Context(), storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refunds retrieved successfully", refunds)
}

// ListByShiftReport handles listing the refunds attached to a shift report
func (h *RefundHandler) ListByShiftReport(c *gin.Context) {
	shiftReportID, err := uuid.Parse(c.Param("shiftReportId"))
	if err != nil {
		response.BadRequest(c, "Invalid shift report ID")
		return
	}

	refunds, err := h.refundService.ListRefundsByShiftReport(c.Request.Context(), shiftReportID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refunds retrieved successfully", refunds)
}

// Delete handles voiding a refund ledger entry
func (h *RefundHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid refund ID")
		return
	}

	if err := h.refundService.DeleteRefund(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refund deleted successfully", nil)
}
