package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cdzlabs/pos-api/internal/application/service"
	"github.com/cdzlabs/pos-api/internal/presentation/http/dto/response"
)

// ShiftHandler handles shift report HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// Start handles opening a shift for the authenticated cashier
func (h *ShiftHandler) Start(c *gin.Context) {
	cashierID := GetUserID(c)
	if cashierID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	report, err := h.shiftService.StartShift(c.Request.Context(), *cashierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shift started successfully", report)
}

// Current handles retrieving the open shift with live aggregates
func (h *ShiftHandler) Current(c *gin.Context) {
	cashierID := GetUserID(c)
	if cashierID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	report, err := h.shiftService.GetCurrentShift(c.Request.Context(), *cashierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Current shift retrieved successfully", report)
}

// End handles closing the authenticated cashier's shift
func (h *ShiftHandler) End(c *gin.Context) {
	cashierID := GetUserID(c)
	if cashierID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	report, err := h.shiftService.EndShift(c.Request.Context(), *cashierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift ended successfully", report)
}

// Get handles retrieving a shift report by ID
func (h *ShiftHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift report ID")
		return
	}

	report, err := h.shiftService.GetShiftReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift report retrieved successfully", report)
}

// GetByDate handles retrieving a cashier's shift report for a calendar day
func (h *ShiftHandler) GetByDate(c *gin.Context) {
	cashierID, err := uuid.Parse(c.Param("cashierId"))
	if err != nil {
		response.BadRequest(c, "Invalid cashier ID")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	report, err := h.shiftService.GetShiftReportByDate(c.Request.Context(), cashierID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift report retrieved successfully", report)
}

// ListByCashier handles listing a cashier's shift reports
func (h *ShiftHandler) ListByCashier(c *gin.Context) {
	cashierID, err := uuid.Parse(c.Param("cashierId"))
	if err != nil {
		response.BadRequest(c, "Invalid cashier ID")
		return
	}

	reports, err := h.shiftService.ListShiftReportsByCashier(c.Request.Context(), cashierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift reports retrieved successfully", reports)
}

// ListByStore handles listing a store's shift reports
func (h *ShiftHandler) ListByStore(c *gin.Context) {
	storeID, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	reports, err := h.shiftService.ListShiftReportsByStore(c.Request.Context(), storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift reports retrieved successfully", reports)
}
