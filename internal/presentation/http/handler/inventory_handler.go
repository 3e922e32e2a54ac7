package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cdzlabs/pos-api/internal/application/service"
	"github.com/cdzlabs/pos-api/internal/presentation/http/dto/response"
)

// InventoryHandler handles stock management HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Create handles creating the inventory record for a product in the
// authenticated user's store
func (h *InventoryHandler) Create(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.BadRequest(c, "No store assigned")
		return
	}

	var req struct {
		ProductID         uuid.UUID `json:"product_id" binding:"required"`
		Quantity          int       `json:"quantity" binding:"gte=0"`
		LowStockThreshold int       `json:"low_stock_threshold" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.inventoryService.CreateRecord(c.Request.Context(), &service.CreateRecordInput{
		ProductID:         req.ProductID,
		StoreID:           *storeID,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Inventory record created successfully", record)
}

// Get handles retrieving the inventory record for a product in the store
func (h *InventoryHandler) Get(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.BadRequest(c, "No store assigned")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	record, err := h.inventoryService.GetRecord(c.Request.Context(), productID, *storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory record retrieved successfully", record)
}

// Update handles the stock-take path: setting an absolute quantity and threshold
func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid inventory record ID")
		return
	}

	var req struct {
		Quantity          int `json:"quantity" binding:"gte=0"`
		LowStockThreshold int `json:"low_stock_threshold" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.inventoryService.UpdateRecord(c.Request.Context(), id, req.Quantity, req.LowStockThreshold)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory record updated successfully", record)
}

// Delete handles removing an inventory record
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid inventory record ID")
		return
	}

	if err := h.inventoryService.DeleteRecord(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory record deleted successfully", nil)
}

// List handles listing the store's inventory records
func (h *InventoryHandler) List(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.BadRequest(c, "No store assigned")
		return
	}

	records, err := h.inventoryService.ListByStore(c.Request.Context(), *storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory retrieved successfully", records)
}

// LowStock handles listing records at or below their low-stock threshold
func (h *InventoryHandler) LowStock(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.BadRequest(c, "No store assigned")
		return
	}

	records, err := h.inventoryService.ListLowStock(c.Request.Context(), *storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock records retrieved successfully", records)
}

// Restock handles crediting stock back to a product (replenishment)
func (h *InventoryHandler) Restock(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.BadRequest(c, "No store assigned")
		return
	}

	var req struct {
		ProductID uuid.UUID `json:"product_id" binding:"required"`
		Quantity  int       `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.inventoryService.Credit(c.Request.Context(), *storeID, req.ProductID, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	record, err := h.inventoryService.GetRecord(c.Request.Context(), req.ProductID, *storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock credited successfully", record)
}
