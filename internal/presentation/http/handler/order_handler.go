package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cdzlabs/pos-api/internal/application/service"
	"github.com/cdzlabs/pos-api/internal/domain/enum"
	"github.com/cdzlabs/pos-api/internal/domain/repository"
	"github.com/cdzlabs/pos-api/internal/presentation/http/dto/response"
	"github.com/cdzlabs/pos-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type orderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// Create handles order creation. The cashier comes from the access token, the
// store from the cashier's assignment.
func (h *OrderHandler) Create(c *gin.Context) {
	cashierID := GetUserID(c)
	if cashierID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		CustomerID      *uuid.UUID         `json:"customer_id"`
		PaymentType     string             `json:"payment_type" binding:"required"`
		PaymentIntentID *string            `json:"payment_intent_id"`
		Items           []orderItemRequest `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		CashierID:       *cashierID,
		CustomerID:      req.CustomerID,
		PaymentType:     enum.PaymentType(req.PaymentType),
		PaymentIntentID: req.PaymentIntentID,
		Items:           items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles retrieving a single order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Update handles patching an order's payment type, customer, or items
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		PaymentType *string            `json:"payment_type"`
		CustomerID  *uuid.UUID         `json:"customer_id"`
		Items       []orderItemRequest `json:"items" binding:"omitempty,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateOrderInput{CustomerID: req.CustomerID}
	if req.PaymentType != nil {
		paymentType := enum.PaymentType(*req.PaymentType)
		input.PaymentType = &paymentType
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated successfully", order)
}

// Delete handles voiding an order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order deleted successfully", nil)
}

// List handles listing the authenticated user's store orders with filters
func (h *OrderHandler) List(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.BadRequest(c, "No store assigned")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}
	if cashierIDStr := c.Query("cashier_id"); cashierIDStr != "" {
		if cashierID, err := uuid.Parse(cashierIDStr); err == nil {
			params.CashierID = &cashierID
		}
	}
	if paymentTypeStr := c.Query("payment_type"); paymentTypeStr != "" {
		paymentType := enum.PaymentType(paymentTypeStr)
		params.PaymentType = &paymentType
	}
	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			params.Status = &status
		}
	}
	if startStr := c.Query("start_date"); startStr != "" {
		if start, err := time.Parse(time.RFC3339, startStr); err == nil {
			params.StartDate = &start
		}
	}
	if endStr := c.Query("end_date"); endStr != "" {
		if end, err := time.Parse(time.RFC3339, endStr); err == nil {
			params.EndDate = &end
		}
	}

	result, err := h.orderService.ListOrdersByStore(c.Request.Context(), *storeID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// ListByCustomer handles listing all orders for a customer
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	orders, err := h.orderService.ListOrdersByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Orders retrieved successfully", orders)
}

// ListByCashier handles listing all orders for a cashier
func (h *OrderHandler) ListByCashier(c *gin.Context) {
	cashierID, err := uuid.Parse(c.Param("cashierId"))
	if err != nil {
		response.BadRequest(c, "Invalid cashier ID")
		return
	}

	orders, err := h.orderService.ListOrdersByCashier(c.Request.Context(), cashierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Orders retrieved successfully", orders)
}

// Today handles listing the store's orders created today
func (h *OrderHandler) Today(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.BadRequest(c, "No store assigned")
		return
	}

	orders, err := h.orderService.GetTodaysOrders(c.Request.Context(), *storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Today's orders retrieved successfully", orders)
}

// Recent handles listing the store's most recent orders
func (h *OrderHandler) Recent(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.BadRequest(c, "No store assigned")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	orders, err := h.orderService.GetRecentOrders(c.Request.Context(), *storeID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Recent orders retrieved successfully", orders)
}

// Receipt handles the printable receipt projection of an order
func (h *OrderHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	receipt, err := h.orderService.GenerateReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt generated successfully", receipt)
}
