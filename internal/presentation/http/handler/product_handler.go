package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cdzlabs/pos-api/internal/application/service"
	"github.com/cdzlabs/pos-api/internal/domain/repository"
	"github.com/cdzlabs/pos-api/internal/presentation/http/dto/response"
	"github.com/cdzlabs/pos-api/pkg/pagination"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productService  *service.ProductService
	categoryService *service.CategoryService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, categoryService *service.CategoryService) *ProductHandler {
	return &ProductHandler{productService: productService, categoryService: categoryService}
}

// Create handles creating a product in the authenticated user's store
func (h *ProductHandler) Create(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.BadRequest(c, "No store assigned")
		return
	}

	var req struct {
		CategoryID         *uuid.UUID `json:"category_id"`
		Name               string     `json:"name" binding:"required"`
		SKU                string     `json:"sku"`
		Description        *string    `json:"description"`
		MRP                float64    `json:"mrp" binding:"gte=0"`
		SellingPrice       float64    `json:"selling_price" binding:"required,gt=0"`
		DiscountPercentage float64    `json:"discount_percentage" binding:"gte=0,lte=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		StoreID:            *storeID,
		CategoryID:         req.CategoryID,
		Name:               req.Name,
		SKU:                req.SKU,
		Description:        req.Description,
		MRP:                decimal.NewFromFloat(req.MRP),
		SellingPrice:       decimal.NewFromFloat(req.SellingPrice),
		DiscountPercentage: decimal.NewFromFloat(req.DiscountPercentage),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles retrieving a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// GetBySKU handles retrieving a product by SKU (barcode scan)
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	product, err := h.productService.GetProductBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// List handles listing the store's products with filters
func (h *ProductHandler) List(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.BadRequest(c, "No store assigned")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
	}
	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		if categoryID, err := uuid.Parse(categoryIDStr); err == nil {
			params.CategoryID = &categoryID
		}
	}

	result, err := h.productService.ListProducts(c.Request.Context(), *storeID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req struct {
		CategoryID         *uuid.UUID `json:"category_id"`
		Name               *string    `json:"name"`
		SKU                *string    `json:"sku"`
		Description        *string    `json:"description"`
		MRP                *float64   `json:"mrp"`
		SellingPrice       *float64   `json:"selling_price"`
		DiscountPercentage *float64   `json:"discount_percentage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
	}
	if req.MRP != nil {
		mrp := decimal.NewFromFloat(*req.MRP)
		input.MRP = &mrp
	}
	if req.SellingPrice != nil {
		sellingPrice := decimal.NewFromFloat(*req.SellingPrice)
		input.SellingPrice = &sellingPrice
	}
	if req.DiscountPercentage != nil {
		discount := decimal.NewFromFloat(*req.DiscountPercentage)
		input.DiscountPercentage = &discount
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// CreateCategory handles creating a category
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.BadRequest(c, "No store assigned")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), *storeID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// ListCategories handles listing the store's categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	storeID := GetStoreID(c)
	if storeID == nil {
		response.BadRequest(c, "No store assigned")
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), *storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// UpdateCategory handles renaming a category
func (h *ProductHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated successfully", category)
}

// DeleteCategory handles deleting a category
func (h *ProductHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category deleted successfully", nil)
}
