package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/pipeline"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
	"github.com/shopkit-io/shopkit-api/pkg/response"
)

type productService interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, *models.Pagination, error)
	Get(ctx context.Context, shopID, id string) (*models.Product, error)
	Create(ctx context.Context, caller pipeline.Caller, payload json.RawMessage) (*models.Product, error)
	Update(ctx context.Context, caller pipeline.Caller, id string, payload json.RawMessage) (*models.Product, error)
	Delete(ctx context.Context, caller pipeline.Caller, id, shopID string) (*models.Product, error)
}

// ProductHandler handles product endpoints.
type ProductHandler struct {
	service productService
}

// NewProductHandler constructs a product handler.
func NewProductHandler(svc productService) *ProductHandler {
	return &ProductHandler{service: svc}
}

// List godoc
// @Summary List products of a shop
// @Tags Products
// @Produce json
// @Param shopId query string true "Shop ID"
// @Param categoryId query string false "Filter by category"
// @Param featured query bool false "Filter featured"
// @Param archived query bool false "Filter archived"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter models.ProductFilter
	filter.ShopID = c.Query("shopId")
	if filter.ShopID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "shopId is required"))
		return
	}
	filter.CategoryID = c.Query("categoryId")
	if raw := c.Query("featured"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Featured = &v
		}
	}
	if raw := c.Query("archived"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Archived = &v
		}
	}
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	products, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, products, pagination)
}

// Get godoc
// @Summary Get product by id
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Param shopId query string true "Shop ID"
// @Success 200 {object} response.Envelope
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.service.Get(c.Request.Context(), c.Query("shopId"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, product, nil)
}

// Create godoc
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Param payload body dto.CreateProductRequest true "Product payload"
// @Success 201 {object} response.Envelope
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not read request body"))
		return
	}
	product, svcErr := h.service.Create(c.Request.Context(), callerFromContext(c), payload)
	if svcErr != nil {
		response.Error(c, svcErr)
		return
	}
	response.Created(c, product)
}

// Update godoc
// @Summary Update product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param payload body dto.UpdateProductRequest true "Product payload"
// @Success 200 {object} response.Envelope
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not read request body"))
		return
	}
	product, svcErr := h.service.Update(c.Request.Context(), callerFromContext(c), c.Param("id"), payload)
	if svcErr != nil {
		response.Error(c, svcErr)
		return
	}
	response.JSON(c, http.StatusOK, product, nil)
}

// Delete godoc
// @Summary Delete product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Param shopId query string true "Shop ID"
// @Success 200 {object} response.Envelope
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	product, err := h.service.Delete(c.Request.Context(), callerFromContext(c), c.Param("id"), c.Query("shopId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, product, nil)
}
