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

type categoryService interface {
	List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, *models.Pagination, error)
	Get(ctx context.Context, shopID, id string) (*models.Category, error)
	Create(ctx context.Context, caller pipeline.Caller, payload json.RawMessage) (*models.Category, error)
	Update(ctx context.Context, caller pipeline.Caller, id string, payload json.RawMessage) (*models.Category, error)
	Delete(ctx context.Context, caller pipeline.Caller, id, shopID string) (*models.Category, error)
}

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	service categoryService
}

// NewCategoryHandler constructs a category handler.
func NewCategoryHandler(svc categoryService) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// List godoc
// @Summary List categories of a shop
// @Tags Categories
// @Produce json
// @Param shopId query string true "Shop ID"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var filter models.CategoryFilter
	filter.ShopID = c.Query("shopId")
	if filter.ShopID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "shopId is required"))
		return
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

	categories, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories, pagination)
}

// Get godoc
// @Summary Get category by id
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Param shopId query string true "Shop ID"
// @Success 200 {object} response.Envelope
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.service.Get(c.Request.Context(), c.Query("shopId"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, category, nil)
}

// Create godoc
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param payload body dto.CreateCategoryRequest true "Category payload"
// @Success 201 {object} response.Envelope
// @Router /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not read request body"))
		return
	}
	category, svcErr := h.service.Create(c.Request.Context(), callerFromContext(c), payload)
	if svcErr != nil {
		response.Error(c, svcErr)
		return
	}
	response.Created(c, category)
}

// Update godoc
// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param payload body dto.UpdateCategoryRequest true "Category payload"
// @Success 200 {object} response.Envelope
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not read request body"))
		return
	}
	category, svcErr := h.service.Update(c.Request.Context(), callerFromContext(c), c.Param("id"), payload)
	if svcErr != nil {
		response.Error(c, svcErr)
		return
	}
	response.JSON(c, http.StatusOK, category, nil)
}

// Delete godoc
// @Summary Delete category
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Param shopId query string true "Shop ID"
// @Success 200 {object} response.Envelope
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	category, err := h.service.Delete(c.Request.Context(), callerFromContext(c), c.Param("id"), c.Query("shopId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, category, nil)
}
