package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/pipeline"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
	"github.com/shopkit-io/shopkit-api/pkg/response"
)

type orderService interface {
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, *models.Pagination, error)
	Get(ctx context.Context, shopID, id string) (*models.Order, error)
	Create(ctx context.Context, caller pipeline.Caller, payload json.RawMessage) (*models.Order, error)
	Update(ctx context.Context, caller pipeline.Caller, id string, payload json.RawMessage) (*models.Order, error)
	Delete(ctx context.Context, caller pipeline.Caller, id, shopID string) (*models.Order, error)
	ExportCSV(ctx context.Context, caller pipeline.Caller, shopID string) ([]byte, error)
	Invoice(ctx context.Context, caller pipeline.Caller, shopID, orderID string) ([]byte, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	service orderService
}

// NewOrderHandler constructs an order handler.
func NewOrderHandler(svc orderService) *OrderHandler {
	return &OrderHandler{service: svc}
}

// List godoc
// @Summary List orders of a shop
// @Tags Orders
// @Produce json
// @Param shopId query string true "Shop ID"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter models.OrderFilter
	filter.ShopID = c.Query("shopId")
	if filter.ShopID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "shopId is required"))
		return
	}
	filter.Status = models.OrderStatus(c.Query("status"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	orders, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, orders, pagination)
}

// Get godoc
// @Summary Get order by id
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Param shopId query string true "Shop ID"
// @Success 200 {object} response.Envelope
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.service.Get(c.Request.Context(), c.Query("shopId"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order, nil)
}

// Create godoc
// @Summary Record a manual order
// @Tags Orders
// @Accept json
// @Produce json
// @Param payload body dto.CreateOrderRequest true "Order payload"
// @Success 201 {object} response.Envelope
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not read request body"))
		return
	}
	order, svcErr := h.service.Create(c.Request.Context(), callerFromContext(c), payload)
	if svcErr != nil {
		response.Error(c, svcErr)
		return
	}
	response.Created(c, order)
}

// Update godoc
// @Summary Transition order status
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param payload body dto.UpdateOrderRequest true "Order payload"
// @Success 200 {object} response.Envelope
// @Router /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not read request body"))
		return
	}
	order, svcErr := h.service.Update(c.Request.Context(), callerFromContext(c), c.Param("id"), payload)
	if svcErr != nil {
		response.Error(c, svcErr)
		return
	}
	response.JSON(c, http.StatusOK, order, nil)
}

// Delete godoc
// @Summary Delete order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Param shopId query string true "Shop ID"
// @Success 200 {object} response.Envelope
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	order, err := h.service.Delete(c.Request.Context(), callerFromContext(c), c.Param("id"), c.Query("shopId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order, nil)
}

// Export godoc
// @Summary Export a shop's orders as CSV
// @Tags Orders
// @Produce text/csv
// @Param shopId query string true "Shop ID"
// @Success 200 {string} string "CSV payload"
// @Router /orders/export [get]
func (h *OrderHandler) Export(c *gin.Context) {
	out, err := h.service.ExportCSV(c.Request.Context(), callerFromContext(c), c.Query("shopId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}

// Invoice godoc
// @Summary Render a PDF invoice for an order
// @Tags Orders
// @Produce application/pdf
// @Param id path string true "Order ID"
// @Param shopId query string true "Shop ID"
// @Success 200 {string} string "PDF payload"
// @Router /orders/{id}/invoice [get]
func (h *OrderHandler) Invoice(c *gin.Context) {
	out, err := h.service.Invoice(c.Request.Context(), callerFromContext(c), c.Query("shopId"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="invoice.pdf"`)
	c.Data(http.StatusOK, "application/pdf", out)
}
