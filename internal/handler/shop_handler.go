package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/pipeline"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
	"github.com/shopkit-io/shopkit-api/pkg/response"
)

type shopService interface {
	ListOwn(ctx context.Context, userID string) ([]models.Shop, error)
	Get(ctx context.Context, id string) (*models.Shop, error)
	Create(ctx context.Context, caller pipeline.Caller, payload json.RawMessage) (*models.Shop, error)
	Update(ctx context.Context, caller pipeline.Caller, payload json.RawMessage) (*models.Shop, error)
	Delete(ctx context.Context, caller pipeline.Caller, id string) (*models.Shop, error)
}

// ShopHandler handles shop endpoints.
type ShopHandler struct {
	service shopService
}

// NewShopHandler constructs a shop handler.
func NewShopHandler(svc shopService) *ShopHandler {
	return &ShopHandler{service: svc}
}

// List godoc
// @Summary List the caller's shops
// @Tags Shops
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /shops [get]
func (h *ShopHandler) List(c *gin.Context) {
	caller := callerFromContext(c)
	if caller.Anonymous() {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	shops, err := h.service.ListOwn(c.Request.Context(), caller.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shops, nil)
}

// Get godoc
// @Summary Get shop by id
// @Tags Shops
// @Produce json
// @Param id path string true "Shop ID"
// @Success 200 {object} response.Envelope
// @Router /shops/{id} [get]
func (h *ShopHandler) Get(c *gin.Context) {
	shop, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shop, nil)
}

// Create godoc
// @Summary Create shop
// @Tags Shops
// @Accept json
// @Produce json
// @Param payload body dto.CreateShopRequest true "Shop payload"
// @Success 201 {object} response.Envelope
// @Router /shops [post]
func (h *ShopHandler) Create(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not read request body"))
		return
	}
	shop, svcErr := h.service.Create(c.Request.Context(), callerFromContext(c), payload)
	if svcErr != nil {
		response.Error(c, svcErr)
		return
	}
	response.Created(c, shop)
}

// Update godoc
// @Summary Update shop
// @Tags Shops
// @Accept json
// @Produce json
// @Param id path string true "Shop ID"
// @Param payload body dto.UpdateShopRequest true "Shop payload"
// @Success 200 {object} response.Envelope
// @Router /shops/{id} [put]
func (h *ShopHandler) Update(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not read request body"))
		return
	}

	// The payload's shopId is what ownership is verified against; a
	// mismatched path id would silently target a different tenant.
	var probe struct {
		ShopID string `json:"shopId"`
	}
	if err := json.Unmarshal(payload, &probe); err == nil && probe.ShopID != "" && probe.ShopID != c.Param("id") {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "shopId does not match the request path"))
		return
	}

	shop, svcErr := h.service.Update(c.Request.Context(), callerFromContext(c), payload)
	if svcErr != nil {
		response.Error(c, svcErr)
		return
	}
	response.JSON(c, http.StatusOK, shop, nil)
}

// Delete godoc
// @Summary Delete shop
// @Tags Shops
// @Produce json
// @Param id path string true "Shop ID"
// @Success 200 {object} response.Envelope
// @Router /shops/{id} [delete]
func (h *ShopHandler) Delete(c *gin.Context) {
	shop, err := h.service.Delete(c.Request.Context(), callerFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shop, nil)
}
