package dto

import "github.com/shopkit-io/shopkit-api/internal/models"

// OrderItemInput is one order line in a create payload.
type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest records a manual order against a shop.
type CreateOrderRequest struct {
	ShopID        string           `json:"shopId" validate:"required"`
	CustomerName  string           `json:"customerName" validate:"required"`
	CustomerEmail string           `json:"customerEmail" validate:"required,email"`
	Items         []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// Tenant returns the shop the order will belong to.
func (r CreateOrderRequest) Tenant() string { return r.ShopID }

// UpdateOrderRequest transitions an order's status.
type UpdateOrderRequest struct {
	ShopID string             `json:"shopId" validate:"required"`
	Status models.OrderStatus `json:"status" validate:"required"`
}

// Tenant returns the shop the order belongs to.
func (r UpdateOrderRequest) Tenant() string { return r.ShopID }

// DeleteOrderRequest scopes a delete to a shop.
type DeleteOrderRequest struct {
	ID     string `json:"id" validate:"required"`
	ShopID string `json:"shopId" validate:"required"`
}

// Tenant returns the shop the order belongs to.
func (r DeleteOrderRequest) Tenant() string { return r.ShopID }
