package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderCancelled:
		return true
	}
	return false
}

// OrderItem is one line of an order, denormalised at order time so later
// product edits do not rewrite history.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitCents int64  `json:"unit_cents"`
}

// OrderItems stores order lines as a jsonb column.
type OrderItems []OrderItem

// Value implements driver.Valuer.
func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]OrderItem(items))
}

// Scan implements sql.Scanner.
func (items *OrderItems) Scan(src interface{}) error {
	if src == nil {
		*items = OrderItems{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderItems", src)
	}
	var out []OrderItem
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan order items: %w", err)
	}
	if out == nil {
		out = []OrderItem{}
	}
	*items = out
	return nil
}

// Order represents a customer order placed against a shop.
type Order struct {
	ID            string      `db:"id" json:"id"`
	ShopID        string      `db:"shop_id" json:"shop_id"`
	CustomerName  string      `db:"customer_name" json:"customer_name"`
	CustomerEmail string      `db:"customer_email" json:"customer_email"`
	Status        OrderStatus `db:"status" json:"status"`
	TotalCents    int64       `db:"total_cents" json:"total_cents"`
	Items         OrderItems  `db:"items" json:"items"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// OrderFilter captures filtering criteria for listing orders.
type OrderFilter struct {
	ShopID    string
	Status    OrderStatus
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
