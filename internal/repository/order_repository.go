package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shopkit-io/shopkit-api/internal/models"
)

// OrderRepository handles persistence for orders.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new repository instance.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = "id, shop_id, customer_name, customer_email, status, total_cents, items, created_at, updated_at"

// List returns orders for a shop matching filters.
func (r *OrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	base := "FROM orders WHERE shop_id = $1"
	args := []interface{}{filter.ShopID}

	if filter.Status != "" {
		base += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"status": true, "total_cents": true, "created_at": true, "updated_at": true}
	if !allowedSorts[sortBy] {
		sortBy = "created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", orderColumns, base, sortBy, order, size, offset)
	var orders []models.Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	return orders, total, nil
}

// ListAll returns every order for a shop, used by the CSV export.
func (r *OrderRepository) ListAll(ctx context.Context, shopID string) ([]models.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE shop_id = $1 ORDER BY created_at DESC", orderColumns)
	var orders []models.Order
	if err := r.db.SelectContext(ctx, &orders, query, shopID); err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

// FindByID returns an order by id scoped to a shop.
func (r *OrderRepository) FindByID(ctx context.Context, shopID, id string) (*models.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1 AND shop_id = $2", orderColumns)
	var order models.Order
	if err := r.db.GetContext(ctx, &order, query, id, shopID); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.Items == nil {
		order.Items = models.OrderItems{}
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	const query = `INSERT INTO orders (id, shop_id, customer_name, customer_email, status, total_cents, items, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query,
		order.ID, order.ShopID, order.CustomerName, order.CustomerEmail, order.Status,
		order.TotalCents, order.Items, order.CreatedAt, order.UpdatedAt); err != nil {
		return translate(err)
	}
	return nil
}

// UpdateStatus transitions an order's status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, shopID, id string, status models.OrderStatus) error {
	const query = `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND shop_id = $4`
	res, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id, shopID)
	if err != nil {
		return translate(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an order and returns its prior state.
func (r *OrderRepository) Delete(ctx context.Context, shopID, id string) (*models.Order, error) {
	query := fmt.Sprintf("DELETE FROM orders WHERE id = $1 AND shop_id = $2 RETURNING %s", orderColumns)
	var order models.Order
	if err := r.db.GetContext(ctx, &order, query, id, shopID); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}
