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

// ProductRepository handles persistence for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new repository instance.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = "id, shop_id, category_id, creator_id, name, slug, description, price_cents, images, featured, archived, created_at, updated_at"

// List returns products for a shop matching filters.
func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	base := "FROM products WHERE shop_id = $1"
	args := []interface{}{filter.ShopID}

	if filter.CategoryID != "" {
		base += fmt.Sprintf(" AND category_id = $%d", len(args)+1)
		args = append(args, filter.CategoryID)
	}
	if filter.Featured != nil {
		base += fmt.Sprintf(" AND featured = $%d", len(args)+1)
		args = append(args, *filter.Featured)
	}
	if filter.Archived != nil {
		base += fmt.Sprintf(" AND archived = $%d", len(args)+1)
		args = append(args, *filter.Archived)
	}
	if filter.Search != "" {
		base += fmt.Sprintf(" AND (LOWER(name) LIKE $%d OR LOWER(slug) LIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"name": true, "slug": true, "price_cents": true, "created_at": true, "updated_at": true}
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", productColumns, base, sortBy, order, size, offset)
	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	return products, total, nil
}

// FindByID returns a product by id scoped to a shop.
func (r *ProductRepository) FindByID(ctx context.Context, shopID, id string) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1 AND shop_id = $2", productColumns)
	var product models.Product
	if err := r.db.GetContext(ctx, &product, query, id, shopID); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// Create inserts a new product. Slug uniqueness within the shop is
// enforced by the database constraint.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.Images == nil {
		product.Images = models.StringList{}
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	const query = `INSERT INTO products (id, shop_id, category_id, creator_id, name, slug, description, price_cents, images, featured, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	if _, err := r.db.ExecContext(ctx, query,
		product.ID, product.ShopID, product.CategoryID, product.CreatorID, product.Name,
		product.Slug, product.Description, product.PriceCents, product.Images,
		product.Featured, product.Archived, product.CreatedAt, product.UpdatedAt); err != nil {
		return translate(err)
	}
	return nil
}

// Update rewrites mutable product fields.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now().UTC()
	const query = `UPDATE products SET category_id = $1, name = $2, slug = $3, description = $4,
		price_cents = $5, images = $6, featured = $7, archived = $8, updated_at = $9
		WHERE id = $10 AND shop_id = $11`
	res, err := r.db.ExecContext(ctx, query,
		product.CategoryID, product.Name, product.Slug, product.Description,
		product.PriceCents, product.Images, product.Featured, product.Archived,
		product.UpdatedAt, product.ID, product.ShopID)
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

// Delete removes a product and returns its prior state.
func (r *ProductRepository) Delete(ctx context.Context, shopID, id string) (*models.Product, error) {
	query := fmt.Sprintf("DELETE FROM products WHERE id = $1 AND shop_id = $2 RETURNING %s", productColumns)
	var product models.Product
	if err := r.db.GetContext(ctx, &product, query, id, shopID); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}
