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

// CategoryRepository handles persistence for categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new repository instance.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = "id, shop_id, creator_id, name, slug, images, created_at, updated_at"

// List returns categories for a shop with pagination metadata.
func (r *CategoryRepository) List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, int, error) {
	base := "FROM categories WHERE shop_id = $1"
	args := []interface{}{filter.ShopID}

	if filter.Search != "" {
		base += fmt.Sprintf(" AND LOWER(name) LIKE $%d", len(args)+1)
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{"name": true, "slug": true, "created_at": true, "updated_at": true}
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", categoryColumns, base, sortBy, order, size, offset)
	var categories []models.Category
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	return categories, total, nil
}

// FindByID returns a category by id scoped to a shop.
func (r *CategoryRepository) FindByID(ctx context.Context, shopID, id string) (*models.Category, error) {
	query := fmt.Sprintf("SELECT %s FROM categories WHERE id = $1 AND shop_id = $2", categoryColumns)
	var category models.Category
	if err := r.db.GetContext(ctx, &category, query, id, shopID); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// Create inserts a new category. Slug uniqueness within the shop is
// enforced by the database constraint; a losing concurrent insert
// surfaces as ErrConflict.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if category.Images == nil {
		category.Images = models.StringList{}
	}
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	const query = `INSERT INTO categories (id, shop_id, creator_id, name, slug, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, query,
		category.ID, category.ShopID, category.CreatorID, category.Name, category.Slug,
		category.Images, category.CreatedAt, category.UpdatedAt); err != nil {
		return translate(err)
	}
	return nil
}

// Update rewrites mutable category fields.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now().UTC()
	const query = `UPDATE categories SET name = $1, slug = $2, images = $3, updated_at = $4
		WHERE id = $5 AND shop_id = $6`
	res, err := r.db.ExecContext(ctx, query,
		category.Name, category.Slug, category.Images, category.UpdatedAt,
		category.ID, category.ShopID)
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

// Delete removes a category and returns its prior state.
func (r *CategoryRepository) Delete(ctx context.Context, shopID, id string) (*models.Category, error) {
	query := fmt.Sprintf("DELETE FROM categories WHERE id = $1 AND shop_id = $2 RETURNING %s", categoryColumns)
	var category models.Category
	if err := r.db.GetContext(ctx, &category, query, id, shopID); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}
