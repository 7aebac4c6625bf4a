package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shopkit-io/shopkit-api/internal/models"
)

// ShopRepository handles persistence for shops, including the ownership
// lookups that gate every mutation.
type ShopRepository struct {
	db *sqlx.DB
}

// NewShopRepository creates a new repository instance.
func NewShopRepository(db *sqlx.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

const shopColumns = "id, owner_id, name, slug, created_at, updated_at"

// IsOwner reports whether userID is the registered owner of shopID. It
// reads the current ownership row on every call; a shop id that does not
// exist reads as "not owner" so unauthorized callers cannot distinguish
// missing shops from shops they do not own.
func (r *ShopRepository) IsOwner(ctx context.Context, shopID, userID string) (bool, error) {
	if shopID == "" || userID == "" {
		return false, nil
	}
	var ownerID string
	err := r.db.GetContext(ctx, &ownerID, "SELECT owner_id FROM shops WHERE id = $1", shopID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup shop owner: %w", err)
	}
	return ownerID == userID, nil
}

// ListByOwner returns all shops owned by the given user.
func (r *ShopRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Shop, error) {
	query := fmt.Sprintf("SELECT %s FROM shops WHERE owner_id = $1 ORDER BY created_at DESC", shopColumns)
	var shops []models.Shop
	if err := r.db.SelectContext(ctx, &shops, query, ownerID); err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	return shops, nil
}

// FindByID returns a shop by id.
func (r *ShopRepository) FindByID(ctx context.Context, id string) (*models.Shop, error) {
	query := fmt.Sprintf("SELECT %s FROM shops WHERE id = $1", shopColumns)
	var shop models.Shop
	if err := r.db.GetContext(ctx, &shop, query, id); err != nil {
		return nil, translate(err)
	}
	return &shop, nil
}

// Create inserts a new shop owned by ownerID.
func (r *ShopRepository) Create(ctx context.Context, shop *models.Shop) error {
	if shop.ID == "" {
		shop.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	shop.CreatedAt = now
	shop.UpdatedAt = now

	const query = `INSERT INTO shops (id, owner_id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, shop.ID, shop.OwnerID, shop.Name, shop.Slug, shop.CreatedAt, shop.UpdatedAt); err != nil {
		return translate(err)
	}
	return nil
}

// Update rewrites mutable shop fields and returns the stored row.
func (r *ShopRepository) Update(ctx context.Context, shop *models.Shop) error {
	shop.UpdatedAt = time.Now().UTC()
	const query = `UPDATE shops SET name = $1, slug = $2, updated_at = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, shop.Name, shop.Slug, shop.UpdatedAt, shop.ID)
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

// Delete removes a shop and returns its prior state.
func (r *ShopRepository) Delete(ctx context.Context, id string) (*models.Shop, error) {
	query := fmt.Sprintf("DELETE FROM shops WHERE id = $1 RETURNING %s", shopColumns)
	var shop models.Shop
	if err := r.db.GetContext(ctx, &shop, query, id); err != nil {
		return nil, translate(err)
	}
	return &shop, nil
}
