package models

import "time"

// Product is a sellable item inside a shop. Slugs are unique per shop.
type Product struct {
	ID          string     `db:"id" json:"id"`
	ShopID      string     `db:"shop_id" json:"shop_id"`
	CategoryID  *string    `db:"category_id" json:"category_id,omitempty"`
	CreatorID   string     `db:"creator_id" json:"creator_id"`
	Name        string     `db:"name" json:"name"`
	Slug        string     `db:"slug" json:"slug"`
	Description string     `db:"description" json:"description"`
	PriceCents  int64      `db:"price_cents" json:"price_cents"`
	Images      StringList `db:"images" json:"images"`
	Featured    bool       `db:"featured" json:"featured"`
	Archived    bool       `db:"archived" json:"archived"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ProductFilter captures filtering criteria for listing products.
type ProductFilter struct {
	ShopID     string
	CategoryID string
	Featured   *bool
	Archived   *bool
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
