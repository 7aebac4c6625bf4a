package models

import "time"

// Category groups products inside a single shop. Slugs are unique per
// shop, enforced by a database constraint.
type Category struct {
	ID        string     `db:"id" json:"id"`
	ShopID    string     `db:"shop_id" json:"shop_id"`
	CreatorID string     `db:"creator_id" json:"creator_id"`
	Name      string     `db:"name" json:"name"`
	Slug      string     `db:"slug" json:"slug"`
	Images    StringList `db:"images" json:"images"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// CategoryFilter captures filtering criteria for listing categories.
type CategoryFilter struct {
	ShopID    string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
