package models

import "time"

// Shop is the unit of multi-tenant isolation. Every category, product and
// order belongs to exactly one shop, and only the shop's registered owner
// may mutate resources under it.
type Shop struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
