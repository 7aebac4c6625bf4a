package dto

// CreateShopRequest registers a new shop owned by the caller.
type CreateShopRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required,slug"`
}

// Tenant returns an empty id: the shop does not exist yet, ownership is
// established by the create itself.
func (r CreateShopRequest) Tenant() string { return "" }

// UpdateShopRequest renames a shop or changes its slug.
type UpdateShopRequest struct {
	ShopID string  `json:"shopId" validate:"required"`
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Slug   *string `json:"slug,omitempty" validate:"omitempty,slug"`
}

// Tenant returns the shop being updated.
func (r UpdateShopRequest) Tenant() string { return r.ShopID }

// DeleteShopRequest removes a shop and everything under it.
type DeleteShopRequest struct {
	ShopID string `json:"shopId" validate:"required"`
}

// Tenant returns the shop being deleted.
func (r DeleteShopRequest) Tenant() string { return r.ShopID }
