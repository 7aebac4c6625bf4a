package dto

// CreateCategoryRequest is the payload for creating a category. The slug
// is required on create and must already be in canonical form; the web
// client derives it from the name before submitting.
type CreateCategoryRequest struct {
	ShopID string   `json:"shopId" validate:"required"`
	Name   string   `json:"name" validate:"required"`
	Slug   string   `json:"slug" validate:"required,slug"`
	Images []string `json:"images" validate:"omitempty,dive,required"`
}

// Tenant returns the shop the category will belong to.
func (r CreateCategoryRequest) Tenant() string { return r.ShopID }

// UpdateCategoryRequest permits partial field updates. Absent fields keep
// their stored values.
type UpdateCategoryRequest struct {
	ShopID string    `json:"shopId" validate:"required"`
	Name   *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Slug   *string   `json:"slug,omitempty" validate:"omitempty,slug"`
	Images *[]string `json:"images,omitempty"`
}

// Tenant returns the shop the category belongs to.
func (r UpdateCategoryRequest) Tenant() string { return r.ShopID }

// DeleteCategoryRequest scopes a delete to a shop.
type DeleteCategoryRequest struct {
	ID     string `json:"id" validate:"required"`
	ShopID string `json:"shopId" validate:"required"`
}

// Tenant returns the shop the category belongs to.
func (r DeleteCategoryRequest) Tenant() string { return r.ShopID }
