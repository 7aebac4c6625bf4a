package dto

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	ShopID      string   `json:"shopId" validate:"required"`
	CategoryID  string   `json:"categoryId" validate:"omitempty"`
	Name        string   `json:"name" validate:"required"`
	Slug        string   `json:"slug" validate:"required,slug"`
	Description string   `json:"description" validate:"omitempty"`
	PriceCents  int64    `json:"priceCents" validate:"required,gt=0"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
	Featured    bool     `json:"featured"`
}

// Tenant returns the shop the product will belong to.
func (r CreateProductRequest) Tenant() string { return r.ShopID }

// UpdateProductRequest permits partial field updates.
type UpdateProductRequest struct {
	ShopID      string    `json:"shopId" validate:"required"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Slug        *string   `json:"slug,omitempty" validate:"omitempty,slug"`
	Description *string   `json:"description,omitempty"`
	PriceCents  *int64    `json:"priceCents,omitempty" validate:"omitempty,gt=0"`
	Images      *[]string `json:"images,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
	Archived    *bool     `json:"archived,omitempty"`
}

// Tenant returns the shop the product belongs to.
func (r UpdateProductRequest) Tenant() string { return r.ShopID }

// DeleteProductRequest scopes a delete to a shop.
type DeleteProductRequest struct {
	ID     string `json:"id" validate:"required"`
	ShopID string `json:"shopId" validate:"required"`
}

// Tenant returns the shop the product belongs to.
func (r DeleteProductRequest) Tenant() string { return r.ShopID }
