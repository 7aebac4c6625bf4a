package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shopkit-io/shopkit-api/internal/dto"
	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/pipeline"
	"github.com/shopkit-io/shopkit-api/internal/validation"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
)

type productRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error)
	FindByID(ctx context.Context, shopID, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, shopID, id string) (*models.Product, error)
}

// ProductService handles product workflows. All mutations run through
// the shared authorization pipeline.
type ProductService struct {
	repo   productRepository
	shops  shopOwnership
	pipe   *pipeline.Pipeline
	cache  *ListCache
	logger *zap.Logger

	createSchema *pipeline.Schema[dto.CreateProductRequest]
	updateSchema *pipeline.Schema[dto.UpdateProductRequest]
	deleteSchema *pipeline.Schema[dto.DeleteProductRequest]
}

// NewProductService creates a new product service.
func NewProductService(repo productRepository, shops shopOwnership, pipe *pipeline.Pipeline, validate *validator.Validate, cache *ListCache, logger *zap.Logger) *ProductService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		repo:   repo,
		shops:  shops,
		pipe:   pipe,
		cache:  cache,
		logger: logger,
		createSchema: pipeline.NewSchema(validate, func(req dto.CreateProductRequest) []appErrors.FieldError {
			return checkNotBlank("name", req.Name)
		}),
		updateSchema: pipeline.NewSchema(validate, func(req dto.UpdateProductRequest) []appErrors.FieldError {
			if req.Name == nil {
				return nil
			}
			return checkNotBlank("name", *req.Name)
		}),
		deleteSchema: pipeline.NewSchema[dto.DeleteProductRequest](validate, nil),
	}
}

// List returns paginated products for a shop.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, *models.Pagination, error) {
	type cached struct {
		Products   []models.Product   `json:"products"`
		Pagination *models.Pagination `json:"pagination"`
	}
	key := s.cache.Key(ctx, "products", filter.ShopID, fmt.Sprintf("%d:%d:%s:%s:%v:%v:%s:%s",
		filter.Page, filter.PageSize, filter.CategoryID, filter.Search, filter.Featured, filter.Archived, filter.SortBy, filter.SortOrder))
	var hit cached
	if s.cache.Get(ctx, key, &hit) {
		return hit.Products, hit.Pagination, nil
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list products")
	}

	pagination := paginationFor(filter.Page, filter.PageSize, total)
	s.cache.Set(ctx, key, cached{Products: products, Pagination: pagination})
	return products, pagination, nil
}

// Get returns a product by identifier.
func (s *ProductService) Get(ctx context.Context, shopID, id string) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, mapReadError(err, "product not found", "failed to load product")
	}
	return product, nil
}

// Create adds a new product through the authorization pipeline.
func (s *ProductService) Create(ctx context.Context, caller pipeline.Caller, payload json.RawMessage) (*models.Product, error) {
	req := pipeline.Request{Operation: pipeline.OpCreate, Resource: "product", Payload: payload}
	product, err := pipeline.Run(ctx, s.pipe, caller, req, s.createSchema, s.shops.IsOwner, s.insertProduct)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, "products", product.ShopID)
	return product, nil
}

// Update modifies an existing product through the authorization pipeline.
func (s *ProductService) Update(ctx context.Context, caller pipeline.Caller, id string, payload json.RawMessage) (*models.Product, error) {
	req := pipeline.Request{Operation: pipeline.OpUpdate, Resource: "product", Payload: payload}
	product, err := pipeline.Run(ctx, s.pipe, caller, req, s.updateSchema, s.shops.IsOwner, s.applyProductUpdate(id))
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, "products", product.ShopID)
	return product, nil
}

// Delete removes a product through the authorization pipeline and
// returns its prior state.
func (s *ProductService) Delete(ctx context.Context, caller pipeline.Caller, id, shopID string) (*models.Product, error) {
	payload, err := json.Marshal(dto.DeleteProductRequest{ID: id, ShopID: shopID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode delete request")
	}
	req := pipeline.Request{Operation: pipeline.OpDelete, Resource: "product", Payload: payload}
	product, pErr := pipeline.Run(ctx, s.pipe, caller, req, s.deleteSchema, s.shops.IsOwner, s.removeProduct)
	if pErr != nil {
		return nil, pErr
	}
	s.cache.Invalidate(ctx, "products", product.ShopID)
	return product, nil
}

func (s *ProductService) insertProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*models.Product, error) {
	product := &models.Product{
		ShopID:      req.ShopID,
		CreatorID:   userID,
		Name:        strings.TrimSpace(req.Name),
		Slug:        req.Slug,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Images:      models.StringList(req.Images),
		Featured:    req.Featured,
	}
	if req.CategoryID != "" {
		product.CategoryID = &req.CategoryID
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) applyProductUpdate(id string) pipeline.MutateFunc[dto.UpdateProductRequest, *models.Product] {
	return func(ctx context.Context, req dto.UpdateProductRequest, userID string) (*models.Product, error) {
		product, err := s.repo.FindByID(ctx, req.ShopID, id)
		if err != nil {
			return nil, err
		}
		if req.CategoryID != nil {
			if *req.CategoryID == "" {
				product.CategoryID = nil
			} else {
				product.CategoryID = req.CategoryID
			}
		}
		if req.Name != nil {
			product.Name = strings.TrimSpace(*req.Name)
		}
		if req.Slug != nil {
			product.Slug = *req.Slug
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.PriceCents != nil {
			product.PriceCents = *req.PriceCents
		}
		if req.Images != nil {
			product.Images = models.StringList(*req.Images)
		}
		if req.Featured != nil {
			product.Featured = *req.Featured
		}
		if req.Archived != nil {
			product.Archived = *req.Archived
		}
		if err := s.repo.Update(ctx, product); err != nil {
			return nil, err
		}
		return product, nil
	}
}

func (s *ProductService) removeProduct(ctx context.Context, req dto.DeleteProductRequest, userID string) (*models.Product, error) {
	return s.repo.Delete(ctx, req.ShopID, req.ID)
}
